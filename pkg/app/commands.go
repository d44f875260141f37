package app

import (
	"github.com/decker502/spritepreview/pkg/components"
	"github.com/decker502/spritepreview/pkg/types"
)

// CommandKind 输入事件类型
type CommandKind int

const (
	// CmdSetDirection 切换朝向（方向键）
	CmdSetDirection CommandKind = iota
	// CmdSetAction 切换动作（数字键或点击缩略图）
	CmdSetAction
	// CmdTogglePlay 播放/暂停
	CmdTogglePlay
	// CmdStep 单步前进一帧
	CmdStep
	// CmdAdjustFPS 帧率增减
	CmdAdjustFPS
	// CmdCycleSkin 切换肤色
	CmdCycleSkin
	// CmdToggleLayer 切换发型/帽子可见性
	CmdToggleLayer
	// CmdSnapshotFrame 导出当前帧
	CmdSnapshotFrame
	// CmdSnapshotStrip 导出当前方向的帧条
	CmdSnapshotStrip
)

// Command 一个离散的输入事件
// 除自动 tick 外，每个事件修改 DisplayState 后都会同步触发重绘
type Command struct {
	Kind      CommandKind
	Direction types.Direction
	Action    types.Action
	Delta     int
	Layer     components.LayerKey
}

package app

import (
	"fmt"
	"image"
	"io/fs"
	"log"
	"path"
	"time"

	"github.com/decker502/spritepreview/pkg/components"
	"github.com/decker502/spritepreview/pkg/game"
	"github.com/decker502/spritepreview/pkg/types"
	"github.com/decker502/spritepreview/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 方向键映射
var directionKeys = map[ebiten.Key]types.Direction{
	ebiten.KeyArrowDown:  types.DirectionDown,
	ebiten.KeyArrowLeft:  types.DirectionLeft,
	ebiten.KeyArrowRight: types.DirectionRight,
	ebiten.KeyArrowUp:    types.DirectionUp,
}

// 数字键 1-6 依次对应 AllActions
var actionKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
}

// pollCommands 把本 tick 按下的键和点击转换为命令
func pollCommands(layout screenLayout) []Command {
	var cmds []Command

	for key, dir := range directionKeys {
		if inpututil.IsKeyJustPressed(key) {
			cmds = append(cmds, Command{Kind: CmdSetDirection, Direction: dir})
		}
	}
	for i, key := range actionKeys {
		if inpututil.IsKeyJustPressed(key) {
			cmds = append(cmds, Command{Kind: CmdSetAction, Action: types.AllActions[i]})
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		cmds = append(cmds, Command{Kind: CmdTogglePlay})
	case inpututil.IsKeyJustPressed(ebiten.KeyPeriod), inpututil.IsKeyJustPressed(ebiten.KeyN):
		cmds = append(cmds, Command{Kind: CmdStep})
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		cmds = append(cmds, Command{Kind: CmdAdjustFPS, Delta: 1})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		cmds = append(cmds, Command{Kind: CmdAdjustFPS, Delta: -1})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		cmds = append(cmds, Command{Kind: CmdCycleSkin, Delta: -1})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		cmds = append(cmds, Command{Kind: CmdCycleSkin, Delta: 1})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		cmds = append(cmds, Command{Kind: CmdToggleLayer, Layer: components.LayerHairstyle})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		cmds = append(cmds, Command{Kind: CmdToggleLayer, Layer: components.LayerHat})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		cmds = append(cmds, Command{Kind: CmdSnapshotFrame})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		cmds = append(cmds, Command{Kind: CmdSnapshotStrip})
	}

	// 点击动作缩略图切换动作
	if p, pressed := utils.PointerJustPressed(); pressed {
		if slot, ok := layout.SlotAt(p); ok {
			if action, isAction := slot.Key.Action(); isAction {
				cmds = append(cmds, Command{Kind: CmdSetAction, Action: action})
			}
		}
	}

	return cmds
}

// Apply 执行一个命令并同步重绘
func (a *App) Apply(cmd Command) {
	switch cmd.Kind {
	case CmdSetDirection:
		if !a.state.SetDirection(cmd.Direction) {
			return
		}
	case CmdSetAction:
		a.switchAction(cmd.Action)
	case CmdTogglePlay:
		log.Printf("[App] playing=%v", a.clock.Toggle())
	case CmdStep:
		a.clock.Step()
		return
	case CmdAdjustFPS:
		fps := a.cfg.ClampFPS(a.fps + cmd.Delta)
		if fps == a.fps {
			return
		}
		a.fps = fps
		a.clock.SetFramesPerSecond(float64(fps))
		log.Printf("[App] fps=%d", fps)
	case CmdCycleSkin:
		if !a.registry.SetSkin(a.cfg.CycleSkin(a.registry.Skin(), cmd.Delta)) {
			return
		}
		a.registry.EnsureBase(a.state.Action)
	case CmdToggleLayer:
		log.Printf("[App] %s visible=%v", cmd.Layer, a.state.ToggleLayer(cmd.Layer))
	case CmdSnapshotFrame:
		a.snapshotFrame()
		return
	case CmdSnapshotStrip:
		a.snapshotStrip()
		return
	}
	a.clock.Redraw()
}

// switchAction 切换动作并开始加载对应的基础精灵图
func (a *App) switchAction(action types.Action) {
	if !a.state.SetAction(action) {
		return
	}
	a.registry.EnsureBase(action)
}

// handleDroppedFiles 处理拖入窗口的文件
func (a *App) handleDroppedFiles() {
	dropped := ebiten.DroppedFiles()
	if dropped == nil {
		return
	}

	target, onSlot := a.layout.SlotAt(utils.PointerPosition())
	entries, err := fs.ReadDir(dropped, ".")
	if err != nil {
		log.Printf("[App] Warning: 读取拖入文件失败: %v", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := fs.ReadFile(dropped, entry.Name())
		if err != nil {
			log.Printf("[App] Warning: 读取 %s 失败: %v", entry.Name(), err)
			continue
		}
		var slot *thumbnailSlot
		if onSlot {
			slot = &target
		}
		a.Drop(entry.Name(), data, slot)
	}
}

// Drop 把一个文件分配到图层
//
// 落在缩略图上的文件直接分配给该槽位的图层，否则按文件名分类；
// 分配给动作服装层时同时切换到该动作。
func (a *App) Drop(name string, data []byte, slot *thumbnailSlot) bool {
	if !utils.IsSupportedSheet(name) {
		log.Printf("[App] 忽略不支持的文件: %s", name)
		return false
	}

	var key components.LayerKey
	if slot != nil {
		key = slot.Key
	} else {
		classified, ok := a.classifier.Classify(path.Base(name))
		if !ok {
			log.Printf("[App] 无法识别图层: %s", name)
			return false
		}
		key = classified
	}

	a.registry.AssignBytes(key, name, data)
	if action, ok := key.Action(); ok {
		a.switchAction(action)
	}
	a.clock.Redraw()
	return true
}

// snapshotFrame 导出当前合成帧
func (a *App) snapshotFrame() {
	img := a.compositor.RenderFrame(a.state, a.registry.Layers(a.state.Action))
	name := game.SnapshotName(a.state.Action.String(), a.state.Direction.String(),
		fmt.Sprintf("f%d", a.state.FrameIndex), time.Now())
	a.saveSnapshot(name, img, a.cfg.Snapshot.Format)
}

// snapshotStrip 导出当前方向的所有帧
func (a *App) snapshotStrip() {
	img := a.compositor.RenderStrip(a.state, a.registry.Layers(a.state.Action))
	name := game.SnapshotName(a.state.Action.String(), a.state.Direction.String(), "strip", time.Now())
	a.saveSnapshot(name, img, "png")
}

func (a *App) saveSnapshot(name string, img image.Image, format string) {
	key, err := a.snapshots.SaveAs(name, img, format)
	if err != nil {
		log.Printf("[App] Warning: 快照导出失败: %v", err)
		a.status = "snapshot failed"
		return
	}
	a.status = "saved " + key
}

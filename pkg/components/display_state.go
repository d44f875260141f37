package components

import "github.com/decker502/spritepreview/pkg/types"

// DisplayState 预览画面的全部显示状态
//
// 整个程序只有一个实时预览，因此只存在一个 DisplayState 实例，
// 由 App 持有并显式传给合成器和动画时钟。
// 用户输入修改除 FrameIndex 外的字段；动画时钟只推进 FrameIndex。
type DisplayState struct {
	Action          types.Action    // 当前动作
	Direction       types.Direction // 当前朝向
	FrameIndex      int             // 当前帧，范围 [0, FrameCount)
	Playing         bool            // 是否自动播放
	FramesPerSecond float64         // 播放帧率，必须为正数

	// LayerVisibility 可选图层（发型、帽子）的可见性
	LayerVisibility map[LayerKey]bool

	frameCount int
}

// NewDisplayState 创建初始显示状态：walk / Down / 第 0 帧 / 播放中
func NewDisplayState(frameCount int, fps float64) *DisplayState {
	if frameCount <= 0 {
		frameCount = 1
	}
	if fps <= 0 {
		fps = 1
	}
	return &DisplayState{
		Action:          types.ActionWalk,
		Direction:       types.DirectionDown,
		FrameIndex:      0,
		Playing:         true,
		FramesPerSecond: fps,
		LayerVisibility: map[LayerKey]bool{
			LayerHairstyle: true,
			LayerHat:       true,
		},
		frameCount: frameCount,
	}
}

// FrameCount 每个方向行的帧数
func (s *DisplayState) FrameCount() int {
	return s.frameCount
}

// StepFrame 前进一帧，在最后一帧之后回到第 0 帧
func (s *DisplayState) StepFrame() {
	s.FrameIndex = (s.FrameIndex + 1) % s.frameCount
}

// SetFrame 设置帧索引，超出范围的值会取模归一化
func (s *DisplayState) SetFrame(index int) {
	index %= s.frameCount
	if index < 0 {
		index += s.frameCount
	}
	s.FrameIndex = index
}

// SetAction 切换动作，未知动作被忽略
func (s *DisplayState) SetAction(action types.Action) bool {
	if !action.Valid() {
		return false
	}
	s.Action = action
	return true
}

// SetDirection 切换朝向，无效朝向被忽略
func (s *DisplayState) SetDirection(direction types.Direction) bool {
	if !direction.Valid() {
		return false
	}
	s.Direction = direction
	return true
}

// SetFramesPerSecond 设置帧率，非正数被忽略
// 新帧率从下一次 tick 的阈值判断开始生效
func (s *DisplayState) SetFramesPerSecond(fps float64) bool {
	if fps <= 0 {
		return false
	}
	s.FramesPerSecond = fps
	return true
}

// IsLayerVisible 图层是否可见
// 基础层和动作叠加层总是可见；可选图层查询可见性表，缺省为可见
func (s *DisplayState) IsLayerVisible(key LayerKey) bool {
	if !key.Optional() {
		return true
	}
	visible, ok := s.LayerVisibility[key]
	return !ok || visible
}

// SetLayerVisible 设置可选图层的可见性
func (s *DisplayState) SetLayerVisible(key LayerKey, visible bool) {
	if !key.Optional() {
		return
	}
	if s.LayerVisibility == nil {
		s.LayerVisibility = make(map[LayerKey]bool)
	}
	s.LayerVisibility[key] = visible
}

// ToggleLayer 切换可选图层的可见性，返回切换后的值
func (s *DisplayState) ToggleLayer(key LayerKey) bool {
	visible := !s.IsLayerVisible(key)
	s.SetLayerVisible(key, visible)
	return s.IsLayerVisible(key)
}

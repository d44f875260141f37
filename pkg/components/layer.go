package components

import "github.com/decker502/spritepreview/pkg/types"

// LayerKey 图层键，标识合成画面中的一个逻辑图层
// 动作叠加层直接使用动作名（如 "run"），其余为固定值
type LayerKey string

const (
	// LayerBase 基础角色图层
	LayerBase LayerKey = "base"
	// LayerHairstyle 发型图层
	LayerHairstyle LayerKey = "hairstyle"
	// LayerHat 帽子图层
	LayerHat LayerKey = "hat"
)

// LayerKind 图层类别，决定取帧规则与偏移修正方式
type LayerKind int

const (
	// LayerKindBase 基础图层：无偏移修正
	LayerKindBase LayerKind = iota
	// LayerKindActionOverlay 动作服装层：按 方向+帧 查偏移表
	LayerKindActionOverlay
	// LayerKindHairstyle 发型层：随帧动画，额外叠加基础偏移
	LayerKindHairstyle
	// LayerKindHat 帽子层：只有方向行，没有帧动画，额外叠加基础偏移
	LayerKindHat
	// LayerKindUnknown 无法识别的键
	LayerKindUnknown
)

// ActionLayer 返回指定动作的叠加层键
func ActionLayer(action types.Action) LayerKey {
	return LayerKey(action.String())
}

// Kind 返回图层类别
func (k LayerKey) Kind() LayerKind {
	switch k {
	case LayerBase:
		return LayerKindBase
	case LayerHairstyle:
		return LayerKindHairstyle
	case LayerHat:
		return LayerKindHat
	}
	if _, err := types.ParseAction(string(k)); err == nil {
		return LayerKindActionOverlay
	}
	return LayerKindUnknown
}

// Action 返回动作叠加层对应的动作
func (k LayerKey) Action() (types.Action, bool) {
	action, err := types.ParseAction(string(k))
	if err != nil {
		return types.ActionWalk, false
	}
	return action, true
}

// Optional 是否为可由用户开关的图层（发型、帽子）
func (k LayerKey) Optional() bool {
	return k == LayerHairstyle || k == LayerHat
}

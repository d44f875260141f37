package game

import (
	"io/fs"
	"log"
	"sort"

	"github.com/decker502/spritepreview/pkg/components"
	"github.com/decker502/spritepreview/pkg/config"
	"github.com/decker502/spritepreview/pkg/systems"
	"github.com/decker502/spritepreview/pkg/types"
)

// SheetRegistry 图层表：保存当前肤色的基础精灵图和用户提供的叠加精灵图
//
// 基础精灵图按动作懒加载并缓存；切换肤色时清空缓存。
// 叠加精灵图（动作服装、发型、帽子）每个键最多一张，拖入新文件时整体替换。
// 所有修改都发生在主循环中。
type SheetRegistry struct {
	cfg    *config.PreviewConfig
	assets fs.FS
	loader *SheetLoader

	skin     int
	base     map[types.Action]*components.SpriteSheet
	overlays map[components.LayerKey]*components.SpriteSheet
}

// NewSheetRegistry 创建图层表
//
// 参数：
//   - cfg: 预览配置（提供基础精灵图路径模板）
//   - assets: 基础精灵图所在的文件系统（通常为 os.DirFS(".")）
//   - loader: 异步加载器
func NewSheetRegistry(cfg *config.PreviewConfig, assets fs.FS, loader *SheetLoader) *SheetRegistry {
	return &SheetRegistry{
		cfg:      cfg,
		assets:   assets,
		loader:   loader,
		skin:     cfg.Assets.DefaultSkin,
		base:     make(map[types.Action]*components.SpriteSheet),
		overlays: make(map[components.LayerKey]*components.SpriteSheet),
	}
}

// Skin 当前肤色
func (r *SheetRegistry) Skin() int {
	return r.skin
}

// SetSkin 切换肤色，清空基础精灵图缓存
// 返回 false 表示肤色不在调色板中或没有变化
func (r *SheetRegistry) SetSkin(skin int) bool {
	if skin == r.skin || r.cfg.SkinIndex(skin) < 0 {
		return false
	}
	r.skin = skin
	r.base = make(map[types.Action]*components.SpriteSheet)
	log.Printf("[SheetRegistry] 切换肤色: %d", skin)
	return true
}

// EnsureBase 返回动作的基础精灵图，首次访问时开始异步加载
func (r *SheetRegistry) EnsureBase(action types.Action) *components.SpriteSheet {
	if sheet, ok := r.base[action]; ok {
		return sheet
	}
	name := r.cfg.BaseSheetPath(r.skin, action)
	sheet := r.loader.LoadFS(components.LayerBase, r.assets, name)
	r.base[action] = sheet
	log.Printf("[SheetRegistry] 加载基础精灵图: %s", name)
	return sheet
}

// Base 返回已缓存的基础精灵图，不触发加载；未加载过的动作返回 nil
func (r *SheetRegistry) Base(action types.Action) *components.SpriteSheet {
	return r.base[action]
}

// Assign 把精灵图分配给叠加图层，替换已有的精灵图
func (r *SheetRegistry) Assign(sheet *components.SpriteSheet) {
	r.overlays[sheet.Key] = sheet
	log.Printf("[SheetRegistry] 图层 %s ← %s", sheet.Key, sheet.Source)
}

// AssignBytes 异步解码文件内容并分配给叠加图层
func (r *SheetRegistry) AssignBytes(key components.LayerKey, name string, data []byte) *components.SpriteSheet {
	sheet := r.loader.LoadBytes(key, name, data)
	r.Assign(sheet)
	return sheet
}

// Overlay 返回叠加图层当前的精灵图（可能尚未解码）
func (r *SheetRegistry) Overlay(key components.LayerKey) *components.SpriteSheet {
	return r.overlays[key]
}

// Layers 组装合成器需要的图层表：基础层、当前动作服装层、发型、帽子
func (r *SheetRegistry) Layers(action types.Action) systems.Layers {
	layers := systems.Layers{
		components.LayerBase: r.EnsureBase(action),
	}
	for _, key := range []components.LayerKey{components.ActionLayer(action), components.LayerHairstyle, components.LayerHat} {
		if sheet, ok := r.overlays[key]; ok {
			layers[key] = sheet
		}
	}
	return layers
}

// OverlayKeys 已分配叠加精灵图的图层键（排序后）
func (r *SheetRegistry) OverlayKeys() []components.LayerKey {
	keys := make([]components.LayerKey, 0, len(r.overlays))
	for key := range r.overlays {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Poll 投递已完成的解码，返回其中仍在使用的精灵图
// 已被替换的旧精灵图即使解码完成也不会返回
func (r *SheetRegistry) Poll() []*components.SpriteSheet {
	return r.current(r.loader.Poll())
}

// Wait 等待所有解码完成，语义同 Poll
func (r *SheetRegistry) Wait() []*components.SpriteSheet {
	return r.current(r.loader.Wait())
}

func (r *SheetRegistry) current(completed []*components.SpriteSheet) []*components.SpriteSheet {
	var live []*components.SpriteSheet
	for _, sheet := range completed {
		if r.isCurrent(sheet) {
			live = append(live, sheet)
		}
	}
	return live
}

func (r *SheetRegistry) isCurrent(sheet *components.SpriteSheet) bool {
	if sheet.Key == components.LayerBase {
		for _, base := range r.base {
			if base == sheet {
				return true
			}
		}
		return false
	}
	return r.overlays[sheet.Key] == sheet
}

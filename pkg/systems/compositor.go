package systems

import (
	"image"

	"github.com/decker502/spritepreview/internal/offsets"
	"github.com/decker502/spritepreview/pkg/components"
)

// Geometry 精灵图网格尺寸与显示放大倍数
type Geometry struct {
	FrameWidth  int // 单元格宽度（像素）
	FrameHeight int // 单元格高度（像素）
	Frames      int // 每行帧数
	Scale       int // 整数放大倍数
}

// OutputSize 合成画面尺寸
func (g Geometry) OutputSize() (int, int) {
	return g.FrameWidth * g.Scale, g.FrameHeight * g.Scale
}

// Layers 图层键 → 精灵图。缺失或未解码的精灵图会被跳过。
type Layers map[components.LayerKey]*components.SpriteSheet

// Compositor 帧合成器
//
// 根据显示状态为每个图层计算源矩形和目标矩形，
// 并按固定的从后到前顺序绘制：基础层 → 动作服装层 → 发型 → 帽子。
type Compositor struct {
	geometry Geometry
	offsets  *offsets.Table
}

// NewCompositor 创建合成器，table 为 nil 时所有偏移都为零
func NewCompositor(geometry Geometry, table *offsets.Table) *Compositor {
	return &Compositor{geometry: geometry, offsets: table}
}

// Geometry 返回合成器使用的尺寸
func (c *Compositor) Geometry() Geometry {
	return c.geometry
}

// DrawOrder 返回当前动作下的图层绘制顺序（后绘制的在上层）
func (c *Compositor) DrawOrder(state *components.DisplayState) []components.LayerKey {
	return []components.LayerKey{
		components.LayerBase,
		components.ActionLayer(state.Action),
		components.LayerHairstyle,
		components.LayerHat,
	}
}

// SourceRect 计算图层在精灵图中的源矩形
// 帽子没有帧动画，列固定为 0；其余图层按帧索引取列
func (c *Compositor) SourceRect(key components.LayerKey, state *components.DisplayState) image.Rectangle {
	column := state.FrameIndex * c.geometry.FrameWidth
	if key.Kind() == components.LayerKindHat {
		column = 0
	}
	row := int(state.Direction) * c.geometry.FrameHeight
	return image.Rect(column, row, column+c.geometry.FrameWidth, row+c.geometry.FrameHeight)
}

// Offset 查询图层的偏移修正（未缩放）
//
// 基础层没有修正；动作服装层使用该动作的偏移表；
// 发型和帽子跟随当前动作的身体起伏，并额外叠加基础偏移。
func (c *Compositor) Offset(key components.LayerKey, state *components.DisplayState) offsets.Offset {
	direction, frame := int(state.Direction), state.FrameIndex
	action := state.Action.String()

	switch key.Kind() {
	case components.LayerKindHairstyle, components.LayerKindHat:
		return c.offsets.Lookup(action, direction, frame, true)
	default:
		return c.offsets.Lookup(string(key), direction, frame, false)
	}
}

// DestRect 计算图层在输出画面中的目标矩形
func (c *Compositor) DestRect(key components.LayerKey, state *components.DisplayState) image.Rectangle {
	off := c.Offset(key, state)
	scale := c.geometry.Scale
	x, y := off.DX*scale, off.DY*scale
	return image.Rect(x, y, x+c.geometry.FrameWidth*scale, y+c.geometry.FrameHeight*scale)
}

// Render 清空画面并按固定顺序绘制所有可见且已解码的图层
func (c *Compositor) Render(surface Surface, state *components.DisplayState, layers Layers) {
	surface.Clear()

	for _, key := range c.DrawOrder(state) {
		if !state.IsLayerVisible(key) {
			continue
		}
		sheet := layers[key]
		if !sheet.Ready() {
			continue
		}

		src, ok := clipToSheet(c.SourceRect(key, state), sheet)
		if !ok {
			continue
		}
		surface.DrawSheet(sheet, src, c.DestRect(key, state))
	}
}

// RenderThumbnail 以原始尺寸单独绘制一张精灵图的当前单元格
// 不做偏移修正，也不与其他图层合成
func (c *Compositor) RenderThumbnail(surface Surface, sheet *components.SpriteSheet, state *components.DisplayState) {
	surface.Clear()
	if !sheet.Ready() {
		return
	}

	src, ok := clipToSheet(c.SourceRect(sheet.Key, state), sheet)
	if !ok {
		return
	}
	dst := image.Rect(0, 0, c.geometry.FrameWidth, c.geometry.FrameHeight)
	surface.DrawSheet(sheet, src, dst)
}

// clipToSheet 把网格坐标转换到图像坐标
// 单元格超出精灵图范围时返回 false（尺寸不足的用户图片不绘制）
func clipToSheet(rect image.Rectangle, sheet *components.SpriteSheet) (image.Rectangle, bool) {
	bounds := sheet.Bounds()
	rect = rect.Add(bounds.Min)
	if !rect.In(bounds) {
		return image.Rectangle{}, false
	}
	return rect, true
}

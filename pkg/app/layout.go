package app

import (
	"fmt"
	"image"
	"image/color"

	"github.com/decker502/spritepreview/pkg/components"
	"github.com/decker502/spritepreview/pkg/systems"
	"github.com/decker502/spritepreview/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 布局常量
const (
	screenMargin   = 20 // 合成画面左上角
	hudX           = 200
	slotColumns    = 4
	slotGap        = 30 // 缩略图之间（含标签）的间距
	slotLabelShift = 16 // 标签位于缩略图下方
)

var (
	slotBorderColor       = color.RGBA{R: 110, G: 116, B: 132, A: 255}
	activeSlotBorderColor = color.RGBA{R: 240, G: 200, B: 80, A: 255}
)

// thumbnailSlot 一个缩略图槽位：既是拖放目标，也是动作切换按钮
type thumbnailSlot struct {
	Key    components.LayerKey
	Bounds image.Rectangle
}

// screenLayout 窗口内各元素的位置
type screenLayout struct {
	Composite image.Rectangle
	Slots     []thumbnailSlot
}

// newScreenLayout 计算布局：左上为合成画面，下方两行缩略图
// 每个动作一个槽位，外加发型和帽子
func newScreenLayout(g systems.Geometry) screenLayout {
	w, h := g.OutputSize()
	composite := image.Rect(screenMargin, screenMargin, screenMargin+w, screenMargin+h)

	keys := make([]components.LayerKey, 0, len(types.AllActions)+2)
	for _, action := range types.AllActions {
		keys = append(keys, components.ActionLayer(action))
	}
	keys = append(keys, components.LayerHairstyle, components.LayerHat)

	top := composite.Max.Y + slotGap
	slots := make([]thumbnailSlot, len(keys))
	for i, key := range keys {
		col, row := i%slotColumns, i/slotColumns
		x := screenMargin + col*(g.FrameWidth+slotGap)
		y := top + row*(g.FrameHeight+slotGap)
		slots[i] = thumbnailSlot{
			Key:    key,
			Bounds: image.Rect(x, y, x+g.FrameWidth, y+g.FrameHeight),
		}
	}

	return screenLayout{Composite: composite, Slots: slots}
}

// SlotAt 返回包含点 p 的槽位
func (l screenLayout) SlotAt(p image.Point) (thumbnailSlot, bool) {
	for _, slot := range l.Slots {
		if p.In(slot.Bounds) {
			return slot, true
		}
	}
	return thumbnailSlot{}, false
}

// drawScene 绘制合成画面、缩略图槽位和状态栏
func (a *App) drawScene(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(a.layout.Composite.Min.X), float64(a.layout.Composite.Min.Y))
	screen.DrawImage(a.composite, op)

	active := components.ActionLayer(a.state.Action)
	for _, slot := range a.layout.Slots {
		border := slotBorderColor
		if slot.Key == active {
			border = activeSlotBorderColor
		}
		b := slot.Bounds
		vector.StrokeRect(screen, float32(b.Min.X)-1, float32(b.Min.Y)-1,
			float32(b.Dx())+2, float32(b.Dy())+2, 1, border, false)

		if thumb, ok := a.thumbnails[slot.Key]; ok {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(b.Min.X), float64(b.Min.Y))
			screen.DrawImage(thumb, op)
		}
		a.drawLabel(screen, string(slot.Key), b.Min.X, b.Max.Y+slotLabelShift/4)
	}

	for i, line := range a.hudLines() {
		a.drawLabel(screen, line, hudX, a.layout.Composite.Min.Y+i*slotLabelShift)
	}
}

// hudLines 状态栏文本
func (a *App) hudLines() []string {
	s := a.state
	play := "paused"
	if s.Playing {
		play = "playing"
	}
	lines := []string{
		fmt.Sprintf("action: %s  dir: %s", s.Action, s.Direction),
		fmt.Sprintf("frame: %d/%d  fps: %d  %s", s.FrameIndex+1, s.FrameCount(), a.fps, play),
		fmt.Sprintf("skin: %d", a.registry.Skin()),
		fmt.Sprintf("hair: %s  hat: %s",
			onOff(s.IsLayerVisible(components.LayerHairstyle)), onOff(s.IsLayerVisible(components.LayerHat))),
	}
	if base := a.registry.Base(s.Action); base.Err() != nil {
		lines = append(lines, "base sheet missing")
	}
	if a.status != "" {
		lines = append(lines, a.status)
	}
	return lines
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

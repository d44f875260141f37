package systems

import (
	"image"
	"image/color"

	"github.com/decker502/spritepreview/pkg/components"
)

// drawCall 记录一次 DrawSheet 调用
type drawCall struct {
	key components.LayerKey
	src image.Rectangle
	dst image.Rectangle
}

// recordingSurface 只记录调用，不实际绘制
type recordingSurface struct {
	clears int
	calls  []drawCall
}

func (s *recordingSurface) Clear() {
	s.clears++
}

func (s *recordingSurface) DrawSheet(sheet *components.SpriteSheet, src, dst image.Rectangle) {
	s.calls = append(s.calls, drawCall{key: sheet.Key, src: src, dst: dst})
}

func (s *recordingSurface) keys() []components.LayerKey {
	keys := make([]components.LayerKey, 0, len(s.calls))
	for _, call := range s.calls {
		keys = append(keys, call.key)
	}
	return keys
}

func (s *recordingSurface) call(key components.LayerKey) (drawCall, bool) {
	for _, c := range s.calls {
		if c.key == key {
			return c, true
		}
	}
	return drawCall{}, false
}

// solidSheet 创建 4 帧 × 4 方向、整张填充单色的精灵图
func solidSheet(key components.LayerKey, c color.RGBA) *components.SpriteSheet {
	img := image.NewRGBA(image.Rect(0, 0, 80*4, 80*4))
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return components.NewSpriteSheet(key, string(key)+".png", img)
}

// cellColor 编码单元格位置：R 表示帧，G 表示方向
func cellColor(frame, direction int) color.RGBA {
	return color.RGBA{R: uint8(frame*50 + 10), G: uint8(direction*50 + 10), B: 0, A: 255}
}

// gridSheet 创建每个单元格颜色不同的精灵图
func gridSheet(key components.LayerKey, frames, directions int) *components.SpriteSheet {
	img := image.NewRGBA(image.Rect(0, 0, 80*frames, 80*directions))
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			img.SetRGBA(x, y, cellColor(x/80, y/80))
		}
	}
	return components.NewSpriteSheet(key, string(key)+".png", img)
}

package systems

import (
	"image"

	"github.com/decker502/spritepreview/pkg/components"
	"github.com/decker502/spritepreview/pkg/types"
	"golang.org/x/image/draw"
)

// RenderFrame 在内存中渲染当前合成帧
func (c *Compositor) RenderFrame(state *components.DisplayState, layers Layers) *image.RGBA {
	surface := NewRGBASurface(c.geometry.OutputSize())
	c.Render(surface, state, layers)
	return surface.Target
}

// RenderStrip 把当前方向的所有帧横向拼接成一张图
// state 不会被修改
func (c *Compositor) RenderStrip(state *components.DisplayState, layers Layers) *image.RGBA {
	w, h := c.geometry.OutputSize()
	frames := state.FrameCount()
	strip := image.NewRGBA(image.Rect(0, 0, w*frames, h))

	frameState := *state
	surface := NewRGBASurface(w, h)
	for frame := 0; frame < frames; frame++ {
		frameState.SetFrame(frame)
		c.Render(surface, &frameState, layers)
		draw.Draw(strip, image.Rect(frame*w, 0, (frame+1)*w, h), surface.Target, image.Point{}, draw.Src)
	}
	return strip
}

// RenderSheet 渲染当前动作所有方向的帧条，按方向行纵向拼接
// 输出布局与输入精灵图一致（放大 Scale 倍），state 不会被修改
func (c *Compositor) RenderSheet(state *components.DisplayState, layers Layers) *image.RGBA {
	_, h := c.geometry.OutputSize()
	var sheet *image.RGBA

	rowState := *state
	for _, dir := range []types.Direction{types.DirectionDown, types.DirectionLeft, types.DirectionRight, types.DirectionUp} {
		rowState.SetDirection(dir)
		strip := c.RenderStrip(&rowState, layers)
		if sheet == nil {
			sheet = image.NewRGBA(image.Rect(0, 0, strip.Bounds().Dx(), h*types.DirectionCount))
		}
		row := int(dir)
		draw.Draw(sheet, image.Rect(0, row*h, strip.Bounds().Dx(), (row+1)*h), strip, image.Point{}, draw.Src)
	}
	return sheet
}

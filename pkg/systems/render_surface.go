package systems

import (
	"image"

	"github.com/decker502/spritepreview/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

// Surface 合成器的绘制目标
//
// DrawSheet 把精灵图的 src 区域缩放到 dst 区域，
// 实现必须使用最近邻采样，不能平滑像素。
type Surface interface {
	Clear()
	DrawSheet(sheet *components.SpriteSheet, src, dst image.Rectangle)
}

// EbitenSurface 绘制到 ebiten 图像（窗口画面或离屏缓冲）
type EbitenSurface struct {
	Target *ebiten.Image
}

// NewEbitenSurface 创建 ebiten 绘制目标
func NewEbitenSurface(target *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{Target: target}
}

// Clear 清空整个目标图像
func (s *EbitenSurface) Clear() {
	s.Target.Clear()
}

// DrawSheet 使用 FilterNearest 绘制子图
func (s *EbitenSurface) DrawSheet(sheet *components.SpriteSheet, src, dst image.Rectangle) {
	img := sheet.EbitenImage()
	if img == nil || src.Empty() || dst.Empty() {
		return
	}

	sub := img.SubImage(src).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(
		float64(dst.Dx())/float64(src.Dx()),
		float64(dst.Dy())/float64(src.Dy()),
	)
	op.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	op.Filter = ebiten.FilterNearest

	s.Target.DrawImage(sub, op)
}

// RGBASurface 绘制到内存中的 RGBA 图像
// 用于无窗口渲染（快照导出）和测试
type RGBASurface struct {
	Target *image.RGBA
}

// NewRGBASurface 创建指定尺寸的内存绘制目标
func NewRGBASurface(width, height int) *RGBASurface {
	return &RGBASurface{Target: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Clear 把所有像素置为完全透明
func (s *RGBASurface) Clear() {
	draw.Draw(s.Target, s.Target.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// DrawSheet 使用 draw.NearestNeighbor 缩放并以 Over 方式叠加
func (s *RGBASurface) DrawSheet(sheet *components.SpriteSheet, src, dst image.Rectangle) {
	img := sheet.Image()
	if img == nil || src.Empty() || dst.Empty() {
		return
	}
	dst = dst.Add(s.Target.Bounds().Min)
	draw.NearestNeighbor.Scale(s.Target, dst, img, src, draw.Over, nil)
}

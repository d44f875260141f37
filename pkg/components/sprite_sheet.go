package components

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteSheet 已分配给某个图层的精灵图
//
// 精灵图按 帧数 × 4 行 的网格划分，每个单元格为 FRAME_W × FRAME_H。
// 创建时可能尚未解码完成（Pending），解码完成信号只会到达一次。
// 替换图层时创建新的 SpriteSheet，旧实例不会被原地修改。
type SpriteSheet struct {
	Key    LayerKey // 所属图层
	Source string   // 来源路径或文件名，用于日志

	image       image.Image
	ebitenImage *ebiten.Image // 懒加载的 GPU 纹理
	decoded     bool
	err         error
}

// NewPendingSpriteSheet 创建一个等待解码的精灵图
func NewPendingSpriteSheet(key LayerKey, source string) *SpriteSheet {
	return &SpriteSheet{Key: key, Source: source}
}

// NewSpriteSheet 用已解码的图像创建精灵图
func NewSpriteSheet(key LayerKey, source string, img image.Image) *SpriteSheet {
	sheet := NewPendingSpriteSheet(key, source)
	sheet.Complete(img, nil)
	return sheet
}

// Complete 投递解码结果
//
// 只有第一次调用生效，返回 false 表示重复投递被忽略。
// img 为 nil 时视为解码失败。
func (s *SpriteSheet) Complete(img image.Image, err error) bool {
	if s.decoded || s.err != nil {
		return false
	}
	if err == nil && img == nil {
		err = errNilImage
	}
	if err != nil {
		s.err = err
		return true
	}
	s.image = img
	s.decoded = true
	return true
}

// Ready 精灵图是否可以绘制（nil 安全）
// 绘制前必须每次检查，不要缓存结果
func (s *SpriteSheet) Ready() bool {
	return s != nil && s.decoded
}

// Err 返回解码失败原因，未失败时为 nil
func (s *SpriteSheet) Err() error {
	if s == nil {
		return nil
	}
	return s.err
}

// Image 返回解码后的图像，未就绪时返回 nil
func (s *SpriteSheet) Image() image.Image {
	if !s.Ready() {
		return nil
	}
	return s.image
}

// Bounds 返回图像范围，未就绪时返回空矩形
func (s *SpriteSheet) Bounds() image.Rectangle {
	if !s.Ready() {
		return image.Rectangle{}
	}
	return s.image.Bounds()
}

// EbitenImage 返回用于 GPU 绘制的纹理，首次调用时上传
func (s *SpriteSheet) EbitenImage() *ebiten.Image {
	if !s.Ready() {
		return nil
	}
	if s.ebitenImage == nil {
		if img, ok := s.image.(*ebiten.Image); ok {
			s.ebitenImage = img
		} else {
			s.ebitenImage = ebiten.NewImageFromImage(s.image)
		}
	}
	return s.ebitenImage
}

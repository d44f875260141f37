package utils

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerJustPressed 检查本帧是否刚发生点击或触摸，返回位置
// 触摸优先于鼠标
func PointerJustPressed() (image.Point, bool) {
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		return image.Pt(ebiten.TouchPosition(touchIDs[0])), true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return image.Pt(ebiten.CursorPosition()), true
	}
	return image.Point{}, false
}

// PointerPosition 当前指针位置
// 有活动触摸时返回触摸位置，否则返回鼠标位置（拖放文件时的落点）
func PointerPosition() image.Point {
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		return image.Pt(ebiten.TouchPosition(touchIDs[0]))
	}
	return image.Pt(ebiten.CursorPosition())
}

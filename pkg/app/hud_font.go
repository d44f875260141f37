package app

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// hudFontSize 状态栏字号
const hudFontSize = 13

// loadHUDFont 从内置的 Go Regular 字体创建字体 face
func loadHUDFont(size float64) (*text.GoTextFace, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("无法创建字体源: %w", err)
	}
	return &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}, nil
}

// drawLabel 绘制一行文本；字体不可用时退回调试字体
func (a *App) drawLabel(screen *ebiten.Image, s string, x, y int) {
	if a.hudFont == nil {
		ebitenutil.DebugPrintAt(screen, s, x, y)
		return
	}
	a.textOpts.GeoM.Reset()
	a.textOpts.GeoM.Translate(float64(x), float64(y))
	a.textOpts.ColorScale.Reset()
	a.textOpts.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, s, a.hudFont, &a.textOpts)
}

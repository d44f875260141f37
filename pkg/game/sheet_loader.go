package game

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/decker502/spritepreview/pkg/components"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/webp"
)

// ErrUnsupportedFormat 文件扩展名不是可解码的精灵图格式
var ErrUnsupportedFormat = errors.New("unsupported sprite sheet format")

// decodeResult 后台解码结果，通过 channel 投递回主循环
type decodeResult struct {
	sheet *components.SpriteSheet
	img   image.Image
	err   error
}

// SheetLoader 异步精灵图加载器
//
// 解码在 goroutine 中进行，结果只通过 Poll 在主循环中投递给 SpriteSheet，
// 因此 SpriteSheet 和图层表始终只有一个写入者。
//
// Usage:
//
//	loader := NewSheetLoader()
//	sheet := loader.LoadFS(components.LayerBase, os.DirFS("."), "resources/base/overworld/4/walk_4.png")
//	// 每个 Update:
//	loader.Poll()
//	if sheet.Ready() { ... }
type SheetLoader struct {
	results chan decodeResult
	pending int // 已启动但尚未投递的解码数，只在主循环中读写
}

// NewSheetLoader 创建加载器
func NewSheetLoader() *SheetLoader {
	return &SheetLoader{results: make(chan decodeResult, 16)}
}

// LoadFS 从文件系统异步加载精灵图，立即返回处于等待状态的 SpriteSheet
func (l *SheetLoader) LoadFS(key components.LayerKey, fsys fs.FS, name string) *components.SpriteSheet {
	sheet := components.NewPendingSpriteSheet(key, name)
	l.start(sheet, func() (image.Image, error) {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		return DecodeSheet(name, bytes.NewReader(data))
	})
	return sheet
}

// LoadBytes 异步解码已读入内存的文件（拖放文件在当前帧内读取）
func (l *SheetLoader) LoadBytes(key components.LayerKey, name string, data []byte) *components.SpriteSheet {
	sheet := components.NewPendingSpriteSheet(key, name)
	l.start(sheet, func() (image.Image, error) {
		return DecodeSheet(name, bytes.NewReader(data))
	})
	return sheet
}

func (l *SheetLoader) start(sheet *components.SpriteSheet, decode func() (image.Image, error)) {
	l.pending++
	go func() {
		img, err := decode()
		l.results <- decodeResult{sheet: sheet, img: img, err: err}
	}()
}

// Pending 尚未投递的解码数
func (l *SheetLoader) Pending() int {
	return l.pending
}

// Poll 在主循环中投递所有已完成的解码结果，不阻塞
// 返回本次完成（成功或失败）的精灵图
func (l *SheetLoader) Poll() []*components.SpriteSheet {
	var completed []*components.SpriteSheet
	for l.pending > 0 {
		select {
		case res := <-l.results:
			completed = append(completed, l.deliver(res))
		default:
			return completed
		}
	}
	return completed
}

// Wait 阻塞直到所有进行中的解码都已投递
// 用于测试和无窗口导出，主循环中应使用 Poll
func (l *SheetLoader) Wait() []*components.SpriteSheet {
	var completed []*components.SpriteSheet
	for l.pending > 0 {
		completed = append(completed, l.deliver(<-l.results))
	}
	return completed
}

func (l *SheetLoader) deliver(res decodeResult) *components.SpriteSheet {
	l.pending--
	if res.err != nil {
		log.Printf("[SheetLoader] 解码失败 %s (%s): %v", res.sheet.Source, res.sheet.Key, res.err)
	} else {
		log.Printf("[SheetLoader] 解码完成 %s (%s) %v", res.sheet.Source, res.sheet.Key, res.img.Bounds().Size())
	}
	res.sheet.Complete(res.img, res.err)
	return res.sheet
}

// DecodeSheet 按扩展名解码精灵图：.png / .tga / .webp
func DecodeSheet(name string, r io.Reader) (image.Image, error) {
	var (
		img image.Image
		err error
	)

	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		img, err = png.Decode(r)
	case ".tga":
		img, err = tga.Decode(r)
	case ".webp":
		img, err = webp.Decode(r)
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}

	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

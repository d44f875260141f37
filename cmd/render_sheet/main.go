// cmd/render_sheet/main.go
// 无窗口导出工具：把基础精灵图和叠加精灵图合成后写成一张完整的 4×4 精灵图
//
// 用法：
//
//	go run ./cmd/render_sheet --action run --skin 4 \
//	    --layer run=outfit_run.png --layer hairstyle=hair_long.png --out run_4.webp
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/decker502/spritepreview/internal/offsets"
	"github.com/decker502/spritepreview/pkg/components"
	"github.com/decker502/spritepreview/pkg/config"
	"github.com/decker502/spritepreview/pkg/game"
	"github.com/decker502/spritepreview/pkg/systems"
	"github.com/decker502/spritepreview/pkg/types"
	"github.com/decker502/spritepreview/pkg/utils"
)

// layerFlags 可重复的 --layer key=path 参数
// 省略 key 时按文件名分类
type layerFlags []string

func (l *layerFlags) String() string { return strings.Join(*l, ",") }

func (l *layerFlags) Set(v string) error {
	*l = append(*l, v)
	return nil
}

var (
	configPath  = flag.String("config", config.PreviewConfigPath, "预览配置文件路径")
	offsetsPath = flag.String("offsets", config.OffsetConfigPath, "偏移表文件路径（为空时使用内置参考数据）")
	assetsDir   = flag.String("assets", ".", "基础精灵图根目录")
	actionName  = flag.String("action", "walk", "动作")
	skin        = flag.Int("skin", 0, "肤色（0 表示使用配置默认值）")
	outPath     = flag.String("out", "", "输出文件（.png 或 .webp）")
	verbose     = flag.Bool("verbose", false, "详细日志")
	layers      layerFlags
)

func main() {
	flag.Var(&layers, "layer", "叠加图层，格式 key=path 或 path（可重复）")
	flag.Parse()

	if *verbose {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	}
	if *outPath == "" {
		log.Fatalf("必须指定 --out")
	}

	if err := run(); err != nil {
		log.Fatalf("导出失败: %v", err)
	}
}

func run() error {
	cfg, err := config.LoadPreviewConfigFile(*configPath)
	if err != nil {
		return err
	}
	table := offsets.DefaultTable()
	if *offsetsPath != "" {
		if table, err = config.LoadOffsetTableFile(*offsetsPath); err != nil {
			return err
		}
	}
	action, err := types.ParseAction(*actionName)
	if err != nil {
		return err
	}

	registry := game.NewSheetRegistry(cfg, os.DirFS(*assetsDir), game.NewSheetLoader())
	if *skin != 0 && *skin != registry.Skin() && !registry.SetSkin(*skin) {
		return fmt.Errorf("skin %d not in palette %v", *skin, cfg.Assets.SkinTones)
	}
	registry.EnsureBase(action)

	classifier := utils.NewFilenameClassifier()
	for _, arg := range layers {
		key, file, err := parseLayer(arg, classifier)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("读取图层 %s 失败: %w", file, err)
		}
		registry.AssignBytes(key, file, data)
	}
	registry.Wait()

	current := registry.Layers(action)
	for key, sheet := range current {
		if sheet.Err() != nil {
			log.Printf("[RenderSheet] Warning: 图层 %s 不可用: %v", key, sheet.Err())
		}
	}

	compositor := systems.NewCompositor(systems.Geometry{
		FrameWidth:  cfg.Sprite.FrameWidth,
		FrameHeight: cfg.Sprite.FrameHeight,
		Frames:      cfg.Sprite.Frames,
		Scale:       cfg.Sprite.Scale,
	}, table)

	state := components.NewDisplayState(cfg.Sprite.Frames, float64(cfg.Playback.FPS))
	state.SetAction(action)
	state.SetLayerVisible(components.LayerHairstyle, cfg.HairstyleVisible())
	state.SetLayerVisible(components.LayerHat, cfg.HatVisible())
	img := compositor.RenderSheet(state, current)

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(*outPath)), ".")
	out, err := os.Create(*outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := game.EncodeSnapshot(out, img, format); err != nil {
		return err
	}

	fmt.Printf("✓ %s: %dx%d (%s, skin %d)\n", *outPath, img.Bounds().Dx(), img.Bounds().Dy(), action, registry.Skin())
	return nil
}

// parseLayer 解析 key=path；没有 key 时按文件名分类
func parseLayer(arg string, classifier utils.LayerClassifier) (components.LayerKey, string, error) {
	if key, file, ok := strings.Cut(arg, "="); ok {
		k := components.LayerKey(key)
		if k.Kind() == components.LayerKindUnknown || k == components.LayerBase {
			return "", "", fmt.Errorf("unknown layer %q", key)
		}
		return k, file, nil
	}
	key, ok := classifier.Classify(filepath.Base(arg))
	if !ok {
		return "", "", fmt.Errorf("cannot classify %s, use key=path", arg)
	}
	return key, arg, nil
}

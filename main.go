package main

import (
	"flag"
	"log"

	"github.com/decker502/spritepreview/pkg/app"
	"github.com/decker502/spritepreview/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	configPath  = flag.String("config", "", "预览配置文件路径（默认使用内嵌的 data/preview.yaml）")
	offsetsPath = flag.String("offsets", "", "偏移表文件路径（默认使用内嵌的 data/offsets.yaml）")
	assetsDir   = flag.String("assets", ".", "基础精灵图根目录")
	action      = flag.String("action", "", "启动动作 (walk/run/bike/surf/dive/fish)")
	skin        = flag.Int("skin", 0, "启动肤色（0 表示使用配置默认值）")
	verbose     = flag.Bool("verbose", false, "详细日志")
)

func main() {
	flag.Parse()

	if *verbose {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	}

	embedded.Init(dataFS)

	preview, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		ConfigPath:  *configPath,
		OffsetsPath: *offsetsPath,
		AssetsDir:   *assetsDir,
		Action:      *action,
		Skin:        *skin,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	window := preview.Window()
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	// TPS 保持 60；动画帧率由 AnimationClock 按实际经过时间控制
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(preview); err != nil {
		log.Fatal(err)
	}
}

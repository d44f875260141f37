// Package app 提供精灵图预览工具的核心包装器
//
// App 实现 ebiten.Game 接口：持有唯一的 DisplayState，
// 把键盘、鼠标和拖放事件转换为状态修改，并驱动动画时钟和合成器。
package app

import (
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/decker502/spritepreview/internal/offsets"
	"github.com/decker502/spritepreview/pkg/components"
	"github.com/decker502/spritepreview/pkg/config"
	"github.com/decker502/spritepreview/pkg/embedded"
	"github.com/decker502/spritepreview/pkg/game"
	"github.com/decker502/spritepreview/pkg/systems"
	"github.com/decker502/spritepreview/pkg/types"
	"github.com/decker502/spritepreview/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/quasilyte/gdata/v2"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 预览配置文件，为空则使用内嵌的 data/preview.yaml
	ConfigPath string
	// OffsetsPath 偏移表文件，为空则使用内嵌的 data/offsets.yaml
	OffsetsPath string
	// AssetsDir 基础精灵图所在目录（相对路径以此为根）
	AssetsDir string
	// Action 启动时的动作，为空则使用配置中的默认动作
	Action string
	// Skin 启动时的肤色，0 表示使用配置中的默认肤色
	Skin int
}

// App 是预览工具的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg        *config.PreviewConfig
	state      *components.DisplayState
	compositor *systems.Compositor
	clock      *systems.AnimationClock
	registry   *game.SheetRegistry
	classifier utils.LayerClassifier
	snapshots  *game.SnapshotManager
	layout     screenLayout

	composite  *ebiten.Image
	thumbnails map[components.LayerKey]*ebiten.Image
	hudFont    *text.GoTextFace // nil 时使用调试字体
	textOpts   text.DrawOptions

	fps     int
	status  string // 最近一次快照结果，显示在状态栏
	started time.Time
	verbose bool
}

// NewApp 创建并初始化预览应用
//
// 调用此函数前，若未指定 ConfigPath/OffsetsPath，必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if (cfg.ConfigPath == "" || cfg.OffsetsPath == "") && !embedded.IsInitialized() {
		return nil, embedded.ErrNotInitialized
	}

	previewCfg, err := loadPreviewConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("预览配置加载失败: %w", err)
	}

	table, err := loadOffsetTable(cfg.OffsetsPath)
	if err != nil {
		return nil, fmt.Errorf("偏移表加载失败: %w", err)
	}

	assetsDir := cfg.AssetsDir
	if assetsDir == "" {
		assetsDir = "."
	}

	// gdata 打开失败不影响预览，只是无法导出快照
	gdataManager, err := gdata.Open(gdata.Config{AppName: previewCfg.Snapshot.AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, snapshots disabled: %v", err)
		gdataManager = nil
	}

	a := newApp(previewCfg, table, os.DirFS(assetsDir), game.NewSnapshotManager(gdataManager, previewCfg.Snapshot.Format))

	if cfg.Action != "" {
		action, err := types.ParseAction(cfg.Action)
		if err != nil {
			return nil, err
		}
		a.switchAction(action)
	}
	if cfg.Skin != 0 && cfg.Skin != a.registry.Skin() {
		if !a.registry.SetSkin(cfg.Skin) {
			return nil, fmt.Errorf("skin %d not in palette %v", cfg.Skin, previewCfg.Assets.SkinTones)
		}
		a.registry.EnsureBase(a.state.Action)
	}

	a.verbose = cfg.Verbose
	log.Printf("[App] 启动: action=%s skin=%d fps=%d", a.state.Action, a.registry.Skin(), a.fps)
	return a, nil
}

// newApp 组装各组件，不访问全局资源（供测试使用）
func newApp(cfg *config.PreviewConfig, table *offsets.Table, assets fs.FS, snapshots *game.SnapshotManager) *App {
	geometry := systems.Geometry{
		FrameWidth:  cfg.Sprite.FrameWidth,
		FrameHeight: cfg.Sprite.FrameHeight,
		Frames:      cfg.Sprite.Frames,
		Scale:       cfg.Sprite.Scale,
	}

	state := components.NewDisplayState(cfg.Sprite.Frames, float64(cfg.Playback.FPS))
	state.Playing = cfg.StartPlaying()
	state.SetLayerVisible(components.LayerHairstyle, cfg.HairstyleVisible())
	state.SetLayerVisible(components.LayerHat, cfg.HatVisible())
	if action, err := types.ParseAction(cfg.Assets.DefaultAction); err == nil {
		state.SetAction(action)
	}

	a := &App{
		cfg:        cfg,
		state:      state,
		compositor: systems.NewCompositor(geometry, table),
		clock:      systems.NewAnimationClock(state, cfg.Playback.StepResetsClock),
		registry:   game.NewSheetRegistry(cfg, assets, game.NewSheetLoader()),
		classifier: utils.NewFilenameClassifier(),
		snapshots:  snapshots,
		layout:     newScreenLayout(geometry),
		thumbnails: make(map[components.LayerKey]*ebiten.Image),
		fps:        cfg.Playback.FPS,
		started:    time.Now(),
	}

	w, h := geometry.OutputSize()
	a.composite = ebiten.NewImage(w, h)

	if face, err := loadHUDFont(hudFontSize); err != nil {
		log.Printf("[App] Warning: %v, 使用调试字体", err)
	} else {
		a.hudFont = face
	}

	a.clock.OnRedraw(a.redrawComposite)
	a.clock.OnRedraw(a.redrawThumbnails)

	a.registry.EnsureBase(state.Action)
	return a
}

func loadPreviewConfig(path string) (*config.PreviewConfig, error) {
	if path != "" {
		return config.LoadPreviewConfigFile(path)
	}
	data, err := embedded.ReadFile(config.PreviewConfigPath)
	if err != nil {
		return nil, err
	}
	return config.LoadPreviewConfig(data)
}

// loadOffsetTable 加载偏移表：指定文件 > 内嵌 data/offsets.yaml > 内置参考数据
func loadOffsetTable(path string) (*offsets.Table, error) {
	if path != "" {
		return config.LoadOffsetTableFile(path)
	}
	if !embedded.Exists(config.OffsetConfigPath) {
		log.Printf("[App] 未找到内嵌偏移表，使用内置参考数据")
		return offsets.DefaultTable(), nil
	}
	data, err := embedded.ReadFile(config.OffsetConfigPath)
	if err != nil {
		return nil, err
	}
	return config.LoadOffsetTable(data)
}

// Update 处理解码完成、用户输入和动画时钟
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if live := a.registry.Poll(); len(live) > 0 {
		a.clock.Redraw()
	}

	for _, cmd := range pollCommands(a.layout) {
		a.Apply(cmd)
	}
	a.handleDroppedFiles()

	a.clock.Tick(time.Since(a.started))
	return nil
}

// Draw 把合成画面、缩略图和状态栏绘制到屏幕
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 48, G: 52, B: 64, A: 255})
	a.drawScene(screen)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

// State 返回显示状态
func (a *App) State() *components.DisplayState {
	return a.state
}

// Window 返回窗口配置
func (a *App) Window() config.WindowConfig {
	return a.cfg.Window
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// redrawComposite 重绘合成画面
func (a *App) redrawComposite() {
	a.compositor.Render(systems.NewEbitenSurface(a.composite), a.state, a.registry.Layers(a.state.Action))
}

// redrawThumbnails 重绘每个已分配叠加层的缩略图
func (a *App) redrawThumbnails() {
	g := a.compositor.Geometry()
	for _, key := range a.registry.OverlayKeys() {
		img, ok := a.thumbnails[key]
		if !ok {
			img = ebiten.NewImage(g.FrameWidth, g.FrameHeight)
			a.thumbnails[key] = img
		}
		a.compositor.RenderThumbnail(systems.NewEbitenSurface(img), a.registry.Overlay(key), a.state)
	}
}

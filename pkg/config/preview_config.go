package config

import (
	"fmt"
	"log"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/decker502/spritepreview/pkg/types"
	"gopkg.in/yaml.v3"
)

// PreviewConfigPath 内嵌默认配置的路径
const PreviewConfigPath = "data/preview.yaml"

// PreviewConfig 预览工具完整配置
type PreviewConfig struct {
	Window   WindowConfig   `yaml:"window"`
	Sprite   SpriteConfig   `yaml:"sprite"`
	Playback PlaybackConfig `yaml:"playback"`
	Assets   AssetConfig    `yaml:"assets"`
	Layers   LayerConfig    `yaml:"layers"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// SpriteConfig 精灵图网格配置
type SpriteConfig struct {
	FrameWidth  int `yaml:"frame_width"`  // 单元格宽度
	FrameHeight int `yaml:"frame_height"` // 单元格高度
	Frames      int `yaml:"frames"`       // 每行帧数
	Directions  int `yaml:"directions"`   // 方向行数（固定为 4）
	Scale       int `yaml:"scale"`        // 整数放大倍数
}

// PlaybackConfig 播放配置
type PlaybackConfig struct {
	FPS             int   `yaml:"fps"`               // 默认帧率
	MinFPS          int   `yaml:"min_fps"`           // 帧率下限
	MaxFPS          int   `yaml:"max_fps"`           // 帧率上限
	Playing         *bool `yaml:"playing"`           // 启动时是否播放，nil 表示 true
	StepResetsClock bool  `yaml:"step_resets_clock"` // 单步后是否重置计时
}

// AssetConfig 默认资源配置
type AssetConfig struct {
	Root          string `yaml:"root"`           // 资源根目录
	BaseTemplate  string `yaml:"base_template"`  // 基础精灵图路径模板，支持 {skin} 和 {action}
	SkinTones     []int  `yaml:"skin_tones"`     // 可选肤色编号
	DefaultSkin   int    `yaml:"default_skin"`   // 默认肤色
	DefaultAction string `yaml:"default_action"` // 默认动作
}

// LayerConfig 可选图层的默认可见性，nil 表示可见
type LayerConfig struct {
	Hairstyle *bool `yaml:"hairstyle"`
	Hat       *bool `yaml:"hat"`
}

// SnapshotConfig 快照导出配置
type SnapshotConfig struct {
	AppName string `yaml:"app_name"` // gdata 存储使用的应用名
	Format  string `yaml:"format"`   // "webp" 或 "png"
}

// LoadPreviewConfig 解析 YAML 配置，补全默认值并校验
func LoadPreviewConfig(data []byte) (*PreviewConfig, error) {
	cfg := &PreviewConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse preview config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadPreviewConfigFile 从文件加载配置
func LoadPreviewConfigFile(configPath string) (*PreviewConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	cfg, err := LoadPreviewConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	log.Printf("[Config] 加载预览配置: %s", configPath)
	return cfg, nil
}

// applyDefaults 为未设置的字段填充默认值
func (c *PreviewConfig) applyDefaults() {
	if c.Window.Width == 0 {
		c.Window.Width = 560
	}
	if c.Window.Height == 0 {
		c.Window.Height = 420
	}
	if c.Window.Title == "" {
		c.Window.Title = "Sprite Preview"
	}

	if c.Sprite.FrameWidth == 0 {
		c.Sprite.FrameWidth = 80
	}
	if c.Sprite.FrameHeight == 0 {
		c.Sprite.FrameHeight = 80
	}
	if c.Sprite.Frames == 0 {
		c.Sprite.Frames = 4
	}
	if c.Sprite.Directions == 0 {
		c.Sprite.Directions = types.DirectionCount
	}
	if c.Sprite.Scale == 0 {
		c.Sprite.Scale = 2
	}

	if c.Playback.FPS == 0 {
		c.Playback.FPS = 6
	}
	if c.Playback.MinFPS == 0 {
		c.Playback.MinFPS = 1
	}
	if c.Playback.MaxFPS == 0 {
		c.Playback.MaxFPS = 30
	}

	if c.Assets.Root == "" {
		c.Assets.Root = "resources"
	}
	if c.Assets.BaseTemplate == "" {
		c.Assets.BaseTemplate = "base/overworld/{skin}/{action}_{skin}.png"
	}
	if len(c.Assets.SkinTones) == 0 {
		c.Assets.SkinTones = []int{1, 2, 3, 4, 5, 6, 7, 8}
	}
	if c.Assets.DefaultSkin == 0 {
		c.Assets.DefaultSkin = 4
	}
	if c.Assets.DefaultAction == "" {
		c.Assets.DefaultAction = types.ActionWalk.String()
	}

	if c.Snapshot.AppName == "" {
		c.Snapshot.AppName = "sprite_preview"
	}
	if c.Snapshot.Format == "" {
		c.Snapshot.Format = "webp"
	}
}

// Validate 校验配置取值
func (c *PreviewConfig) Validate() error {
	if c.Sprite.FrameWidth <= 0 || c.Sprite.FrameHeight <= 0 {
		return fmt.Errorf("sprite frame size must be positive, got %dx%d", c.Sprite.FrameWidth, c.Sprite.FrameHeight)
	}
	if c.Sprite.Frames <= 0 {
		return fmt.Errorf("sprite frames must be positive, got %d", c.Sprite.Frames)
	}
	if c.Sprite.Directions != types.DirectionCount {
		return fmt.Errorf("sprite directions must be %d, got %d", types.DirectionCount, c.Sprite.Directions)
	}
	if c.Sprite.Scale <= 0 {
		return fmt.Errorf("sprite scale must be a positive integer, got %d", c.Sprite.Scale)
	}

	if c.Playback.MinFPS <= 0 || c.Playback.MinFPS > c.Playback.MaxFPS {
		return fmt.Errorf("invalid fps range [%d, %d]", c.Playback.MinFPS, c.Playback.MaxFPS)
	}
	if c.Playback.FPS < c.Playback.MinFPS || c.Playback.FPS > c.Playback.MaxFPS {
		return fmt.Errorf("default fps %d outside [%d, %d]", c.Playback.FPS, c.Playback.MinFPS, c.Playback.MaxFPS)
	}

	if _, err := types.ParseAction(c.Assets.DefaultAction); err != nil {
		return fmt.Errorf("default_action: %w", err)
	}
	if c.SkinIndex(c.Assets.DefaultSkin) < 0 {
		return fmt.Errorf("default_skin %d not in skin_tones %v", c.Assets.DefaultSkin, c.Assets.SkinTones)
	}

	switch c.Snapshot.Format {
	case "webp", "png":
	default:
		return fmt.Errorf("unsupported snapshot format %q", c.Snapshot.Format)
	}
	return nil
}

// SkinIndex 返回肤色在调色板中的位置，不存在时返回 -1
func (c *PreviewConfig) SkinIndex(skin int) int {
	for i, tone := range c.Assets.SkinTones {
		if tone == skin {
			return i
		}
	}
	return -1
}

// CycleSkin 返回调色板中相对 skin 偏移 delta 的肤色（循环）
func (c *PreviewConfig) CycleSkin(skin, delta int) int {
	n := len(c.Assets.SkinTones)
	i := c.SkinIndex(skin)
	if i < 0 {
		return c.Assets.DefaultSkin
	}
	return c.Assets.SkinTones[((i+delta)%n+n)%n]
}

// BaseSheetPath 生成默认基础精灵图路径
// 例如 skin=4, action=run → resources/base/overworld/4/run_4.png
func (c *PreviewConfig) BaseSheetPath(skin int, action types.Action) string {
	rel := strings.NewReplacer(
		"{skin}", strconv.Itoa(skin),
		"{action}", action.String(),
	).Replace(c.Assets.BaseTemplate)
	return path.Join(c.Assets.Root, rel)
}

// StartPlaying 启动时是否自动播放
func (c *PreviewConfig) StartPlaying() bool {
	return c.Playback.Playing == nil || *c.Playback.Playing
}

// HairstyleVisible 发型层默认可见性
func (c *PreviewConfig) HairstyleVisible() bool {
	return c.Layers.Hairstyle == nil || *c.Layers.Hairstyle
}

// HatVisible 帽子层默认可见性
func (c *PreviewConfig) HatVisible() bool {
	return c.Layers.Hat == nil || *c.Layers.Hat
}

// ClampFPS 把帧率限制在 [MinFPS, MaxFPS]
func (c *PreviewConfig) ClampFPS(fps int) int {
	if fps < c.Playback.MinFPS {
		return c.Playback.MinFPS
	}
	if fps > c.Playback.MaxFPS {
		return c.Playback.MaxFPS
	}
	return fps
}

package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/decker502/spritepreview/pkg/types"
)

// TestLoadPreviewConfig_Defaults 测试空配置时补全默认值
func TestLoadPreviewConfig_Defaults(t *testing.T) {
	cfg, err := LoadPreviewConfig([]byte("{}"))
	if err != nil {
		t.Fatalf("LoadPreviewConfig() error: %v", err)
	}

	if cfg.Sprite.FrameWidth != 80 || cfg.Sprite.FrameHeight != 80 {
		t.Errorf("frame size: got %dx%d, want 80x80", cfg.Sprite.FrameWidth, cfg.Sprite.FrameHeight)
	}
	if cfg.Sprite.Frames != 4 {
		t.Errorf("frames: got %d, want 4", cfg.Sprite.Frames)
	}
	if cfg.Sprite.Scale != 2 {
		t.Errorf("scale: got %d, want 2", cfg.Sprite.Scale)
	}
	if cfg.Playback.FPS != 6 {
		t.Errorf("fps: got %d, want 6", cfg.Playback.FPS)
	}
	if !cfg.StartPlaying() {
		t.Error("StartPlaying: got false, want true")
	}
	if !cfg.HairstyleVisible() || !cfg.HatVisible() {
		t.Error("optional layers should default to visible")
	}
	if cfg.Assets.DefaultSkin != 4 {
		t.Errorf("default skin: got %d, want 4", cfg.Assets.DefaultSkin)
	}
	if cfg.Snapshot.Format != "webp" {
		t.Errorf("snapshot format: got %q, want webp", cfg.Snapshot.Format)
	}
}

// TestLoadPreviewConfig_Overrides 测试显式字段覆盖默认值
func TestLoadPreviewConfig_Overrides(t *testing.T) {
	data := []byte(`
sprite:
  scale: 3
playback:
  fps: 12
  playing: false
  step_resets_clock: true
layers:
  hat: false
assets:
  skin_tones: [2, 5]
  default_skin: 5
  default_action: run
snapshot:
  format: png
`)
	cfg, err := LoadPreviewConfig(data)
	if err != nil {
		t.Fatalf("LoadPreviewConfig() error: %v", err)
	}

	if cfg.Sprite.Scale != 3 {
		t.Errorf("scale: got %d, want 3", cfg.Sprite.Scale)
	}
	if cfg.Playback.FPS != 12 {
		t.Errorf("fps: got %d, want 12", cfg.Playback.FPS)
	}
	if cfg.StartPlaying() {
		t.Error("StartPlaying: got true, want false")
	}
	if !cfg.Playback.StepResetsClock {
		t.Error("StepResetsClock: got false, want true")
	}
	if cfg.HatVisible() {
		t.Error("HatVisible: got true, want false")
	}
	if !cfg.HairstyleVisible() {
		t.Error("HairstyleVisible: got false, want true")
	}
	if cfg.Snapshot.Format != "png" {
		t.Errorf("format: got %q", cfg.Snapshot.Format)
	}
}

// TestLoadPreviewConfig_Invalid 测试非法配置被拒绝
func TestLoadPreviewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"负缩放", "sprite: {scale: -1}"},
		{"负帧宽", "sprite: {frame_width: -80}"},
		{"方向数错误", "sprite: {directions: 8}"},
		{"帧率范围颠倒", "playback: {min_fps: 20, max_fps: 10, fps: 15}"},
		{"默认帧率越界", "playback: {fps: 60}"},
		{"未知动作", "assets: {default_action: teleport}"},
		{"肤色不在调色板", "assets: {skin_tones: [1, 2], default_skin: 4}"},
		{"未知快照格式", "snapshot: {format: gif}"},
		{"语法错误", "sprite: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadPreviewConfig([]byte(tt.yaml)); err == nil {
				t.Errorf("LoadPreviewConfig(%q) expected error", tt.yaml)
			}
		})
	}
}

// TestBaseSheetPath 测试基础精灵图路径模板
func TestBaseSheetPath(t *testing.T) {
	cfg, err := LoadPreviewConfig([]byte("{}"))
	if err != nil {
		t.Fatalf("LoadPreviewConfig() error: %v", err)
	}

	tests := []struct {
		skin   int
		action types.Action
		want   string
	}{
		{4, types.ActionWalk, "resources/base/overworld/4/walk_4.png"},
		{4, types.ActionRun, "resources/base/overworld/4/run_4.png"},
		{7, types.ActionFish, "resources/base/overworld/7/fish_7.png"},
	}
	for _, tt := range tests {
		if got := cfg.BaseSheetPath(tt.skin, tt.action); got != tt.want {
			t.Errorf("BaseSheetPath(%d, %v) = %q, want %q", tt.skin, tt.action, got, tt.want)
		}
	}
}

// TestCycleSkin 测试肤色循环切换
func TestCycleSkin(t *testing.T) {
	cfg, err := LoadPreviewConfig([]byte("assets: {skin_tones: [1, 4, 9], default_skin: 4}"))
	if err != nil {
		t.Fatalf("LoadPreviewConfig() error: %v", err)
	}

	tests := []struct {
		skin, delta, want int
	}{
		{4, 1, 9},
		{9, 1, 1},
		{1, -1, 9},
		{4, -1, 1},
		{3, 1, 4}, // 不在调色板中 → 默认肤色
	}
	for _, tt := range tests {
		if got := cfg.CycleSkin(tt.skin, tt.delta); got != tt.want {
			t.Errorf("CycleSkin(%d, %d) = %d, want %d", tt.skin, tt.delta, got, tt.want)
		}
	}
}

// TestClampFPS 测试帧率限制
func TestClampFPS(t *testing.T) {
	cfg, err := LoadPreviewConfig([]byte("{}"))
	if err != nil {
		t.Fatalf("LoadPreviewConfig() error: %v", err)
	}
	if got := cfg.ClampFPS(0); got != 1 {
		t.Errorf("ClampFPS(0) = %d, want 1", got)
	}
	if got := cfg.ClampFPS(99); got != 30 {
		t.Errorf("ClampFPS(99) = %d, want 30", got)
	}
	if got := cfg.ClampFPS(12); got != 12 {
		t.Errorf("ClampFPS(12) = %d, want 12", got)
	}
}

// TestLoadPreviewConfigFile_Bundled 测试仓库自带的配置文件可以加载
func TestLoadPreviewConfigFile_Bundled(t *testing.T) {
	cfg, err := LoadPreviewConfigFile(filepath.Join("..", "..", PreviewConfigPath))
	if err != nil {
		t.Fatalf("LoadPreviewConfigFile() error: %v", err)
	}
	if cfg.Window.Title == "" {
		t.Error("bundled config has no window title")
	}
}

// TestLoadPreviewConfigFile_Missing 测试文件不存在
func TestLoadPreviewConfigFile_Missing(t *testing.T) {
	_, err := LoadPreviewConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

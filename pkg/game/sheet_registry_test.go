package game

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/decker502/spritepreview/pkg/components"
	"github.com/decker502/spritepreview/pkg/config"
	"github.com/decker502/spritepreview/pkg/types"
	"github.com/ftrvxmtrx/tga"
)

// encodeTestPNG 生成指定尺寸、单色填充的 PNG 数据
func encodeTestPNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func newTestRegistry(t *testing.T, files fstest.MapFS) *SheetRegistry {
	t.Helper()
	cfg, err := config.LoadPreviewConfig([]byte("{}"))
	if err != nil {
		t.Fatalf("LoadPreviewConfig: %v", err)
	}
	return NewSheetRegistry(cfg, files, NewSheetLoader())
}

// TestDecodeSheet 测试按扩展名解码
func TestDecodeSheet(t *testing.T) {
	data := encodeTestPNG(t, 8, 4, color.RGBA{R: 255, A: 255})

	img, err := DecodeSheet("outfit_run.PNG", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeSheet(png) error: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Errorf("bounds = %v", img.Bounds())
	}

	if _, err := DecodeSheet("outfit_run.gif", bytes.NewReader(data)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("gif: got %v, want ErrUnsupportedFormat", err)
	}
	if _, err := DecodeSheet("broken.png", bytes.NewReader([]byte("not a png"))); err == nil {
		t.Error("corrupt png decoded without error")
	}
}

// TestDecodeSheet_TGA 测试 TGA 精灵图
func TestDecodeSheet_TGA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(1, 2, color.RGBA{G: 200, A: 255})

	var buf bytes.Buffer
	if err := tga.Encode(&buf, src); err != nil {
		t.Fatalf("tga.Encode: %v", err)
	}

	img, err := DecodeSheet("hat.tga", &buf)
	if err != nil {
		t.Fatalf("DecodeSheet(tga) error: %v", err)
	}
	_, g, _, a := img.At(1, 2).RGBA()
	if g>>8 != 200 || a>>8 != 255 {
		t.Errorf("pixel(1,2) g=%d a=%d, want 200 255", g>>8, a>>8)
	}
}

// TestSheetLoader_PendingUntilPolled 测试解码结果只在 Poll/Wait 时投递
func TestSheetLoader_PendingUntilPolled(t *testing.T) {
	loader := NewSheetLoader()
	sheet := loader.LoadBytes(components.LayerHat, "hat.png", encodeTestPNG(t, 80, 320, color.RGBA{B: 255, A: 255}))

	if sheet.Ready() {
		t.Fatal("sheet ready before completion was delivered")
	}
	if loader.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", loader.Pending())
	}

	completed := loader.Wait()
	if len(completed) != 1 || completed[0] != sheet {
		t.Fatalf("Wait() returned %v", completed)
	}
	if !sheet.Ready() {
		t.Error("sheet not ready after Wait")
	}
	if loader.Pending() != 0 {
		t.Errorf("Pending() = %d after Wait", loader.Pending())
	}
	if got := loader.Poll(); len(got) != 0 {
		t.Errorf("Poll() after Wait returned %d sheets", len(got))
	}
}

// TestSheetLoader_FailedDecode 测试解码失败的精灵图保持不可用
func TestSheetLoader_FailedDecode(t *testing.T) {
	loader := NewSheetLoader()
	bad := loader.LoadBytes("run", "outfit_run.png", []byte("garbage"))
	missing := loader.LoadFS(components.LayerBase, fstest.MapFS{}, "resources/none.png")

	loader.Wait()

	if bad.Ready() || bad.Err() == nil {
		t.Error("corrupt sheet should fail")
	}
	if missing.Ready() || missing.Err() == nil {
		t.Error("missing sheet should fail")
	}
}

// TestSheetRegistry_BaseCachePerAction 测试基础精灵图按动作懒加载与缓存
func TestSheetRegistry_BaseCachePerAction(t *testing.T) {
	files := fstest.MapFS{
		"resources/base/overworld/4/walk_4.png": {Data: encodeTestPNG(t, 320, 320, color.RGBA{R: 255, A: 255})},
		"resources/base/overworld/4/run_4.png":  {Data: encodeTestPNG(t, 320, 320, color.RGBA{G: 255, A: 255})},
		"resources/base/overworld/2/walk_2.png": {Data: encodeTestPNG(t, 320, 320, color.RGBA{B: 255, A: 255})},
	}
	r := newTestRegistry(t, files)

	walk := r.EnsureBase(types.ActionWalk)
	if again := r.EnsureBase(types.ActionWalk); again != walk {
		t.Error("EnsureBase reloaded a cached action")
	}
	run := r.EnsureBase(types.ActionRun)

	live := r.Wait()
	if len(live) != 2 {
		t.Fatalf("Wait() returned %d live sheets, want 2", len(live))
	}
	if !walk.Ready() || !run.Ready() {
		t.Fatal("base sheets not ready")
	}

	// 切换肤色后缓存失效，重新加载对应目录
	if !r.SetSkin(2) {
		t.Fatal("SetSkin(2) rejected")
	}
	walk2 := r.EnsureBase(types.ActionWalk)
	if walk2 == walk {
		t.Error("skin change did not drop the base cache")
	}
	if walk2.Source != "resources/base/overworld/2/walk_2.png" {
		t.Errorf("Source = %q", walk2.Source)
	}
	r.Wait()
	if !walk2.Ready() {
		t.Error("skin 2 walk sheet not ready")
	}

	if r.SetSkin(2) {
		t.Error("SetSkin to the current skin should be a no-op")
	}
	if r.SetSkin(99) {
		t.Error("SetSkin accepted a skin outside the palette")
	}
}

// TestSheetRegistry_BaseDoesNotLoad 测试 Base 只读取缓存，不开始加载
func TestSheetRegistry_BaseDoesNotLoad(t *testing.T) {
	files := fstest.MapFS{
		"resources/base/overworld/4/walk_4.png": {Data: encodeTestPNG(t, 320, 320, color.RGBA{R: 255, A: 255})},
	}
	r := newTestRegistry(t, files)

	if r.Base(types.ActionWalk) != nil {
		t.Error("Base(walk) before EnsureBase should be nil")
	}
	if got := r.loader.Pending(); got != 0 {
		t.Errorf("Pending() = %d after Base, want 0", got)
	}

	walk := r.EnsureBase(types.ActionWalk)
	if r.Base(types.ActionWalk) != walk {
		t.Error("Base(walk) does not return the cached sheet")
	}
	r.Wait()
}

// TestSheetRegistry_ReplacementDiscardsStale 测试被替换的精灵图不会作为当前图层返回
func TestSheetRegistry_ReplacementDiscardsStale(t *testing.T) {
	r := newTestRegistry(t, fstest.MapFS{})

	first := r.AssignBytes(components.LayerHat, "hat_a.png", encodeTestPNG(t, 80, 320, color.RGBA{R: 255, A: 255}))
	second := r.AssignBytes(components.LayerHat, "hat_b.png", encodeTestPNG(t, 80, 320, color.RGBA{G: 255, A: 255}))

	live := r.Wait()
	if len(live) != 1 || live[0] != second {
		t.Fatalf("live sheets = %v, want only the replacement", live)
	}
	if r.Overlay(components.LayerHat) != second {
		t.Error("Overlay(hat) is not the replacement")
	}
	if !first.Ready() {
		t.Error("stale sheet should still finish decoding")
	}
}

// TestSheetRegistry_Layers 测试组装图层表只包含当前动作相关的图层
func TestSheetRegistry_Layers(t *testing.T) {
	r := newTestRegistry(t, fstest.MapFS{})
	data := encodeTestPNG(t, 320, 320, color.RGBA{A: 255})

	r.AssignBytes("run", "outfit_run.png", data)
	r.AssignBytes("surf", "outfit_surf.png", data)
	r.AssignBytes(components.LayerHairstyle, "hair.png", data)

	layers := r.Layers(types.ActionRun)
	for _, key := range []components.LayerKey{components.LayerBase, "run", components.LayerHairstyle} {
		if _, ok := layers[key]; !ok {
			t.Errorf("layers missing %s", key)
		}
	}
	if _, ok := layers["surf"]; ok {
		t.Error("layers contain another action's overlay")
	}
	if _, ok := layers[components.LayerHat]; ok {
		t.Error("layers contain an unassigned hat")
	}

	keys := r.OverlayKeys()
	want := []components.LayerKey{components.LayerHairstyle, "run", "surf"}
	if len(keys) != len(want) {
		t.Fatalf("OverlayKeys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("OverlayKeys()[%d] = %s, want %s", i, keys[i], want[i])
		}
	}

	r.Wait()
}

package config

import (
	"path/filepath"
	"testing"

	"github.com/decker502/spritepreview/internal/offsets"
)

// TestLoadOffsetTableFile_Bundled 测试自带偏移表与内置参考数据一致
func TestLoadOffsetTableFile_Bundled(t *testing.T) {
	table, err := LoadOffsetTableFile(filepath.Join("..", "..", OffsetConfigPath))
	if err != nil {
		t.Fatalf("LoadOffsetTableFile() error: %v", err)
	}

	reference := offsets.DefaultTable()
	layers := append(reference.Layers(), "hat", "unknown")

	for _, layer := range layers {
		for d := 0; d < offsets.Directions; d++ {
			for f := 0; f < offsets.Frames; f++ {
				for _, withBase := range []bool{false, true} {
					got := table.Lookup(layer, d, f, withBase)
					want := reference.Lookup(layer, d, f, withBase)
					if got != want {
						t.Errorf("Lookup(%q, %d, %d, %v) = %+v, want %+v", layer, d, f, withBase, got, want)
					}
				}
			}
		}
	}

	if !table.Declared("bike") {
		t.Error("bike should be declared even without cells")
	}
}

// TestLoadOffsetTable_Partial 测试部分填充的表
func TestLoadOffsetTable_Partial(t *testing.T) {
	data := []byte(`
tables:
  base_offset:
    - [[0, 0], [0, 0], [0, 0], [0, 0]]
    - [[0, 0], [0, 0], [0, 0], [0, 0]]
    - [[0, 0], [0, 0], [0, 0], [0, 0]]
    - [[0, 0], [0, 0], [0, 0], [0, 0]]
  surf:
    - [[1, 3]]
`)
	table, err := LoadOffsetTable(data)
	if err != nil {
		t.Fatalf("LoadOffsetTable() error: %v", err)
	}

	if got := table.Lookup("surf", 0, 0, false); got != (offsets.Offset{DX: 1, DY: 3}) {
		t.Errorf("surf[0][0] = %+v, want {1 3}", got)
	}
	if got := table.Lookup("surf", 0, 1, false); got != (offsets.Offset{}) {
		t.Errorf("surf[0][1] = %+v, want zero", got)
	}
	if got := table.Lookup("surf", 2, 0, false); got != (offsets.Offset{}) {
		t.Errorf("surf[2][0] = %+v, want zero", got)
	}
}

// TestLoadOffsetTable_Invalid 测试非法偏移表
func TestLoadOffsetTable_Invalid(t *testing.T) {
	fullBase := `
  base_offset:
    - [[0, 0], [0, 0], [0, 0], [0, 0]]
    - [[0, 0], [0, 0], [0, 0], [0, 0]]
    - [[0, 0], [0, 0], [0, 0], [0, 0]]
    - [[0, 0], [0, 0], [0, 0], [0, 0]]
`
	tests := []struct {
		name string
		yaml string
	}{
		{"缺少 base_offset", "tables:\n  run: []\n"},
		{"base_offset 不完整", "tables:\n  base_offset:\n    - [[0, 0]]\n"},
		{"坐标不是两个数", "tables:" + fullBase + "  run:\n    - [[1, 2, 3]]\n"},
		{"方向行过多", "tables:" + fullBase + "  run: [[], [], [], [], []]\n"},
		{"帧过多", "tables:" + fullBase + "  run:\n    - [[0, 0], [0, 0], [0, 0], [0, 0], [0, 0]]\n"},
		{"语法错误", "tables: [broken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadOffsetTable([]byte(tt.yaml)); err == nil {
				t.Error("LoadOffsetTable() expected error")
			}
		})
	}
}

package config

import (
	"fmt"
	"log"
	"os"

	"github.com/decker502/spritepreview/internal/offsets"
	"gopkg.in/yaml.v3"
)

// OffsetConfigPath 内嵌偏移表的路径
const OffsetConfigPath = "data/offsets.yaml"

// OffsetConfigFile 偏移表文件结构
//
//	tables:
//	  run:
//	    - [[0, 2], [0, 6], [0, 2], [0, 6]]   # Down
//	    - ...
type OffsetConfigFile struct {
	Version string               `yaml:"version"`
	Tables  map[string][][][]int `yaml:"tables"`
}

// LoadOffsetTable 解析偏移表 YAML
//
// base_offset 必须完整；其他表可以只声明不填充，缺失的单元格在查询时视为零
func LoadOffsetTable(data []byte) (*offsets.Table, error) {
	file := &OffsetConfigFile{}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("failed to parse offset config: %w", err)
	}

	rawBase, ok := file.Tables[offsets.BaseOffsetKey]
	if !ok {
		return nil, fmt.Errorf("offset config has no %s table", offsets.BaseOffsetKey)
	}
	base, err := toGrid(offsets.BaseOffsetKey, rawBase)
	if err != nil {
		return nil, err
	}

	layers := make(map[string]offsets.Grid, len(file.Tables))
	for name, raw := range file.Tables {
		if name == offsets.BaseOffsetKey {
			continue
		}
		grid, err := toGrid(name, raw)
		if err != nil {
			return nil, err
		}
		layers[name] = grid
	}

	table, err := offsets.NewTable(base, layers)
	if err != nil {
		return nil, fmt.Errorf("invalid offset config: %w", err)
	}
	return table, nil
}

// LoadOffsetTableFile 从文件加载偏移表
func LoadOffsetTableFile(configPath string) (*offsets.Table, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取偏移表失败: %w", err)
	}

	table, err := LoadOffsetTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	log.Printf("[Config] 加载偏移表: %s (%d 个图层)", configPath, len(table.Layers()))
	return table, nil
}

// toGrid 把 [方向][帧][dx, dy] 转换为偏移网格
func toGrid(name string, raw [][][]int) (offsets.Grid, error) {
	if len(raw) > offsets.Directions {
		return nil, fmt.Errorf("table %s: %d direction rows, max %d", name, len(raw), offsets.Directions)
	}

	grid := make(offsets.Grid, len(raw))
	for d, row := range raw {
		if len(row) > offsets.Frames {
			return nil, fmt.Errorf("table %s direction %d: %d frames, max %d", name, d, len(row), offsets.Frames)
		}
		cells := make([]offsets.Offset, len(row))
		for f, pair := range row {
			if len(pair) != 2 {
				return nil, fmt.Errorf("table %s [%d][%d]: want [dx, dy], got %v", name, d, f, pair)
			}
			cells[f] = offsets.Offset{DX: pair[0], DY: pair[1]}
		}
		grid[d] = cells
	}
	return grid, nil
}

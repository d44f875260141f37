// cmd/check_offsets/main.go
// 校验偏移表 YAML 并打印每个图层解析后的偏移
//
// 用法：
//
//	go run ./cmd/check_offsets [data/offsets.yaml]
package main

import (
	"fmt"
	"os"

	"github.com/decker502/spritepreview/internal/offsets"
	"github.com/decker502/spritepreview/pkg/config"
	"github.com/decker502/spritepreview/pkg/types"
)

func main() {
	path := config.OffsetConfigPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	table, err := config.LoadOffsetTableFile(path)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ %s 格式正确\n", path)

	printGrid("base_offset", func(d, f int) offsets.Offset { return table.BaseOffset(d, f) })

	for _, action := range types.AllActions {
		name := action.String()
		if !table.Declared(name) {
			fmt.Printf("⚠️  %s: 未声明\n", name)
			continue
		}
		printGrid(name, func(d, f int) offsets.Offset { return table.Lookup(name, d, f, false) })
		printGrid(name+" (hair/hat)", func(d, f int) offsets.Offset { return table.Lookup(name, d, f, true) })
	}
}

func printGrid(label string, lookup func(direction, frame int) offsets.Offset) {
	fmt.Printf("\n%s\n", label)
	for d := 0; d < offsets.Directions; d++ {
		fmt.Printf("  %-6s", types.Direction(d))
		for f := 0; f < offsets.Frames; f++ {
			o := lookup(d, f)
			fmt.Printf(" (%3d,%3d)", o.DX, o.DY)
		}
		fmt.Println()
	}
}

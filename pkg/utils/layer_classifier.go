package utils

import (
	"path"
	"strings"

	"github.com/decker502/spritepreview/pkg/components"
	"github.com/decker502/spritepreview/pkg/types"
)

// LayerClassifier 把拖入的文件名映射到图层键
// 返回 false 表示无法识别，调用方应静默丢弃该文件
type LayerClassifier interface {
	Classify(filename string) (components.LayerKey, bool)
}

// SupportedSheetExtensions 可解码的精灵图扩展名
var SupportedSheetExtensions = map[string]bool{
	".png":  true,
	".tga":  true,
	".webp": true,
}

// IsSupportedSheet 按扩展名判断文件格式是否受支持
func IsSupportedSheet(filename string) bool {
	return SupportedSheetExtensions[strings.ToLower(path.Ext(filename))]
}

// FilenameClassifier 基于文件名子串的启发式分类
//
// 规则（不区分大小写，只看文件名部分）：
//   - 含 "hair" 且不含 "trainer" → 发型
//   - 含 "hat" 且不含 "trainer" → 帽子
//   - 含 "_<动作>_" → 对应动作的服装层（扩展名前的 "_<动作>" 也算）
type FilenameClassifier struct{}

// NewFilenameClassifier 创建文件名分类器
func NewFilenameClassifier() *FilenameClassifier {
	return &FilenameClassifier{}
}

// Classify 实现 LayerClassifier
func (FilenameClassifier) Classify(filename string) (components.LayerKey, bool) {
	if !IsSupportedSheet(filename) {
		return "", false
	}

	name := strings.ToLower(path.Base(strings.ReplaceAll(filename, "\\", "/")))
	stem := strings.TrimSuffix(name, path.Ext(name))

	if !strings.Contains(stem, "trainer") {
		if strings.Contains(stem, "hair") {
			return components.LayerHairstyle, true
		}
		if strings.Contains(stem, "hat") {
			return components.LayerHat, true
		}
	}

	// 两端补下划线，使 "run_x" / "x_run" 这类边界位置也能匹配
	padded := "_" + stem + "_"
	for _, action := range types.AllActions {
		if strings.Contains(padded, "_"+action.String()+"_") {
			return components.ActionLayer(action), true
		}
	}

	return "", false
}

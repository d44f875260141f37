// embed.go - 资源嵌入声明
// 必须放在项目根目录（与 data/ 同级）
// 因为 //go:embed 指令只能嵌入当前包目录及其子目录的文件
package main

import "embed"

// 只嵌入默认配置；精灵图从 --assets 目录按需读取
//
//go:embed data/preview.yaml data/offsets.yaml
var dataFS embed.FS

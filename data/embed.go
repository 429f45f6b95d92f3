// Package data 嵌入游戏数据文件（难度、波次、敌人、平衡参数、地图）
//
// //go:embed 只能嵌入当前包目录下的文件，因此数据文件与本文件放在同一目录
package data

import "embed"

// Files 嵌入的数据文件系统，路径形如 "data/difficulty.yaml" 时需去掉前缀后访问
//
//go:embed *.yaml
var Files embed.FS

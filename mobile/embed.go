//go:build mobile

// embed.go 移动端数据嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需要把根目录的 data/ 复制到 mobile/data/：
//
//	cp -r data mobile/ && go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/fruit_tiers.yaml data/physics_tuning.yaml data/fruit_stacker.yaml
var dataFS embed.FS

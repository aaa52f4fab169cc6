//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
//	# Android
//	cp -r data mobile/ && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.matheolm.xsarcade -o build/android/xsarcade.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	cp -r data mobile/ && ebitenmobile bind -target ios -tags mobile -o build/ios/XsArcade.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/matheo-lm/xs-arcade/pkg/app"
	"github.com/matheo-lm/xs-arcade/pkg/embedded"
)

func init() {
	embedded.Init(dataFS)

	cfg, err := app.ParseEnv()
	if err != nil {
		log.Printf("[Mobile] Warning: %v (using defaults)", err)
		cfg = app.Config{Game: "fruit-stacker"}
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("[Mobile] failed to start: %v", err)
	}

	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}

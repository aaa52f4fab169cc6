package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/matheo-lm/xs-arcade/pkg/app"
	"github.com/matheo-lm/xs-arcade/pkg/config"
	"github.com/matheo-lm/xs-arcade/pkg/embedded"
)

func main() {
	cfg, err := app.ParseConfig(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "xs-arcade: %v\n", err)
		os.Exit(2)
	}

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		// NewApp 在非 verbose 模式下会关闭日志，错误直接写到 stderr
		fmt.Fprintf(os.Stderr, "xs-arcade: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("xs-arcade: Fruit Stacker")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	// 场景自己用墙钟时间换算固定步长，Update 频率跟随显示器刷新
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}

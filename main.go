package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/fruitcut/pkg/app"
	"github.com/decker502/fruitcut/pkg/config"
	"github.com/decker502/fruitcut/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "游戏配置文件路径（默认使用内嵌的 data/game.yaml）")
	noAudio := flag.Bool("no-audio", false, "禁用音效")
	flag.Parse()

	// .env 不存在不算错误
	if err := config.LoadEnvFile(); err != nil {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameCfg, err := config.Resolve(*configPath)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	ebiten.SetWindowSize(int(gameCfg.Canvas.Width), int(gameCfg.Canvas.Height))
	ebiten.SetWindowTitle("Fruit Cut")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	gameApp, err := app.NewApp(app.Config{
		Verbose:      *verbose,
		Game:         gameCfg,
		DisableAudio: *noAudio,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Close()

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rigidsync/ecs/bodysync"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "draw simulation shapes and body state, enable snapshot copy (C)")
	worldFile := flag.String("world", "world.yaml", "world settings prefab")
	sceneFile := flag.String("scene", "scene.yaml", "scene prefab to spawn")
	tps := flag.Int("tps", bodysync.DefaultTPS, "simulation ticks per second")
	watch := flag.Bool("watch", false, "reload prefabs and scripts from disk when they change")
	flag.Parse()

	if *tps <= 0 {
		log.Fatalf("-tps must be positive, got %d", *tps)
	}

	var logger *zap.Logger
	var err error
	if *debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	game, err := NewGame(GameConfig{
		WorldFile: *worldFile,
		SceneFile: *sceneFile,
		TPS:       *tps,
		Debug:     *debug,
		Watch:     *watch,
	}, logger)
	if err != nil {
		logger.Fatal("start", zap.Error(err))
	}
	defer func() { _ = game.Close() }()

	ebiten.SetTPS(*tps)
	ebiten.SetWindowSize(game.view.Width, game.view.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("rigidsync")

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game loop", zap.Error(err))
	}
}

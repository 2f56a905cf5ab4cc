package main

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/rigidsync/common"
	"github.com/milk9111/rigidsync/ecs"
	"github.com/milk9111/rigidsync/ecs/bodysync"
	"github.com/milk9111/rigidsync/ecs/entity"
	"github.com/milk9111/rigidsync/ecs/system"
	"github.com/milk9111/rigidsync/physics"
	"github.com/milk9111/rigidsync/prefabs"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

const hudHelp = "arrows: push  Q/E: spin  P: pause  R: reset  Esc: quit"

type GameConfig struct {
	WorldFile string
	SceneFile string
	TPS       int
	Debug     bool
	Watch     bool
}

type Game struct {
	cfg    GameConfig
	logger *zap.Logger

	world     *ecs.World
	scheduler *ecs.Scheduler
	space     *physics.Space
	sync      *bodysync.System
	impulses  *system.ImpulseSystem
	render    *system.RenderSystem
	view      common.View

	worldSpec prefabs.WorldSpec
	specs     *prefabs.Cache
	watcher   *prefabs.Watcher
	clipboard *snapshotClipboard

	hudFace ebtext.Face
	pauseUI *ebitenui.UI
	paused  bool
	quit    bool
}

func NewGame(cfg GameConfig, logger *zap.Logger) (*Game, error) {
	worldSpec, err := prefabs.LoadWorldSpec(cfg.WorldFile)
	if err != nil {
		return nil, err
	}
	space, err := physics.NewSpace(worldSpec.PhysicsConfig(), physics.WithLogger(logger.Named("physics")))
	if err != nil {
		return nil, err
	}

	view := common.DefaultView()
	if worldSpec.PixelsPerUnit > 0 {
		view.PixelsPerUnit = worldSpec.PixelsPerUnit
	}
	view.Center = worldSpec.Camera.Vec2()

	g := &Game{
		cfg:       cfg,
		logger:    logger,
		world:     ecs.NewWorld(),
		space:     space,
		view:      view,
		worldSpec: worldSpec,
		specs:     prefabs.NewCache(),
		render:    system.NewRenderSystem(view),
		hudFace:   ebtext.NewGoXFace(basicfont.Face7x13),
	}

	mapper, err := g.loadMapper()
	if err != nil {
		return nil, err
	}
	g.impulses = system.NewImpulseSystem(mapper, logger.Named("impulse"))
	g.sync = bodysync.New(space,
		bodysync.WithClock(bodysync.NewFixedClock(cfg.TPS)),
		bodysync.WithLogger(logger.Named("sync")),
	)
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		system.QuitSystem{},
		g.impulses,
		g.sync,
		bodysync.NewEventLogSystem(logger.Named("events")),
	)
	g.pauseUI = NewPauseUI(g)

	if err := g.spawnScene(); err != nil {
		return nil, err
	}

	if cfg.Watch {
		w, err := prefabs.NewWatcher(logger.Named("watch"), prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			logger.Warn("prefab watcher disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	if cfg.Debug {
		g.clipboard = newSnapshotClipboard(logger)
	}
	return g, nil
}

func (g *Game) loadMapper() (system.ImpulseMapper, error) {
	if g.worldSpec.ImpulseScript == "" {
		mapper := system.NewKeyImpulseMapper()
		if g.worldSpec.LinearImpulse > 0 {
			mapper.Linear = g.worldSpec.LinearImpulse
		}
		if g.worldSpec.AngularImpulse > 0 {
			mapper.Angular = g.worldSpec.AngularImpulse
		}
		return mapper, nil
	}
	src, err := prefabs.LoadScript(g.worldSpec.ImpulseScript)
	if err != nil {
		return nil, fmt.Errorf("load impulse script: %w", err)
	}
	return system.NewScriptedImpulseMapper(src)
}

func (g *Game) spawnScene() error {
	scene, err := prefabs.LoadSceneSpec(g.cfg.SceneFile)
	if err != nil {
		return err
	}
	ents, err := entity.SpawnScene(g.world, g.specs, scene)
	if err != nil {
		return err
	}
	g.logger.Info("scene spawned", zap.String("scene", scene.Name), zap.Int("entities", len(ents)))
	return nil
}

func (g *Game) resetScene() error {
	for _, e := range ecs.Entities(g.world) {
		g.sync.Despawn(g.world, e)
	}
	return g.spawnScene()
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.resetScene(); err != nil {
			g.logger.Warn("scene reset failed", zap.Error(err))
		}
	}
	if g.clipboard != nil && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.clipboard.Copy(bodysync.Snapshot(g.world, g.space))
	}

	if err := g.scheduler.Update(g.world); err != nil {
		if errors.Is(err, ebiten.Termination) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("prefab watcher error", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	if filepath.Ext(path) == ".tengo" {
		mapper, err := g.loadMapper()
		if err != nil {
			g.logger.Warn("impulse script reload failed", zap.String("path", path), zap.Error(err))
			return
		}
		g.impulses.SetMapper(mapper)
		g.logger.Info("impulse script reloaded", zap.String("path", path))
		return
	}
	if g.specs.Invalidate(path) {
		g.logger.Info("prefab reloaded; applies to new spawns", zap.String("path", path))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x18, G: 0x18, B: 0x20, A: 0xff})
	g.render.Draw(g.world, screen)

	if g.cfg.Debug {
		system.DrawPhysicsDebug(g.space.Chipmunk(), g.view, screen)
		system.DrawBodyDebug(g.world, g.space, screen)
	}

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(10, float64(g.view.Height-20))
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, hudHelp, g.hudFace, op)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.view.Width, g.view.Height
}

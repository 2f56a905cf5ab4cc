// Command simulate runs a scene without a window and prints the synced body
// poses as YAML.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigidsync/ecs"
	"github.com/milk9111/rigidsync/ecs/bodysync"
	"github.com/milk9111/rigidsync/ecs/component"
	"github.com/milk9111/rigidsync/ecs/entity"
	"github.com/milk9111/rigidsync/physics"
	"github.com/milk9111/rigidsync/prefabs"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type frameOutput struct {
	Frame  int                     `yaml:"frame"`
	Bodies []bodysync.BodySnapshot `yaml:"bodies"`
}

func main() {
	worldFile := flag.String("world", "world.yaml", "world settings prefab")
	sceneFile := flag.String("scene", "scene.yaml", "scene prefab to spawn")
	frames := flag.Int("frames", 120, "frames to simulate")
	tps := flag.Int("tps", bodysync.DefaultTPS, "ticks per second; each frame advances 1/tps seconds")
	every := flag.Int("every", 10, "print every n-th frame")
	pushFrame := flag.Int("push-frame", -1, "frame on which to request a linear impulse")
	pushX := flag.Float64("push-x", 0.5, "impulse x")
	pushY := flag.Float64("push-y", 0, "impulse y")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
		logger = l
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger, *worldFile, *sceneFile, *frames, *tps, *every, *pushFrame, mgl32.Vec2{float32(*pushX), float32(*pushY)}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(logger *zap.Logger, worldFile, sceneFile string, frames, tps, every, pushFrame int, push mgl32.Vec2) error {
	if every <= 0 {
		every = 1
	}
	worldSpec, err := prefabs.LoadWorldSpec(worldFile)
	if err != nil {
		return err
	}
	space, err := physics.NewSpace(worldSpec.PhysicsConfig(), physics.WithLogger(logger))
	if err != nil {
		return err
	}
	scene, err := prefabs.LoadSceneSpec(sceneFile)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	if _, err := entity.SpawnScene(w, prefabs.NewCache(), scene); err != nil {
		return err
	}

	clock := bodysync.NewFixedClock(tps)
	syncer := bodysync.New(space, bodysync.WithClock(clock), bodysync.WithLogger(logger))
	scheduler := ecs.NewScheduler(syncer, bodysync.NewEventLogSystem(logger))

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()

	for frame := 0; frame < frames; frame++ {
		if frame == pushFrame {
			ecs.ForEach(w, component.ImpulseRequestComponent.Kind(), func(_ ecs.Entity, req *component.ImpulseRequest) {
				req.SetLinear(push)
			})
		}
		if err := scheduler.Update(w); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		if frame%every == 0 || frame == frames-1 {
			if err := enc.Encode(frameOutput{Frame: frame, Bodies: bodysync.Snapshot(w, space)}); err != nil {
				return err
			}
		}
	}
	return nil
}

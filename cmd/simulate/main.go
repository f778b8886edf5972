// Command simulate runs a level headless with scripted input and logs the
// player's motion. It is handy for checking tuning changes without a window.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/obj"
	"github.com/milk9111/platformer/system"
	"gopkg.in/yaml.v3"
)

// defaultScript walks right, jumps, dashes and double jumps.
var defaultScript = []obj.InputStep{
	{Ticks: 30, RawInput: obj.RawInput{Axis: 1}},
	{Ticks: 1, RawInput: obj.RawInput{Axis: 1, Jump: true}},
	{Ticks: 20, RawInput: obj.RawInput{Axis: 1}},
	{Ticks: 1, RawInput: obj.RawInput{Axis: 1, Jump: true}},
	{Ticks: 40, RawInput: obj.RawInput{}},
	{Ticks: 1, RawInput: obj.RawInput{Axis: 1, Dash: true}},
	{Ticks: 30, RawInput: obj.RawInput{Axis: 1}},
}

func main() {
	levelName := flag.String("level", "demo.json", "level name in levels/ or a path")
	ticks := flag.Int("ticks", 0, "ticks to run, 0 runs until the script ends")
	script := flag.String("script", "", "YAML list of input steps {ticks, axis, jump, dash, shoot, uppercut}")
	every := flag.Int("every", 10, "log every N ticks")
	flag.Parse()

	steps := defaultScript
	if *script != "" {
		b, err := os.ReadFile(*script)
		if err != nil {
			log.Fatalf("simulate: read script: %v", err)
		}
		steps = nil
		if err := yaml.Unmarshal(b, &steps); err != nil {
			log.Fatalf("simulate: parse script: %v", err)
		}
	}

	lvl, err := levels.Load(*levelName)
	if err != nil {
		lvl, err = levels.LoadFile(*levelName)
	}
	if err != nil {
		log.Fatalf("simulate: %v", err)
	}

	cfg, err := system.LoadConfig()
	if err != nil {
		log.Fatalf("simulate: %v", err)
	}
	input := obj.NewScriptedInput(steps...)
	world, err := system.NewWorld(lvl, cfg, input)
	if err != nil {
		log.Fatalf("simulate: %v", err)
	}
	defer world.Close()

	p := world.Player
	events := map[string]int{}
	for _, ev := range []component.MovementEvent{component.OnFall, component.OnLand, component.OnLateralCollision, component.OnCeilingCollision} {
		p.Events.Subscribe(ev, func(ev component.MovementEvent) { events[ev.String()]++ })
	}

	n := max(*every, 1)
	for i := 1; ; i++ {
		if *ticks > 0 && i > *ticks {
			break
		}
		if *ticks <= 0 && input.Done() {
			break
		}
		world.Update(common.TickDelta)
		if i%n == 0 {
			log.Printf("tick=%d pos=(%.2f,%.2f) vel=(%.2f,%.2f) move=%v cond=%v dash=%v",
				i, p.Body.Position.X, p.Body.Position.Y, p.Body.Velocity.X, p.Body.Velocity.Y,
				p.Body.Movement, p.Body.Condition, p.Dash.Phase())
		}
	}
	log.Printf("done: ticks=%d deaths=%d kills=%d events=%v", world.Ticks(), world.Deaths(), world.Kills(), events)
}

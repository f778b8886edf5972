package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/obj"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/system"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 640
	baseHeight = 360
)

type palette struct {
	player   color.Color
	enemy    color.Color
	platform color.Color
}

type Game struct {
	frames int
	debug  bool

	level   *levels.Level
	world   *system.World
	camera  *obj.Camera
	input   *deviceInput
	watcher *prefabs.Watcher
	colors  palette
}

func NewGame(levelName string, debug bool) (*Game, error) {
	lvl, err := loadLevel(levelName)
	if err != nil {
		return nil, err
	}
	g := &Game{
		debug:  debug,
		level:  lvl,
		camera: obj.NewCamera(baseWidth, baseHeight, 1),
		input:  &deviceInput{},
	}
	if err := g.rebuild(); err != nil {
		return nil, err
	}

	// Hot reload is optional: without a prefabs/ directory on disk the
	// embedded specs are used as is.
	if w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts"); err != nil {
		log.Printf("hot reload disabled: %v", err)
	} else {
		g.watcher = w
	}
	return g, nil
}

// loadLevel accepts a level name in levels/ or a path to a file.
func loadLevel(name string) (*levels.Level, error) {
	if _, err := os.Stat(name); err == nil {
		return levels.LoadFile(name)
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return levels.Load(name)
}

// rebuild reloads every spec and respawns the level.
func (g *Game) rebuild() error {
	cfg, err := system.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	world, err := system.NewWorld(g.level, cfg, g.input)
	if err != nil {
		return err
	}
	if g.world != nil {
		g.world.Close()
	}
	g.world = world
	g.world.AttachCamera(g.camera)
	g.colors = loadPalette()
	return nil
}

func loadPalette() palette {
	p := palette{
		player:   colornames.Deepskyblue,
		enemy:    colornames.Tomato,
		platform: colornames.Orange,
	}
	if spec, err := prefabs.LoadPlayerSpec(); err == nil {
		p.player = spec.DebugColor.Or(p.player)
	}
	if spec, err := prefabs.LoadEnemySpec(); err == nil {
		p.enemy = spec.DebugColor.Or(p.enemy)
	}
	if spec, err := prefabs.LoadPlatformSpec(); err == nil {
		p.platform = spec.DebugColor.Or(p.platform)
	}
	return p
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.rebuild(); err != nil {
			log.Printf("restart: %v", err)
		}
	}
	g.pollReload()

	g.world.Update(common.TickDelta)
	return nil
}

// pollReload applies edited specs between ticks. Player tuning is swapped
// in place; anything else rebuilds the level.
func (g *Game) pollReload() {
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
			g.reload(prefabs.BaseName(path))
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("hot reload: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	if name == "player.yaml" {
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			log.Printf("hot reload %s: %v", name, err)
			return
		}
		if err := g.world.SetPlayerTuning(obj.TuningFromSpec(spec)); err != nil {
			log.Printf("hot reload %s: %v", name, err)
			return
		}
		g.colors.player = spec.DebugColor.Or(colornames.Deepskyblue)
		log.Printf("hot reload: applied %s", name)
		return
	}
	if err := g.rebuild(); err != nil {
		log.Printf("hot reload %s: %v", name, err)
		return
	}
	log.Printf("hot reload: %s changed, level rebuilt", name)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	g.drawWorld(screen)

	p := g.world.Player
	hud := fmt.Sprintf("FPS: %.0f  HP: %.0f/%.0f  deaths: %d  kills: %d",
		ebiten.ActualFPS(), p.Health.Current, p.Health.Max, g.world.Deaths(), g.world.Kills())
	if g.debug {
		hud += fmt.Sprintf("\npos %.1f,%.1f  vel %.1f,%.1f\nmove %v  cond %v\nsurface %v  dash %v  knockback %v",
			p.Body.Position.X, p.Body.Position.Y, p.Body.Velocity.X, p.Body.Velocity.Y,
			p.Body.Movement, p.Body.Condition, p.Body.Surface, p.Dash.Phase(), p.Knockback.Phase())
	}
	ebitenutil.DebugPrint(screen, hud)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.world != nil {
		g.world.Close()
	}
}

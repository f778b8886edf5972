package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/milk9111/platformer/common"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrBadLevel = errors.New("levels: bad level")

// Tile codes.
const (
	TileEmpty = iota
	TileSolid
	TileSlopeRight // rises toward +X
	TileSlopeLeft  // rises toward -X
	TileOneWay     // jump up through, land on top
	TileIcy
	TileBouncy
	TileSoftTop // blocks from below only
	tileCount
)

// Entity types.
const (
	EntityPlayer   = "player"
	EntityEnemy    = "enemy"
	EntityPlatform = "platform"
)

// Level is a row-major tile grid plus entity spawns. Tile and entity
// coordinates are in tiles; Y grows downward.
type Level struct {
	Name     string   `json:"name,omitempty"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	TileSize int      `json:"tile_size,omitempty"`
	Tiles    []int    `json:"tiles"`
	Entities []Entity `json:"entities,omitempty"`
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Entity is a spawn. X and Y mark the tile the entity stands in; a body's
// feet go on the bottom edge of that tile. Platforms use Nodes instead, each
// the center of a tile.
type Entity struct {
	Type   string  `json:"type"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Nodes  []Point `json:"nodes,omitempty"`
	OneWay bool    `json:"one_way,omitempty"`
}

// Load reads a level by name. A file under ./levels on disk overrides the
// embedded copy.
func Load(name string) (*Level, error) {
	if data, err := os.ReadFile(filepath.Join("levels", name)); err == nil {
		return Parse(name, data)
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(name, data)
}

// LoadFile reads a level from an explicit path.
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	return Parse(filepath.Base(path), data)
}

// Parse decodes and validates a level.
func Parse(name string, data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = name
	}
	if lvl.TileSize <= 0 {
		lvl.TileSize = common.TileSize
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrBadLevel, l.Width, l.Height)
	}
	if len(l.Tiles) != l.Width*l.Height {
		return fmt.Errorf("%w: %d tiles for %dx%d", ErrBadLevel, len(l.Tiles), l.Width, l.Height)
	}
	for i, t := range l.Tiles {
		if t < 0 || t >= tileCount {
			return fmt.Errorf("%w: tile %d at (%d,%d)", ErrBadLevel, t, i%l.Width, i/l.Width)
		}
	}

	players := 0
	for i, e := range l.Entities {
		switch e.Type {
		case EntityPlayer:
			players++
		case EntityEnemy:
		case EntityPlatform:
			if len(e.Nodes) == 0 {
				return fmt.Errorf("%w: platform %d has no nodes", ErrBadLevel, i)
			}
			for _, n := range e.Nodes {
				if !l.InBounds(n.X, n.Y) {
					return fmt.Errorf("%w: platform %d node (%d,%d) out of bounds", ErrBadLevel, i, n.X, n.Y)
				}
			}
			continue
		default:
			return fmt.Errorf("%w: unknown entity %q", ErrBadLevel, e.Type)
		}
		if !l.InBounds(e.X, e.Y) {
			return fmt.Errorf("%w: %s at (%d,%d) out of bounds", ErrBadLevel, e.Type, e.X, e.Y)
		}
	}
	if players != 1 {
		return fmt.Errorf("%w: want one player spawn, got %d", ErrBadLevel, players)
	}
	return nil
}

func (l *Level) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.Width && y < l.Height
}

// At returns the tile code at (x, y). Outside the grid is empty.
func (l *Level) At(x, y int) int {
	if !l.InBounds(x, y) {
		return TileEmpty
	}
	return l.Tiles[y*l.Width+x]
}

// PixelSize returns the level size in pixels.
func (l *Level) PixelSize() (w, h float64) {
	return float64(l.Width * l.TileSize), float64(l.Height * l.TileSize)
}

// Player returns the player spawn.
func (l *Level) Player() Entity {
	for _, e := range l.Entities {
		if e.Type == EntityPlayer {
			return e
		}
	}
	return Entity{}
}

// Of returns every entity of the given type, in file order.
func (l *Level) Of(kind string) []Entity {
	var out []Entity
	for _, e := range l.Entities {
		if e.Type == kind {
			out = append(out, e)
		}
	}
	return out
}

// Feet returns the pixel position of a body standing in tile (x, y).
func (l *Level) Feet(x, y int) (float64, float64) {
	s := float64(l.TileSize)
	return (float64(x) + 0.5) * s, float64(y+1) * s
}

// TileCenter returns the pixel center of tile (x, y).
func (l *Level) TileCenter(x, y int) (float64, float64) {
	s := float64(l.TileSize)
	return (float64(x) + 0.5) * s, (float64(y) + 0.5) * s
}

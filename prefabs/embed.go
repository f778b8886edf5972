package prefabs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrNotFound = errors.New("prefabs: not found")

//go:embed *.yaml scripts/*.tengo
var prefabsFS embed.FS

// Load reads a spec such as "player.yaml". A copy under ./prefabs on disk
// wins over the embedded one so tuning can be edited without a rebuild.
func Load(name string) ([]byte, error) {
	return read(cleanPrefabPath(name))
}

// LoadScript reads a behaviour script by file name.
func LoadScript(name string) ([]byte, error) {
	return read(cleanScriptPath(name))
}

func read(clean string) ([]byte, error) {
	if clean == "" {
		return nil, fmt.Errorf("%w: empty name", ErrNotFound)
	}
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	data, err := prefabsFS.ReadFile(clean)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, clean)
	}
	return data, err
}

// BaseName maps a watcher path back to the name Load expects.
func BaseName(p string) string {
	s := filepath.ToSlash(p)
	if i := strings.LastIndex(s, "prefabs/"); i >= 0 {
		return s[i+len("prefabs/"):]
	}
	return path.Base(s)
}

func cleanPrefabPath(p string) string {
	s := filepath.ToSlash(p)
	s, _ = strings.CutPrefix(s, "prefabs/")
	return s
}

// cleanScriptPath accepts "wander.tengo", "scripts/wander.tengo" or
// "prefabs/scripts/wander.tengo".
func cleanScriptPath(p string) string {
	if p == "" {
		return ""
	}
	s := cleanPrefabPath(p)
	s, _ = strings.CutPrefix(s, "scripts/")
	return path.Join("scripts", s)
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}

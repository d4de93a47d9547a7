// Package prefs keeps the UI settings a user changes from inside the TUI:
// the theme and whether the bookmarks panel is open. They live in
// ~/.config/forkify/prefs.toml, apart from the hand-edited config.toml.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/forkify/internal/config"
)

const (
	defaultPrefsPath = "~/.config/forkify/prefs.toml"

	// DefaultTheme is used when no theme has been saved.
	DefaultTheme = "Dracula"
)

// Prefs is the persisted UI state.
type Prefs struct {
	Theme         string `toml:"theme"`
	BookmarksOpen bool   `toml:"bookmarks_open"`
}

// Defaults returns the prefs of a first run.
func Defaults() Prefs {
	return Prefs{Theme: DefaultTheme}
}

// DefaultPath is the prefs location used when none is given.
func DefaultPath() string {
	return defaultPrefsPath
}

func (p *Prefs) normalize() {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = DefaultTheme
	}
}

// Load reads the prefs at path. A missing file gives the defaults with no
// error; an unreadable or malformed one gives the defaults and the error.
func Load(path string) (Prefs, error) {
	file, err := resolve(path)
	if err != nil {
		return Defaults(), err
	}

	data, err := os.ReadFile(file)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return Defaults(), nil
	case err != nil:
		return Defaults(), fmt.Errorf("read prefs: %w", err)
	}

	p := Defaults()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults(), fmt.Errorf("parse prefs %s: %w", file, err)
	}
	p.normalize()
	return p, nil
}

// Update loads the prefs at path, applies change and writes them back, so
// settings saved by other views survive. A malformed file is replaced.
func Update(path string, change func(*Prefs)) error {
	file, err := resolve(path)
	if err != nil {
		return err
	}
	p, _ := Load(file)
	change(&p)
	p.normalize()
	return write(file, p)
}

// write replaces file via a temporary sibling so a crash never leaves a
// truncated prefs file behind.
func write(file string, p Prefs) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(file), ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("create prefs: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), file); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	file, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("prefs path: %w", err)
	}
	return file, nil
}

// config.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"encoding/json"
	"io"
	"os"
	"path"

	"github.com/neuroview/neuroview/pkg/log"
	"github.com/neuroview/neuroview/pkg/overlay"
	"github.com/neuroview/neuroview/pkg/scene"

	"github.com/brunoga/deep"
)

// SavedDisplay records the per-overlay display settings worth keeping
// across sessions, keyed by overlay name in GlobalConfig.Displays.
type SavedDisplay struct {
	Enabled  bool   `json:"enabled"`
	Colormap string `json:"colormap,omitempty"`
}

type GlobalConfig struct {
	Version           int
	InitialWindowSize [2]int
	Canvas            scene.OptsState
	Displays          map[string]SavedDisplay
}

var defaultConfig = GlobalConfig{
	Version:           1,
	InitialWindowSize: [2]int{1024, 768},
	Canvas:            scene.DefaultOptsState(),
	Displays:          map[string]SavedDisplay{},
}

func configFilePath(lg *log.Logger) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		lg.Errorf("Unable to find user config dir: %v", err)
		dir = "."
	}

	dir = path.Join(dir, "NeuroView")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		lg.Errorf("%s: unable to make directory for config file: %v", dir, err)
	}

	return path.Join(dir, "config.json")
}

// LoadOrMakeDefaultConfig returns the saved configuration, or a fresh
// copy of the defaults if there is no config file or it cannot be
// parsed.
func LoadOrMakeDefaultConfig(lg *log.Logger) *GlobalConfig {
	config := deep.MustCopy(defaultConfig)

	fn := configFilePath(lg)
	if f, err := os.Open(fn); err == nil {
		defer f.Close()
		lg.Infof("%s: loading config", fn)
		if err := json.NewDecoder(f).Decode(&config); err != nil {
			lg.Errorf("%s: unable to parse config file: %v", fn, err)
			config = deep.MustCopy(defaultConfig)
		}
	}

	if config.Displays == nil {
		config.Displays = make(map[string]SavedDisplay)
	}
	return &config
}

func (gc *GlobalConfig) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(gc)
}

func (gc *GlobalConfig) Save(lg *log.Logger) error {
	fn := configFilePath(lg)
	lg.Infof("Saving config to: %s", fn)

	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	return gc.Encode(f)
}

// applySavedDisplays pushes saved per-overlay settings onto the display
// records of the overlays currently loaded; overlays without a saved
// entry keep their defaults.
func applySavedDisplays(gc *GlobalConfig, dctx *overlay.Context, canvas *scene.Canvas) {
	for _, o := range dctx.OrderedOverlays() {
		saved, ok := gc.Displays[o.Name()]
		if !ok {
			continue
		}

		if d, err := dctx.Display(o); err == nil {
			d.SetEnabled(saved.Enabled)
		}
		if saved.Colormap != "" {
			if vol, ok := canvas.GetGLObject(o).(*scene.GLVolume); ok {
				vol.SetColormap(saved.Colormap)
			}
		}
	}
}

// recordDisplays captures the current per-overlay settings into the
// config before it is saved.
func recordDisplays(gc *GlobalConfig, dctx *overlay.Context, canvas *scene.Canvas) {
	for _, o := range dctx.OrderedOverlays() {
		d, err := dctx.Display(o)
		if err != nil {
			continue
		}

		saved := SavedDisplay{Enabled: d.Enabled()}
		if vol, ok := canvas.GetGLObject(o).(*scene.GLVolume); ok {
			saved.Colormap = vol.Colormap()
		}
		gc.Displays[o.Name()] = saved
	}
}

package gconf

import (
	"encoding/json"
	"fmt"

	"jigsaw/ui/gui/gbase/gos"

	"github.com/caarlos0/env/v11"
)

const DefaultFile = "jigsaw.json"

// smallest window the play scene is laid out for
const (
	MinWindowW = 320
	MinWindowH = 240
)

type Config struct {
	Theme        string  `json:"theme" env:"JIGSAW_THEME"`                 // light/dark
	Lang         string  `json:"language" env:"JIGSAW_LANG"`               // en/ru
	WindowH      int     `json:"window_h" env:"JIGSAW_WINDOW_H"`           //
	WindowW      int     `json:"window_w" env:"JIGSAW_WINDOW_W"`           //
	Debug        bool    `json:"debug" env:"JIGSAW_DEBUG"`                 // true/false
	SnapDistance float64 `json:"snap_distance" env:"JIGSAW_SNAP"`          // board units
	SavePath     string  `json:"save_path" env:"JIGSAW_SAVE_PATH"`         // sqlite file
	NativeDialog bool    `json:"native_dialog" env:"JIGSAW_NATIVE_DIALOG"` // os dialog on solve
	Sound        bool    `json:"sound" env:"JIGSAW_SOUND"`                 // snap tones

	file string
}

func defaultConfig() Config {
	return Config{
		Theme:        "light",
		Lang:         "en",
		WindowH:      700,
		WindowW:      900,
		Debug:        false,
		SnapDistance: 0.05,
		SavePath:     "jigsaw.db",
		NativeDialog: false,
		Sound:        true,
	}
}

// NewGUIConfig reads the config file (defaults when missing) and applies
// JIGSAW_* environment overrides on top
func NewGUIConfig(file string) (*Config, error) {
	if file == "" {
		file = DefaultFile
	}
	c := defaultConfig()

	data, ok, err := gos.ReadIfExists(file)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("error decode config: %w", err)
		}
	}

	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("error parse env: %w", err)
	}
	correctableConfig(&c)
	c.file = file
	return &c, nil
}

func (c *Config) Save() error {
	file := c.file
	if file == "" {
		file = DefaultFile
	}
	jsonData, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}
	return gos.WriteFile(file, jsonData)
}

func correctableConfig(c *Config) {
	def := defaultConfig()
	if c.Theme != "light" && c.Theme != "dark" {
		c.Theme = def.Theme
	}
	if c.Lang != "en" && c.Lang != "ru" {
		c.Lang = def.Lang
	}
	if c.WindowH < MinWindowH || c.WindowW < MinWindowW {
		c.WindowH = def.WindowH
		c.WindowW = def.WindowW
	}
	if c.SnapDistance <= 0 || c.SnapDistance > 0.5 {
		c.SnapDistance = def.SnapDistance
	}
	if c.SavePath == "" {
		c.SavePath = def.SavePath
	}
}

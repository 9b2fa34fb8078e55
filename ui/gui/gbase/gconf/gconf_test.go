package gconf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewGUIConfigDefaults(t *testing.T) {
	c, err := NewGUIConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("NewGUIConfig: %v", err)
	}
	if c.Theme != "light" || c.Lang != "en" || c.SnapDistance != 0.05 || c.SavePath != "jigsaw.db" {
		t.Errorf("defaults = %+v", c)
	}
}

func TestNewGUIConfigFileAndCorrection(t *testing.T) {
	file := filepath.Join(t.TempDir(), "jigsaw.json")
	data := `{"theme":"neon","language":"ru","window_w":100,"window_h":100,"snap_distance":0.08}`
	if err := os.WriteFile(file, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := NewGUIConfig(file)
	if err != nil {
		t.Fatalf("NewGUIConfig: %v", err)
	}
	if c.Theme != "light" {
		t.Errorf("Theme = %q, want corrected to light", c.Theme)
	}
	if c.Lang != "ru" {
		t.Errorf("Lang = %q", c.Lang)
	}
	if c.WindowW != 900 || c.WindowH != 700 {
		t.Errorf("window = %dx%d, want default", c.WindowW, c.WindowH)
	}
	if c.SnapDistance != 0.08 {
		t.Errorf("SnapDistance = %v", c.SnapDistance)
	}
}

func TestNewGUIConfigEnvOverrides(t *testing.T) {
	t.Setenv("JIGSAW_THEME", "dark")
	t.Setenv("JIGSAW_SNAP", "0.1")
	t.Setenv("JIGSAW_NATIVE_DIALOG", "true")

	c, err := NewGUIConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("NewGUIConfig: %v", err)
	}
	if c.Theme != "dark" || c.SnapDistance != 0.1 || !c.NativeDialog {
		t.Errorf("env overrides not applied: %+v", c)
	}
}

func TestNewGUIConfigBadJSON(t *testing.T) {
	file := filepath.Join(t.TempDir(), "jigsaw.json")
	if err := os.WriteFile(file, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewGUIConfig(file); err == nil {
		t.Error("expected decode error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "jigsaw.json")
	c, err := NewGUIConfig(file)
	if err != nil {
		t.Fatal(err)
	}
	c.Theme = "dark"
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, err := NewGUIConfig(file)
	if err != nil {
		t.Fatal(err)
	}
	if again.Theme != "dark" {
		t.Errorf("Theme = %q after save", again.Theme)
	}
}

func TestWindowSizeLimits(t *testing.T) {
	tests := []struct {
		name  string
		w, h  string
		wantW int
		wantH int
	}{
		{"at the limit", "320", "240", MinWindowW, MinWindowH},
		{"too short for the board", "800", "60", 900, 700},
		{"too narrow", "100", "600", 900, 700},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JIGSAW_WINDOW_W", tt.w)
			t.Setenv("JIGSAW_WINDOW_H", tt.h)
			c, err := NewGUIConfig(filepath.Join(t.TempDir(), "missing.json"))
			if err != nil {
				t.Fatalf("NewGUIConfig: %v", err)
			}
			if c.WindowW != tt.wantW || c.WindowH != tt.wantH {
				t.Errorf("window = %dx%d, want %dx%d", c.WindowW, c.WindowH, tt.wantW, tt.wantH)
			}
		})
	}
}

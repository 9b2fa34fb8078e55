package gos

import (
	"path/filepath"
	"testing"
)

func TestReadIfExists(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "conf.json")

	if _, ok, err := ReadIfExists(name); ok || err != nil {
		t.Fatalf("missing file: ok=%v err=%v", ok, err)
	}
	if err := WriteFile(name, []byte("{}")); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, ok, err := ReadIfExists(name)
	if !ok || err != nil || string(data) != "{}" {
		t.Fatalf("got %q ok=%v err=%v", data, ok, err)
	}
}

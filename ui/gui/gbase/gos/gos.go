// Package gos wraps the few file operations the GUI config needs.
package gos

import (
	"errors"
	"io/fs"
	"os"
)

// ReadIfExists returns the file content, ok is false when there is no such file
func ReadIfExists(name string) (data []byte, ok bool, err error) {
	data, err = os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func WriteFile(name string, data []byte) error {
	return os.WriteFile(name, data, 0644)
}

package session

import (
	"fmt"
	"os"
)

// EnsureDir creates dir if needed. When it cannot, it returns "." along with
// the error so the caller can report it and keep going in the working
// directory.
func EnsureDir(dir string) (string, bool, error) {
	if dir == "" || dir == "." {
		return ".", false, nil
	}
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return ".", false, fmt.Errorf("results path %s is not a directory", dir)
		}
		return dir, false, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ".", false, fmt.Errorf("creating results folder %s: %w", dir, err)
	}
	return dir, true, nil
}

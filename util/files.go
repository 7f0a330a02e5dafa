package util

import (
	"os"
	"path"
)

func VerifyExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// LocateFile searches for a file as given and under each of the provided
// directories, returning the first location that exists.
func LocateFile(filename string, dirs []string) (string, bool) {
	if filename == "" {
		return "", false
	}
	if VerifyExists(filename) {
		return filename, true
	}
	for _, dir := range dirs {
		candidate := path.Join(dir, filename)
		if VerifyExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

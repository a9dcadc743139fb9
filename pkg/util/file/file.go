package file

import (
	"errors"
	"os"
)

// Exist checks to see if a regular file exists at the provided path.
func Exist(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

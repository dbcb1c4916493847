package civicinfo

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ReadAPIKey reads the API key from path, stripping surrounding whitespace.
func ReadAPIKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read civic API key: %w", err)
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", errors.New("read civic API key: " + path + " is empty")
	}
	return key, nil
}

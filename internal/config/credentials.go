package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultCredentialsFile holds KEY=value lines.
	DefaultCredentialsFile = ".config"

	APIKeyVar = "ALPHA_VANTAGE_API_KEY"
)

var ErrAPIKeyNotFound = errors.New("ALPHA_VANTAGE_API_KEY not found")

// LoadAPIKey returns the Alpha Vantage key. The environment variable wins
// over the credentials file; a missing file is not an error as long as the
// variable is set.
func LoadAPIKey(path string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(APIKeyVar)); v != "" {
		return v, nil
	}
	if path == "" {
		path = DefaultCredentialsFile
	}
	vals, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: no %s variable and no credentials file %s", ErrAPIKeyNotFound, APIKeyVar, path)
		}
		return "", fmt.Errorf("read credentials %s: %w", path, err)
	}
	key := strings.TrimSpace(vals[APIKeyVar])
	if key == "" {
		return "", fmt.Errorf("%w in %s", ErrAPIKeyNotFound, path)
	}
	return key, nil
}

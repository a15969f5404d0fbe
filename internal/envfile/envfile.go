// Package envfile loads environment variables from .env files.
// Variables already set in the environment take precedence.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Load reads each .env file in order and sets the variables that are not
// already in the environment, so earlier files win over later ones.
// Missing files are skipped. A file that cannot be read or parsed does not
// stop the others; the failures are joined into the returned error.
func Load(paths ...string) error {
	var errs []error
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, fmt.Errorf("reading env file %s: %w", path, err))
			}
			continue
		}
		for key, value := range values {
			if os.Getenv(key) == "" {
				_ = os.Setenv(key, value)
			}
		}
	}
	return errors.Join(errs...)
}

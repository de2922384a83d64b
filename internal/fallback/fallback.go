package fallback

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dalfonso89/fx-summary-service/internal/logger"
	"github.com/dalfonso89/fx-summary-service/internal/models"
)

// UnavailableError reports that the static fallback dataset could not be
// read or parsed. There is no further degradation path behind the fallback,
// so callers treat it as fatal.
type UnavailableError struct {
	Path  string
	Cause error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("fallback dataset %s unavailable: %v", e.Path, e.Cause)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// Loader reads the locally bundled rate dataset used when live retrieval is
// exhausted. The file is re-read in full on every call; its content is fixed
// for the process lifetime, so callers must tolerate dates that do not match
// the requested range.
type Loader struct {
	path   string
	logger *logger.Logger
}

// NewLoader creates a loader for the dataset at path.
func NewLoader(path string, logger *logger.Logger) *Loader {
	return &Loader{path: path, logger: logger}
}

// Load reads and parses the fallback dataset.
func (loader *Loader) Load() (models.RateDocument, error) {
	loader.logger.Warnf("Network unavailable, falling back to %s", loader.path)

	raw, err := os.ReadFile(loader.path)
	if err != nil {
		return models.RateDocument{}, &UnavailableError{Path: loader.path, Cause: err}
	}

	var document models.RateDocument
	if err := json.Unmarshal(raw, &document); err != nil {
		return models.RateDocument{}, &UnavailableError{Path: loader.path, Cause: err}
	}

	return document, nil
}

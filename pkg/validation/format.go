// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/loan-calc/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// StorageBackends lists every backend a storage configuration may name.
var StorageBackends = []string{
	constants.StorageBackendMemory,
	constants.StorageBackendFile,
	constants.StorageBackendSQLite,
	constants.StorageBackendRedis,
	constants.StorageBackendPreferences,
}

// ValidateStorageBackend checks the backend against the supported set,
// narrowed to allowed when it is non-empty.
func ValidateStorageBackend(backend string, allowed ...string) error {
	if len(allowed) == 0 {
		allowed = StorageBackends
	}
	for _, candidate := range allowed {
		if backend == candidate {
			return nil
		}
	}
	return fmt.Errorf("expected storage backend of %s, got %q", strings.Join(allowed, ", "), backend)
}

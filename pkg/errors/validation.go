package errors

import (
	"math"
	"strings"
	"unicode"
)

// GridSize is the number of cells along each side of the paper.
// It lives here so request validators can bound coordinates without
// importing the engine.
const GridSize = 4

// ValidateGridPoint validates that (x, y) addresses a cell of the 4x4 grid.
func ValidateGridPoint(x, y int) error {
	if x < 0 || x >= GridSize || y < 0 || y >= GridSize {
		return New(ErrCodeInvalidInput, "grid point (%d, %d) outside 0..%d", x, y, GridSize-1)
	}
	return nil
}

// ValidateRange validates that v lies in [lo, hi]. name is used in the message.
func ValidateRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return New(ErrCodeInvalidInput, "%s must be between %d and %d, got %d", name, lo, hi, v)
	}
	return nil
}

// ValidateStep validates a fold-history index against the number of applied folds.
// Step 0 is the unfolded paper and step == folds is the current state.
func ValidateStep(step, folds int) error {
	if step < 0 || step > folds {
		return New(ErrCodeIndexOutOfRange, "step %d outside 0..%d", step, folds)
	}
	return nil
}

// ValidateCellSize validates the pixel size of one grid cell for raster and vector output.
func ValidateCellSize(size float64) error {
	if math.IsNaN(size) || math.IsInf(size, 0) {
		return New(ErrCodeInvalidInput, "cell size must be a finite number")
	}
	const minSize, maxSize = 8.0, 512.0
	if size < minSize || size > maxSize {
		return New(ErrCodeInvalidInput, "cell size must be between %.0f and %.0f, got %g", minSize, maxSize, size)
	}
	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

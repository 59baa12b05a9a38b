// Package fonts provides the typeface used for captions and labels.
//
// Raster output uses Go Mono from golang.org/x/image, parsed once and
// shared. SVG output references the same family by name with monospace
// fallbacks, so both formats look alike without shipping font files.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// FontFamily is the CSS font-family name for the caption font.
const FontFamily = "Go Mono"

// FallbackFontFamily lists fallbacks for viewers without Go Mono installed.
const FallbackFontFamily = `'Go Mono', 'DejaVu Sans Mono', Menlo, Consolas, monospace`

var (
	monoOnce sync.Once
	mono     *truetype.Font
	monoErr  error
)

// MonoTTF returns the raw TTF data.
func MonoTTF() []byte {
	return gomono.TTF
}

// Mono returns the parsed font. The result is cached after the first call.
func Mono() (*truetype.Font, error) {
	monoOnce.Do(func() {
		mono, monoErr = truetype.Parse(gomono.TTF)
	})
	return mono, monoErr
}

// MonoFace returns a face of the given point size at 72 DPI.
func MonoFace(size float64) (font.Face, error) {
	f, err := Mono()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

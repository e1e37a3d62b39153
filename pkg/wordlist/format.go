package wordlist

import (
	"path/filepath"
	"strings"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
)

// Format is a worksheet file encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "toml"
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return 0, apperr.New(apperr.ErrCodeInvalidFormat, "unsupported worksheet file %q (want .toml or .json)", filepath.Base(path))
}

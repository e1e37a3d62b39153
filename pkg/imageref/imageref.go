// Package imageref provides validated, self-contained image references.
//
// Worksheets embed pictures inline as base64 data URIs so the generated
// document has no external dependencies. A [Ref] can only be obtained through
// [Parse], [FromBytes] or [Load], each of which decodes the image header and
// rejects anything that is not a raster image in a supported format. The
// engine therefore never embeds arbitrary binary data.
//
// Supported formats: PNG, JPEG, GIF, WebP, BMP and TIFF. SVG is rejected
// because it can carry script.
//
//	ref, err := imageref.Load("images/cat.png")
//	if err != nil {
//	    return err
//	}
//	entry.Image = ref
package imageref

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"image"
	"os"
	"strings"

	// Decoders registered with the image package.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
)

// MaxSize is the largest decoded image payload accepted, in bytes.
const MaxSize = 8 << 20

// formatMIME maps image.DecodeConfig format names to MIME types.
var formatMIME = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

// mimeAliases normalizes MIME types browsers are known to emit.
var mimeAliases = map[string]string{
	"image/jpg":      "image/jpeg",
	"image/pjpeg":    "image/jpeg",
	"image/x-png":    "image/png",
	"image/x-bmp":    "image/bmp",
	"image/x-ms-bmp": "image/bmp",
}

// Ref is an immutable reference to a decoded-and-verified raster image.
type Ref struct {
	mime   string
	data   []byte
	width  int
	height int
	uri    string
	hash   string
}

// FromBytes sniffs the image format of data and returns a Ref for it.
func FromBytes(data []byte) (*Ref, error) {
	if len(data) == 0 {
		return nil, apperr.New(apperr.ErrCodeInvalidImage, "image data is empty")
	}
	if len(data) > MaxSize {
		return nil, apperr.New(apperr.ErrCodeInvalidImage, "image too large (%d bytes, max %d)", len(data), MaxSize)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidImage, err, "not a supported image")
	}
	mime, ok := formatMIME[format]
	if !ok {
		return nil, apperr.New(apperr.ErrCodeInvalidImage, "unsupported image format %q", format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, apperr.New(apperr.ErrCodeInvalidImage, "image has no pixels")
	}

	owned := make([]byte, len(data))
	copy(owned, data)
	sum := sha256.Sum256(owned)

	return &Ref{
		mime:   mime,
		data:   owned,
		width:  cfg.Width,
		height: cfg.Height,
		uri:    "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(owned),
		hash:   hex.EncodeToString(sum[:]),
	}, nil
}

// Parse validates a "data:<mime>;base64,<payload>" URI, as produced by a
// browser FileReader, and returns a Ref for it.
//
// The declared MIME type must be a supported raster type and must agree with
// the decoded payload.
func Parse(uri string) (*Ref, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), "data:")
	if !ok {
		return nil, apperr.New(apperr.ErrCodeInvalidImage, "image must be a data URI")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, apperr.New(apperr.ErrCodeInvalidImage, "malformed data URI")
	}
	declared, ok := strings.CutSuffix(strings.ToLower(header), ";base64")
	if !ok {
		return nil, apperr.New(apperr.ErrCodeInvalidImage, "data URI must be base64 encoded")
	}
	declared = normalizeMIME(declared)
	if !isSupportedMIME(declared) {
		return nil, apperr.New(apperr.ErrCodeInvalidImage, "unsupported image type %q", declared)
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxSize+3 {
		return nil, apperr.New(apperr.ErrCodeInvalidImage, "image too large (max %d bytes)", MaxSize)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidImage, err, "invalid base64 payload")
	}

	ref, err := FromBytes(data)
	if err != nil {
		return nil, err
	}
	if ref.mime != declared {
		return nil, apperr.New(apperr.ErrCodeInvalidImage, "declared type %s does not match content %s", declared, ref.mime)
	}
	return ref, nil
}

// Load reads an image file from disk and returns a Ref for it.
func Load(path string) (*Ref, error) {
	if err := apperr.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "image %s", path)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidImage, err, "read %s", path)
	}
	ref, err := FromBytes(data)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidImage, err, "image %s", path)
	}
	return ref, nil
}

// IsDataURI reports whether s looks like a data URI rather than a file path.
func IsDataURI(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "data:")
}

// URI returns the image as a base64 data URI.
func (r *Ref) URI() string { return r.uri }

// MIME returns the image MIME type, e.g. "image/png".
func (r *Ref) MIME() string { return r.mime }

// Size returns the decoded payload size in bytes.
func (r *Ref) Size() int { return len(r.data) }

// Width returns the image width in pixels.
func (r *Ref) Width() int { return r.width }

// Height returns the image height in pixels.
func (r *Ref) Height() int { return r.height }

// Hash returns the hex SHA-256 of the payload.
func (r *Ref) Hash() string { return r.hash }

// Bytes returns a copy of the decoded payload.
func (r *Ref) Bytes() []byte {
	out := make([]byte, len(r.data))
	copy(out, r.data)
	return out
}

// MarshalText encodes the Ref as its data URI.
func (r *Ref) MarshalText() ([]byte, error) {
	return []byte(r.uri), nil
}

// UnmarshalText parses a data URI into r.
func (r *Ref) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}

func normalizeMIME(m string) string {
	if alias, ok := mimeAliases[m]; ok {
		return alias
	}
	return m
}

func isSupportedMIME(m string) bool {
	for _, v := range formatMIME {
		if v == m {
			return true
		}
	}
	return false
}

package imageref

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func testGIF(t *testing.T) []byte {
	t.Helper()
	img := image.NewPaletted(image.Rect(0, 0, 3, 2), color.Palette{color.Black, color.White})
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
	return buf.Bytes()
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func TestFromBytes(t *testing.T) {
	ref, err := FromBytes(testPNG(t, 4, 3))
	if err != nil {
		t.Fatalf("FromBytes error: %v", err)
	}
	if ref.MIME() != "image/png" {
		t.Errorf("MIME = %q, want image/png", ref.MIME())
	}
	if ref.Width() != 4 || ref.Height() != 3 {
		t.Errorf("size = %dx%d, want 4x3", ref.Width(), ref.Height())
	}
	if !strings.HasPrefix(ref.URI(), "data:image/png;base64,") {
		t.Errorf("URI prefix unexpected: %.40s", ref.URI())
	}
	if len(ref.Hash()) != 64 {
		t.Errorf("Hash length = %d, want 64", len(ref.Hash()))
	}
}

func TestFromBytesGIF(t *testing.T) {
	ref, err := FromBytes(testGIF(t))
	if err != nil {
		t.Fatalf("FromBytes error: %v", err)
	}
	if ref.MIME() != "image/gif" {
		t.Errorf("MIME = %q, want image/gif", ref.MIME())
	}
}

func TestFromBytesRejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("hello, world")},
		{"svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`)},
		{"truncated png", testPNG(t, 2, 2)[:10]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromBytes(tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if !apperr.Is(err, apperr.ErrCodeInvalidImage) {
				t.Errorf("code = %v, want %v", apperr.GetCode(err), apperr.ErrCodeInvalidImage)
			}
		})
	}
}

func TestParse(t *testing.T) {
	pngData := testPNG(t, 2, 2)

	tests := []struct {
		name    string
		uri     string
		wantErr bool
	}{
		{"valid png", dataURI("image/png", pngData), false},
		{"jpg alias for png fails content check", dataURI("image/jpg", pngData), true},
		{"upper case header", "data:IMAGE/PNG;BASE64," + base64.StdEncoding.EncodeToString(pngData), false},
		{"surrounding space", "  " + dataURI("image/png", pngData) + "\n", false},
		{"not a data uri", "https://example.com/cat.png", true},
		{"file path", "images/cat.png", true},
		{"missing comma", "data:image/png;base64", true},
		{"not base64", "data:image/png," + string(pngData), true},
		{"bad base64", "data:image/png;base64,!!!", true},
		{"svg type", dataURI("image/svg+xml", []byte("<svg/>")), true},
		{"html payload", dataURI("image/png", []byte("<html></html>")), true},
		{"mime mismatch", dataURI("image/gif", pngData), true},
		{"non-image type", dataURI("application/octet-stream", pngData), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Parse(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !apperr.Is(err, apperr.ErrCodeInvalidImage) {
					t.Errorf("code = %v, want %v", apperr.GetCode(err), apperr.ErrCodeInvalidImage)
				}
				return
			}
			if !bytes.Equal(ref.Bytes(), pngData) {
				t.Error("payload does not round-trip")
			}
		})
	}
}

func TestParseNormalizesURI(t *testing.T) {
	pngData := testPNG(t, 1, 1)
	ref, err := Parse("data:image/x-png;base64," + base64.StdEncoding.EncodeToString(pngData))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got, want := ref.URI(), dataURI("image/png", pngData); got != want {
		t.Errorf("URI = %.40s..., want canonical %.40s...", got, want)
	}
}

func TestTextRoundTrip(t *testing.T) {
	pngData := testPNG(t, 2, 1)
	type payload struct {
		Image *Ref `json:"image"`
	}

	in := payload{}
	ref, err := FromBytes(pngData)
	if err != nil {
		t.Fatal(err)
	}
	in.Image = ref

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var out payload
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if out.Image == nil || out.Image.Hash() != ref.Hash() {
		t.Error("image did not survive JSON round trip")
	}

	bad := []byte(`{"image":"data:text/html;base64,PGgxPg=="}`)
	if err := json.Unmarshal(bad, &out); err == nil {
		t.Error("Unmarshal should reject non-image data URI")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cat.png")
	if err := os.WriteFile(path, testPNG(t, 5, 5), 0o644); err != nil {
		t.Fatal(err)
	}

	ref, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if ref.Width() != 5 {
		t.Errorf("Width = %d, want 5", ref.Width())
	}

	_, err = Load(filepath.Join(dir, "missing.png"))
	if !apperr.Is(err, apperr.ErrCodeFileNotFound) {
		t.Errorf("missing file code = %v, want %v", apperr.GetCode(err), apperr.ErrCodeFileNotFound)
	}

	txt := filepath.Join(dir, "notes.png")
	if err := os.WriteFile(txt, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(txt); !apperr.Is(err, apperr.ErrCodeInvalidImage) {
		t.Errorf("text file code = %v, want %v", apperr.GetCode(err), apperr.ErrCodeInvalidImage)
	}
}

func TestIsDataURI(t *testing.T) {
	if !IsDataURI("data:image/png;base64,AAAA") {
		t.Error("data URI not detected")
	}
	if IsDataURI("images/data:cat.png") {
		t.Error("path misdetected as data URI")
	}
}

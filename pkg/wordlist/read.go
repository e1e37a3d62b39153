package wordlist

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
	"github.com/tichlinh-png/trace-worksheet/pkg/imageref"
	"github.com/tichlinh-png/trace-worksheet/pkg/worksheet"
)

// Read decodes a worksheet from r. Relative image paths resolve against
// baseDir. Layout defaults are applied; the resulting config is validated.
//
// Read does not close r.
func Read(r io.Reader, f Format, baseDir string) (*Worksheet, error) {
	var data file
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&data); err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "decode json worksheet")
		}
	default:
		md, err := toml.NewDecoder(r).Decode(&data)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "decode toml worksheet")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, apperr.New(apperr.ErrCodeInvalidInput, "unknown worksheet key %q", undecoded[0].String())
		}
	}

	ws := &Worksheet{
		Config: worksheet.Config{
			EntriesPerPage:  data.Layout.EntriesPerPage,
			RepeatCount:     data.Layout.RepeatCount,
			LineCount:       data.Layout.LineCount,
			InstitutionName: data.Institution.Name,
			Title:           data.Title,
		}.WithDefaults(),
	}
	if err := ws.Config.Validate(); err != nil {
		return nil, err
	}
	if err := worksheetText("title", data.Title); err != nil {
		return nil, err
	}
	if err := worksheetText("institution name", data.Institution.Name); err != nil {
		return nil, err
	}

	if src := strings.TrimSpace(data.Institution.Logo); src != "" {
		logo, err := resolveImage(src, baseDir)
		if err != nil {
			ws.warnf("institution logo: %s", apperr.UserMessage(err))
		} else {
			ws.Config.InstitutionLogo = logo
			ws.logoSource = src
		}
	}

	list := worksheet.NewList(nil)
	for i, e := range data.Entries {
		if err := worksheetText(fmt.Sprintf("entry %d text", i+1), e.Text); err != nil {
			return nil, err
		}
		if err := worksheetText(fmt.Sprintf("entry %d emoji", i+1), e.Emoji); err != nil {
			return nil, err
		}
		entry := worksheet.Entry{ID: e.ID, Text: e.Text, Emoji: e.Emoji}
		src := strings.TrimSpace(e.Image)
		if src != "" {
			img, err := resolveImage(src, baseDir)
			if err != nil {
				ws.warnf("entry %q image: %s", e.Text, apperr.UserMessage(err))
				src = ""
			} else {
				entry.Image = img
			}
		}
		added := list.Append(entry)
		if src != "" {
			ws.SetImageSource(added.ID, src)
		}
	}
	ws.Entries = list.Entries()

	return ws, nil
}

// Load reads the worksheet file at path.
func Load(path string) (*Worksheet, error) {
	if err := apperr.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "worksheet %s", path)
		}
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "open %s", path)
	}
	defer fh.Close()
	return Read(fh, f, filepath.Dir(path))
}

func resolveImage(src, baseDir string) (*imageref.Ref, error) {
	if imageref.IsDataURI(src) {
		return imageref.Parse(src)
	}
	if err := apperr.ValidatePath(src); err != nil {
		return nil, err
	}
	if !filepath.IsAbs(src) && baseDir != "" {
		src = filepath.Join(baseDir, src)
	}
	return imageref.Load(src)
}

func worksheetText(field, s string) error {
	if s == "" {
		return nil
	}
	return apperr.ValidateText(field, s)
}

func (w *Worksheet) warnf(format string, args ...any) {
	w.Warnings = append(w.Warnings, fmt.Sprintf(format, args...))
}

package wordlist

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
)

// Write encodes ws to w. Images keep the path they were loaded from when
// known; otherwise they are written inline as data URIs.
func Write(ws *Worksheet, w io.Writer, f Format) error {
	out := file{
		Title: ws.Config.Title,
		Layout: layout{
			EntriesPerPage: ws.Config.EntriesPerPage,
			RepeatCount:    ws.Config.RepeatCount,
			LineCount:      ws.Config.LineCount,
		},
		Institution: institution{Name: ws.Config.InstitutionName},
		Entries:     make([]entry, len(ws.Entries)),
	}
	if logo := ws.Config.InstitutionLogo; logo != nil {
		out.Institution.Logo = ws.logoSource
		if out.Institution.Logo == "" {
			out.Institution.Logo = logo.URI()
		}
	}
	for i, e := range ws.Entries {
		ent := entry{ID: e.ID, Text: e.Text, Emoji: e.Emoji}
		if e.Image != nil {
			ent.Image = ws.ImageSource(e.ID)
			if ent.Image == "" {
				ent.Image = e.Image.URI()
			}
		}
		out.Entries[i] = ent
	}

	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(out); err != nil {
			return apperr.Wrap(apperr.ErrCodeInternal, err, "encode json worksheet")
		}
	default:
		if err := toml.NewEncoder(w).Encode(out); err != nil {
			return apperr.Wrap(apperr.ErrCodeInternal, err, "encode toml worksheet")
		}
	}
	return nil
}

// Save writes ws to path, choosing the format from the extension. The file is
// written to a temporary sibling first and renamed into place.
func Save(ws *Worksheet, path string) error {
	if err := apperr.ValidatePath(path); err != nil {
		return err
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".worksheet-*")
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeInternal, err, "create %s", path)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return apperr.Wrap(apperr.ErrCodeInternal, err, "chmod %s", path)
	}
	if err := Write(ws, tmp, f); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return apperr.Wrap(apperr.ErrCodeInternal, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return apperr.Wrap(apperr.ErrCodeInternal, err, "save %s", path)
	}
	return nil
}

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
	"github.com/tichlinh-png/trace-worksheet/pkg/pipeline"
	"github.com/tichlinh-png/trace-worksheet/pkg/worksheet"
)

// worksheetRequest is the body of POST /api/worksheets and /api/render.
// It is also the value stored for a created worksheet.
type worksheetRequest struct {
	Config  worksheet.Config  `json:"config"`
	Entries []worksheet.Entry `json:"entries"`
	Options requestOptions    `json:"options"`
}

// requestOptions are the render options a client may choose.
// Formats and cache control stay server-side.
type requestOptions struct {
	AutoPrint        bool   `json:"auto_print,omitempty"`
	NoPrintButton    bool   `json:"no_print_button,omitempty"`
	PrintButtonLabel string `json:"print_button_label,omitempty"`
	Paper            string `json:"paper,omitempty"`
}

// pipelineOptions converts to runner options for a single format.
func (o requestOptions) pipelineOptions(format string) pipeline.Options {
	return pipeline.Options{
		Formats:          []string{format},
		AutoPrint:        o.AutoPrint,
		NoPrintButton:    o.NoPrintButton,
		PrintButtonLabel: o.PrintButtonLabel,
		Paper:            o.Paper,
	}
}

// decodeRequest reads and normalizes a worksheet request. Unknown fields,
// oversized bodies and invalid images are INVALID_INPUT/INVALID_IMAGE errors.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (*worksheetRequest, error) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var req worksheetRequest
	if err := dec.Decode(&req); err != nil {
		return nil, decodeError(err)
	}
	if dec.More() {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "request body must hold a single JSON object")
	}
	if err := s.normalize(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// normalize applies layout defaults, validates free text and the entry
// count, and assigns IDs to entries that lack a unique one.
func (s *Server) normalize(req *worksheetRequest) error {
	req.Config = req.Config.WithDefaults()
	if err := req.Config.Validate(); err != nil {
		return err
	}
	if err := apperr.ValidateText("institution name", req.Config.InstitutionName); err != nil {
		return err
	}
	if err := apperr.ValidateText("title", req.Config.Title); err != nil {
		return err
	}
	if len(req.Entries) > s.cfg.MaxEntries {
		return apperr.New(apperr.ErrCodeInvalidInput, "too many entries (%d, max %d)", len(req.Entries), s.cfg.MaxEntries)
	}

	list := worksheet.NewList(nil)
	for i, e := range req.Entries {
		if err := apperr.ValidateText(fmt.Sprintf("entry %d text", i+1), e.Text); err != nil {
			return err
		}
		if err := apperr.ValidateText(fmt.Sprintf("entry %d emoji", i+1), e.Emoji); err != nil {
			return err
		}
		list.Append(e)
	}
	req.Entries = list.Entries()

	opts := req.Options.pipelineOptions(pipeline.FormatHTML)
	return opts.ValidateForRender()
}

func decodeError(err error) error {
	var maxErr *http.MaxBytesError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case apperr.GetCode(err) != "":
		return err
	case errors.As(err, &maxErr):
		return apperr.New(apperr.ErrCodeInvalidInput, "request body too large (max %d bytes)", maxErr.Limit)
	case errors.Is(err, io.EOF):
		return apperr.New(apperr.ErrCodeInvalidInput, "request body is empty")
	case errors.As(err, &syntaxErr):
		return apperr.Wrap(apperr.ErrCodeInvalidInput, err, "malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		return apperr.Wrap(apperr.ErrCodeInvalidInput, err, "field %q has the wrong type", typeErr.Field)
	default:
		return apperr.Wrap(apperr.ErrCodeInvalidInput, err, "invalid request body: %v", err)
	}
}

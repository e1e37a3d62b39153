// Package pkg provides the libraries behind tracesheet, a generator of
// printable handwriting tracing worksheets.
//
// # Overview
//
// A worksheet is a list of practice words, each with an emoji or picture,
// laid out a few words per page with lines of the word repeated for
// tracing. The pkg directory is organized as:
//
//  1. [worksheet] - Domain model and generation engine
//  2. [render] - Print styles and output formats (HTML, JSON, PDF)
//  3. [wordlist] - TOML/JSON worksheet files
//  4. [pipeline] - Orchestration (generate → render, with caching)
//  5. [server] - HTTP API
//  6. [cache], [observability], [errors], [imageref], [buildinfo] - Support
//
// # Architecture
//
// The data flow through tracesheet:
//
//	worksheet file / HTTP request
//	         ↓
//	    [wordlist] or [server] (decode, apply defaults, validate)
//	         ↓
//	    [worksheet] (filter → paginate → blocks → header)
//	         ↓
//	    [render/sink] (HTML with [render/styles], JSON, PDF)
//	         ↓
//	    printable output
//
// # Quick Start
//
//	ws, err := wordlist.Load("animals.toml")
//	if err != nil {
//	    return err
//	}
//	doc, err := worksheet.Generate(ws.Entries, ws.Config)
//	if err != nil {
//	    return err
//	}
//	html, err := sink.RenderHTML(doc, sink.WithAutoPrint())
//
// With caching, as the CLI and server do:
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(0), nil, logger)
//	result, err := runner.Execute(ctx, ws.Entries, ws.Config, pipeline.Options{
//	    Formats: []string{pipeline.FormatHTML, pipeline.FormatJSON},
//	})
//
// [worksheet]: github.com/tichlinh-png/trace-worksheet/pkg/worksheet
// [render]: github.com/tichlinh-png/trace-worksheet/pkg/render
// [render/sink]: github.com/tichlinh-png/trace-worksheet/pkg/render/sink
// [render/styles]: github.com/tichlinh-png/trace-worksheet/pkg/render/styles
// [wordlist]: github.com/tichlinh-png/trace-worksheet/pkg/wordlist
// [pipeline]: github.com/tichlinh-png/trace-worksheet/pkg/pipeline
// [server]: github.com/tichlinh-png/trace-worksheet/pkg/server
// [cache]: github.com/tichlinh-png/trace-worksheet/pkg/cache
// [observability]: github.com/tichlinh-png/trace-worksheet/pkg/observability
// [errors]: github.com/tichlinh-png/trace-worksheet/pkg/errors
// [imageref]: github.com/tichlinh-png/trace-worksheet/pkg/imageref
// [buildinfo]: github.com/tichlinh-png/trace-worksheet/pkg/buildinfo
package pkg

// Package server exposes worksheet generation over HTTP.
//
// # Endpoints
//
//	POST /api/worksheets               create a worksheet, returns 201 {id, pages, links}
//	GET  /api/worksheets/{id}          printable HTML (?print=1 opens the print dialog)
//	GET  /api/worksheets/{id}/download HTML as an attachment (?format=json|pdf)
//	POST /api/render?format=html|json  render directly without storing
//	GET  /healthz                      liveness check
//
// Request bodies are JSON:
//
//	{
//	  "config":  {"entries_per_page": 2, "repeat_count": 12, "line_count": 4,
//	              "institution_name": "Sunrise", "institution_logo": "data:image/png;base64,..."},
//	  "entries": [{"id": 1, "text": "Cats", "emoji": "🐱", "image": "data:image/png;base64,..."}],
//	  "options": {"auto_print": false, "no_print_button": false, "paper": "A4"}
//	}
//
// Images must be inline raster data URIs; anything else is rejected with 400.
// Omitted layout values receive the defaults.
//
// # Storage
//
// Created worksheets are stored in a [cache.Cache] under a random UUID for
// [cache.TTLShare]. A [cache.MemoryCache] serves a single instance; a
// [cache.RedisCache] lets several instances share worksheets. An in-memory
// store is kept apart from the render cache so that cached artifacts never
// evict created worksheets.
//
// [cache.Cache]: github.com/tichlinh-png/trace-worksheet/pkg/cache
// [cache.TTLShare]: github.com/tichlinh-png/trace-worksheet/pkg/cache
// [cache.MemoryCache]: github.com/tichlinh-png/trace-worksheet/pkg/cache
// [cache.RedisCache]: github.com/tichlinh-png/trace-worksheet/pkg/cache
package server

// Package format renders the orchestrator's emitted []filectx.Record
// surface into the CLI's three output formats (spec.md §6, §9): plain
// (one path per line), json (the full record via encoding/json), and
// find (a headerless listing meant to compose with xargs/find-style
// pipelines). --no-headers together with --format find is rejected
// rather than guessed at, per spec.md §9's own resolution of that Open
// Question.
package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/termfx/rdump/internal/filectx"
)

// Kind identifies an output format.
type Kind string

const (
	Plain Kind = "plain"
	JSON  Kind = "json"
	Find  Kind = "find"
)

// ErrHeadersWithFind is returned when --no-headers is combined with
// --format find, a combination spec.md §9 says to reject outright.
var ErrHeadersWithFind = fmt.Errorf("format: --no-headers is not meaningful with --format find")

// Options controls header suppression for formats that have any.
type Options struct {
	NoHeaders bool
}

// Write renders records in the given format to w.
func Write(w io.Writer, kind Kind, records []filectx.Record, opts Options) error {
	if kind == Find && opts.NoHeaders {
		return ErrHeadersWithFind
	}
	switch kind {
	case Plain:
		return writePlain(w, records)
	case JSON:
		return writeJSON(w, records)
	case Find:
		return writeFind(w, records)
	default:
		return fmt.Errorf("format: unknown format %q", kind)
	}
}

func writePlain(w io.Writer, records []filectx.Record) error {
	for _, r := range records {
		if _, err := fmt.Fprintln(w, r.Path); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, records []filectx.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// writeFind renders a null-free, newline-separated bare path list with no
// header and no trailing metadata -- suitable for piping into tools that
// expect `find`'s default output shape.
func writeFind(w io.Writer, records []filectx.Record) error {
	for _, r := range records {
		if _, err := fmt.Fprintln(w, r.Path); err != nil {
			return err
		}
	}
	return nil
}

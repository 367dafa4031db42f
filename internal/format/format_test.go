package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/termfx/rdump/internal/filectx"
)

func sampleRecords() []filectx.Record {
	return []filectx.Record{
		{Path: "/src/a.go", Size: 10},
		{Path: "/src/b.go", Size: 20},
	}
}

func TestWritePlainOnePathPerLine(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Plain, sampleRecords(), Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 || lines[0] != "/src/a.go" || lines[1] != "/src/b.go" {
		t.Fatalf("got %v", lines)
	}
}

func TestWriteJSONIncludesSize(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, JSON, sampleRecords(), Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), `"Size": 10`) {
		t.Errorf("expected JSON output to include Size field, got %s", buf.String())
	}
}

func TestFindRejectsNoHeaders(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Find, sampleRecords(), Options{NoHeaders: true})
	if err != ErrHeadersWithFind {
		t.Fatalf("expected ErrHeadersWithFind, got %v", err)
	}
}

func TestFindWithoutNoHeadersSucceeds(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Find, sampleRecords(), Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
}

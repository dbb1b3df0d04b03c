// Package threadcatalog loads and holds the immutable reference thread list
// (DMC embroidery floss by default) used for nearest-thread matching.
package threadcatalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/coltonbatts/colorwizard/pkg/colorspace"
)

// Entry is one catalog thread: a stable id, a display name, its sRGB value,
// and the Lab value precomputed at load time.
type Entry struct {
	ID   string
	Name string
	RGB  colorspace.RGB
	Lab  colorspace.Lab
}

// Catalog is an immutable, read-only-after-construction list of threads.
type Catalog struct {
	entries []Entry
}

// Len returns the number of entries in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns the catalog's entries. The returned slice must not be
// mutated by callers.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	return c.entries
}

// Load reads a tabular thread list of "id,name,r,g,b" rows (no header) from
// r and returns a Catalog. Entries are deduplicated by id with the first
// occurrence winning, per the catalog's documented Open Question.
func Load(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 5
	cr.TrimLeadingSpace = true

	seen := make(map[string]bool)
	var entries []Entry
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("threadcatalog: read row: %w", err)
		}
		id := rec[0]
		if seen[id] {
			continue
		}
		seen[id] = true

		r8, err := parseChannel(rec[2])
		if err != nil {
			return nil, fmt.Errorf("threadcatalog: id %s: red channel: %w", id, err)
		}
		g8, err := parseChannel(rec[3])
		if err != nil {
			return nil, fmt.Errorf("threadcatalog: id %s: green channel: %w", id, err)
		}
		b8, err := parseChannel(rec[4])
		if err != nil {
			return nil, fmt.Errorf("threadcatalog: id %s: blue channel: %w", id, err)
		}

		rgb := colorspace.RGB{R: r8, G: g8, B: b8}
		entries = append(entries, Entry{
			ID:   id,
			Name: rec[1],
			RGB:  rgb,
			Lab:  rgb.ToLab(),
		})
	}
	return &Catalog{entries: entries}, nil
}

func parseChannel(s string) (uint8, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("channel value %d out of range [0,255]", v)
	}
	return uint8(v), nil
}

// Default returns a Catalog built from the bundled reference DMC thread
// table. It panics if the embedded table fails to parse, which would
// indicate a build-time defect rather than a runtime condition.
func Default() *Catalog {
	cat, err := Load(newDMCTableReader())
	if err != nil {
		panic(fmt.Sprintf("threadcatalog: bundled table failed to parse: %v", err))
	}
	return cat
}

// Package catalog holds the static verification checklist: ordered sections,
// each with a display title and ordered regulatory questions. The content is
// reference data embedded at build time; it is read-only at run time.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/checklist.json
var checklistJSON []byte

// Question is one regulatory checklist item.
type Question struct {
	ID           string `json:"id"`
	Question     string `json:"question"`
	Regulation   string `json:"regulation"`
	Requirements string `json:"requirements"`
}

// Section groups questions under a stable key and a display title.
type Section struct {
	Key       string     `json:"key"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Entry is a question joined with its section, for single-ID lookups.
type Entry struct {
	Question
	SectionKey   string
	SectionTitle string
}

// Catalog is the loaded checklist. Immutable after Load.
type Catalog struct {
	sections []Section
	byID     map[string]Entry
}

// Load parses the embedded checklist and indexes questions by ID.
// Fails fast on empty or duplicate question IDs so a bad data file cannot
// reach production silently.
func Load() (*Catalog, error) {
	var doc struct {
		Sections []Section `json:"sections"`
	}
	if err := json.Unmarshal(checklistJSON, &doc); err != nil {
		return nil, fmt.Errorf("parse checklist: %w", err)
	}
	if len(doc.Sections) == 0 {
		return nil, fmt.Errorf("checklist has no sections")
	}

	byID := make(map[string]Entry)
	for _, sec := range doc.Sections {
		if sec.Key == "" {
			return nil, fmt.Errorf("checklist section with empty key")
		}
		for _, q := range sec.Questions {
			if q.ID == "" {
				return nil, fmt.Errorf("section %q has a question with empty id", sec.Key)
			}
			if _, dup := byID[q.ID]; dup {
				return nil, fmt.Errorf("duplicate question id %q", q.ID)
			}
			byID[q.ID] = Entry{Question: q, SectionKey: sec.Key, SectionTitle: sec.Title}
		}
	}

	return &Catalog{sections: doc.Sections, byID: byID}, nil
}

// MustLoad panics on a malformed embedded checklist. Intended for main and
// tests, where a broken data file should halt immediately.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Sections returns the sections in catalog order.
func (c *Catalog) Sections() []Section {
	return c.sections
}

// Lookup returns the entry for a question ID.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// SectionTitle resolves a section key to its display title. Unknown keys map
// to the key itself so ad hoc buckets from old submissions still render.
func (c *Catalog) SectionTitle(key string) string {
	for _, sec := range c.sections {
		if sec.Key == key {
			return sec.Title
		}
	}
	return key
}

// Len reports the total number of questions.
func (c *Catalog) Len() int {
	return len(c.byID)
}

package lawdoc

import "strings"

// Section is the atomic retrievable unit of the document: one identified
// element of the bill, flattened out of the XML hierarchy.
type Section struct {
	// Stable identifier assigned by the source document.
	ID string `json:"id"`

	// Classification tag taken from document markup (e.g. "section",
	// "subsection", "title").
	Type string `json:"type"`

	// Short heading text, markup-stripped and whitespace-collapsed.
	Title string `json:"title"`

	// Text of the element's direct text-bearing children only.
	Content string `json:"content"`

	// Complete recursively-concatenated text of the section and all
	// descendants, markup-stripped.
	FullText string `json:"fullText"`

	// Nesting depth from the document root.
	Level int `json:"level"`

	// ID of the nearest enclosing ancestor that carries an identifier,
	// or empty for top-level sections.
	ParentID string `json:"parentId,omitempty"`

	// Ordered IDs of child sections. Children live in the snapshot's
	// flat section map, not here.
	Children []string `json:"children,omitempty"`
}

// Metadata describes the document as a whole, parsed from the XML header.
type Metadata struct {
	Title    string `json:"title"`
	Congress string `json:"congress,omitempty"`
	Session  string `json:"session,omitempty"`
}

// TOCEntry is one row of the document's table of contents.
type TOCEntry struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	Level int    `json:"level"`
}

// Snapshot is the immutable, fully-indexed in-memory representation of the
// document. It is constructed once at startup by the indexer and thereafter
// shared read-only across all concurrent query paths.
type Snapshot struct {
	// Sections maps section ID to section record.
	Sections map[string]*Section

	// Index is the inverted keyword index: normalized keyword to the set
	// of section IDs whose title or full text contains it. ID lists are
	// sorted and free of duplicates.
	Index map[string][]string

	// Metadata describes the document.
	Metadata Metadata

	// TableOfContents lists top-level sections in document order.
	TableOfContents []TOCEntry

	// Order lists all section IDs in document (depth-first) order.
	Order []string
}

// SectionByID returns the section with the given ID.
// Returns ENOTFOUND if no such section exists.
func (s *Snapshot) SectionByID(id string) (*Section, error) {
	section, ok := s.Sections[id]
	if !ok {
		return nil, Errorf(ENOTFOUND, "section %q not found", id)
	}
	return section, nil
}

// Validate checks the snapshot's structural invariants: every non-empty
// ParentID must reference an existing section, and every child listing must
// reference existing sections.
func (s *Snapshot) Validate() error {
	for id, section := range s.Sections {
		if section.ParentID != "" {
			if _, ok := s.Sections[section.ParentID]; !ok {
				return Errorf(EINTERNAL, "section %q references missing parent %q", id, section.ParentID)
			}
		}
		for _, child := range section.Children {
			if _, ok := s.Sections[child]; !ok {
				return Errorf(EINTERNAL, "section %q references missing child %q", id, child)
			}
		}
	}
	return nil
}

// Overview holds aggregate statistics about a snapshot.
type Overview struct {
	TotalSections  int            `json:"totalSections"`
	SectionsByType map[string]int `json:"sectionsByType"`
	EstimatedWords int            `json:"estimatedWords"`
	PolicyDomains  []string       `json:"policyDomains"`
	Metadata       Metadata       `json:"metadata"`
	TopLevel       []TOCEntry     `json:"topLevel"`
}

// Overview computes aggregate statistics for the snapshot. The word count is
// an estimate from whitespace-delimited token counts of every section's
// full text.
func (s *Snapshot) Overview(policyDomains []string) Overview {
	byType := make(map[string]int)
	words := 0
	for _, section := range s.Sections {
		byType[section.Type]++
		words += len(strings.Fields(section.FullText))
	}
	return Overview{
		TotalSections:  len(s.Sections),
		SectionsByType: byType,
		EstimatedWords: words,
		PolicyDomains:  policyDomains,
		Metadata:       s.Metadata,
		TopLevel:       s.TableOfContents,
	}
}

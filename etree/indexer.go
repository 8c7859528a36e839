// Package etree provides the XML document indexer built on beevik/etree.
// It flattens a hierarchical legislative document into a lawdoc.Snapshot:
// a flat section map plus an inverted keyword index.
package etree

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/lawdoc"
)

// elementRole classifies child elements during extraction. Keeping the
// rules as data avoids scattering tag-name conditionals through the walk.
type elementRole int

const (
	roleOther elementRole = iota
	roleHeading
	roleEnum
	roleText
)

// tagRoles maps known tag names (lowercased, namespace-stripped) to their
// extraction role. Unknown tags are traversed but contribute only to the
// recursive full text.
var tagRoles = map[string]elementRole{
	"header":       roleHeading,
	"heading":      roleHeading,
	"head":         roleHeading,
	"enum":         roleEnum,
	"num":          roleEnum,
	"text":         roleText,
	"content":      roleText,
	"p":            roleText,
	"chapeau":      roleText,
	"continuation": roleText,
}

// Indexer builds document snapshots from raw legislative XML.
type Indexer struct {
	logger *slog.Logger
}

// NewIndexer creates an Indexer. A nil logger defaults to slog.Default().
func NewIndexer(logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{logger: logger}
}

// Build parses raw XML and returns a fully-indexed snapshot. It fails with
// EUNPROCESSABLE if the input cannot be parsed as XML at all; malformed
// subtrees inside an otherwise parseable document are skipped with a warning.
func (ix *Indexer) Build(raw []byte) (*lawdoc.Snapshot, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, lawdoc.Errorf(lawdoc.EUNPROCESSABLE, "document is not parseable XML: %s", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, lawdoc.Errorf(lawdoc.EUNPROCESSABLE, "document has no root element")
	}

	snapshot := &lawdoc.Snapshot{
		Sections: make(map[string]*lawdoc.Section),
		Index:    make(map[string][]string),
		Metadata: extractMetadata(root),
	}

	ix.walk(root, 0, "", snapshot)

	for _, id := range snapshot.Order {
		section := snapshot.Sections[id]
		if section.ParentID == "" {
			snapshot.TableOfContents = append(snapshot.TableOfContents, lawdoc.TOCEntry{
				ID:    section.ID,
				Type:  section.Type,
				Title: section.Title,
				Level: section.Level,
			})
		}
	}

	buildIndex(snapshot)

	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// walk traverses the tree depth-first, materializing a section at every
// element that carries an id attribute. parentID is the nearest identified
// ancestor; intermediate wrapper elements without an id do not appear in
// the hierarchy.
func (ix *Indexer) walk(el *etree.Element, depth int, parentID string, snapshot *lawdoc.Snapshot) {
	childParent := parentID

	if id := el.SelectAttrValue("id", ""); id != "" {
		if _, exists := snapshot.Sections[id]; exists {
			ix.logger.Warn("duplicate section id, subtree skipped", "id", id, "tag", el.Tag)
			return
		}
		section := ix.extractSection(el, id, depth, parentID)
		snapshot.Sections[id] = section
		snapshot.Order = append(snapshot.Order, id)
		if parentID != "" {
			parent := snapshot.Sections[parentID]
			parent.Children = append(parent.Children, id)
		}
		childParent = id
	}

	for _, child := range el.ChildElements() {
		ix.walk(child, depth+1, childParent, snapshot)
	}
}

// extractSection materializes one section record. Extraction failures are
// recovered and reported as a warning; the section is still produced with
// whatever fields were derived before the failure.
func (ix *Indexer) extractSection(el *etree.Element, id string, depth int, parentID string) (section *lawdoc.Section) {
	section = &lawdoc.Section{
		ID:       id,
		Type:     roleTag(el),
		Level:    depth,
		ParentID: parentID,
	}
	defer func() {
		if r := recover(); r != nil {
			ix.logger.Warn("section extraction failed, partial record kept", "id", id, "reason", r)
		}
	}()

	section.Title = extractTitle(el)
	section.Content = extractContent(el)
	section.FullText = collapse(recursiveText(el))
	return section
}

// roleTag returns the element's classification tag with any namespace
// prefix stripped.
func roleTag(el *etree.Element) string {
	tag := strings.ToLower(el.Tag)
	if i := strings.LastIndex(tag, ":"); i >= 0 {
		tag = tag[i+1:]
	}
	return tag
}

// extractTitle derives the section heading from a heading-like child,
// falling back to an enumeration-label child.
func extractTitle(el *etree.Element) string {
	var enum string
	for _, child := range el.ChildElements() {
		switch tagRoles[roleTag(child)] {
		case roleHeading:
			if title := collapse(recursiveText(child)); title != "" {
				return title
			}
		case roleEnum:
			if enum == "" {
				enum = collapse(recursiveText(child))
			}
		}
	}
	return enum
}

// extractContent concatenates the text of the element's direct text-bearing
// children only; descendant sections contribute to FullText, not here.
func extractContent(el *etree.Element) string {
	var parts []string
	for _, child := range el.ChildElements() {
		if tagRoles[roleTag(child)] != roleText {
			continue
		}
		if text := collapse(recursiveText(child)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// recursiveText concatenates all character data beneath el, in document
// order. Attributes contribute nothing.
func recursiveText(el *etree.Element) string {
	var sb strings.Builder
	var visit func(*etree.Element)
	visit = func(e *etree.Element) {
		for _, token := range e.Child {
			switch t := token.(type) {
			case *etree.CharData:
				sb.WriteString(t.Data)
				sb.WriteString(" ")
			case *etree.Element:
				visit(t)
			}
		}
	}
	visit(el)
	return sb.String()
}

var collapseRe = regexp.MustCompile(`\s+`)

// collapse strips markup artifacts by collapsing whitespace runs and
// trimming. Unlike lawdoc.Normalize it preserves case for display.
func collapse(text string) string {
	return strings.TrimSpace(collapseRe.ReplaceAllString(text, " "))
}

// buildIndex tokenizes every section's title and full text and records the
// section under each resulting keyword, deduplicated and sorted.
func buildIndex(snapshot *lawdoc.Snapshot) {
	postings := make(map[string]map[string]struct{})
	for _, id := range snapshot.Order {
		section := snapshot.Sections[id]
		seen := make(map[string]struct{})
		for _, tok := range lawdoc.Tokenize(section.Title + " " + section.FullText) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			if postings[tok] == nil {
				postings[tok] = make(map[string]struct{})
			}
			postings[tok][id] = struct{}{}
		}
	}

	for keyword, ids := range postings {
		list := make([]string, 0, len(ids))
		for id := range ids {
			list = append(list, id)
		}
		sort.Strings(list)
		snapshot.Index[keyword] = list
	}
}

// metadataTags maps metadata fields to the tag names that may carry them,
// in priority order.
var metadataTags = map[string][]string{
	"title":    {"official-title", "short-title", "dc:title", "docTitle"},
	"congress": {"congress"},
	"session":  {"session"},
}

// extractMetadata pulls document-level metadata from the XML header.
// Missing elements leave fields empty; metadata is best-effort.
func extractMetadata(root *etree.Element) lawdoc.Metadata {
	return lawdoc.Metadata{
		Title:    findFirstText(root, metadataTags["title"]),
		Congress: findFirstText(root, metadataTags["congress"]),
		Session:  findFirstText(root, metadataTags["session"]),
	}
}

func findFirstText(root *etree.Element, tags []string) string {
	for _, tag := range tags {
		if el := findElement(root, strings.ToLower(tag)); el != nil {
			return collapse(recursiveText(el))
		}
	}
	return ""
}

func findElement(el *etree.Element, tag string) *etree.Element {
	if strings.ToLower(el.FullTag()) == tag || strings.ToLower(el.Tag) == tag {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := findElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}

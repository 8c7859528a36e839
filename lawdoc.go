// Package lawdoc answers natural language questions about a single large
// legislative XML document. It parses the bill into a flat, queryable section
// index with an inverted keyword index, retrieves relevant sections by lexical
// overlap, and drives a bounded tool-calling conversation with an external
// language model to produce structured, citation-bearing answers.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., etree/, sqlite/, anthropic/) or
// after the concern they implement (e.g., search/, conversation/).
package lawdoc

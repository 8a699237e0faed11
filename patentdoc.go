// Package patentdoc turns patent pages annotated with schema.org-style
// microdata into nested, insertion-ordered documents.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, http/).
package patentdoc

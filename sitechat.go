// Package sitechat provides a retrieval-augmented chat tool over a website
// corpus. It crawls pages under a single domain, chunks the collected text
// (and optionally PDF documents), builds a vector index over the chunks, and
// answers questions by retrieving nearest-neighbor context for a language
// model.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package sitechat

package sitechat

import "strings"

// Chunk is a bounded, possibly overlapping substring of a source document
// used as the unit of retrieval. Position is the chunk's index within the
// corpus; retrieval correctness depends on positions staying in lockstep
// with the vectors stored in the index.
type Chunk struct {
	Position int    `json:"position"`
	Content  string `json:"content"`
}

// DefaultSplitParts is the number of segments a document is split into.
const DefaultSplitParts = 3

// DefaultSplitOverlap is the fraction of a segment shared with its neighbors.
const DefaultSplitOverlap = 0.1

// Splitter splits document text into a fixed number of overlapping segments.
//
// The split count is fixed per document rather than scaled with its length.
// That keeps segment boundaries stable across re-ingestion of the same
// corpus, which the index fingerprint relies on.
type Splitter struct {
	// Parts is the number of segments produced per document.
	Parts int

	// Overlap is the fraction of the base segment length shared with each
	// neighboring segment.
	Overlap float64
}

// NewSplitter returns a Splitter with the default three-way split and 10%
// overlap.
func NewSplitter() Splitter {
	return Splitter{Parts: DefaultSplitParts, Overlap: DefaultSplitOverlap}
}

// Split divides text into s.Parts overlapping segments covering the whole
// input. Boundaries are measured in runes so multibyte text is never cut
// mid-character. Each segment is trimmed of leading and trailing whitespace;
// segments that are empty after trimming are dropped. Splitting is a pure
// function of the input text.
//
// For a 300-rune text with three parts and 0.1 overlap the segments are
// runes [0:110], [90:210] and [190:300].
func (s Splitter) Split(text string) []string {
	parts := s.Parts
	if parts <= 0 {
		parts = DefaultSplitParts
	}

	runes := []rune(text)
	base := len(runes) / parts
	overlap := int(float64(base) * s.Overlap)

	segments := make([]string, 0, parts)
	for i := 0; i < parts; i++ {
		start := i*base - overlap
		if start < 0 {
			start = 0
		}
		end := (i+1)*base + overlap
		if i == parts-1 || end > len(runes) {
			end = len(runes)
		}

		segment := strings.TrimSpace(string(runes[start:end]))
		if segment == "" {
			continue
		}
		segments = append(segments, segment)
	}

	return segments
}

// SplitAll splits each document in order and returns the concatenated
// segment sequence. The resulting order is the corpus order: documents in
// input order, segments in document order.
func (s Splitter) SplitAll(docs []string) []string {
	var out []string
	for _, doc := range docs {
		out = append(out, s.Split(doc)...)
	}
	return out
}

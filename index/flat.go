// Package index provides an exact inner-product vector index over a chunk corpus.
package index

import (
	"encoding/gob"
	"math"
	"os"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitechat"
)

// Flat is an exact nearest-neighbor index that scores every stored vector
// against the query by inner product. The chunk texts are stored alongside
// the vectors so that vector i and chunk i can never drift apart.
type Flat struct {
	dim       int
	normalize bool
	vectors   [][]float32
	texts     []string
}

// NewFlat creates an empty index for vectors of the given dimension.
// When normalize is true, vectors are scaled to unit length on insert and
// queries are scaled the same way, making inner product equal cosine
// similarity.
func NewFlat(dim int, normalize bool) (*Flat, error) {
	if dim <= 0 {
		return nil, sitechat.Errorf(sitechat.EINVALID, "dimension must be positive")
	}
	return &Flat{dim: dim, normalize: normalize}, nil
}

// Dim returns the vector dimension.
func (f *Flat) Dim() int { return f.dim }

// Normalized reports whether stored vectors were L2-normalized, which
// determines how scores are interpreted.
func (f *Flat) Normalized() bool { return f.normalize }

// Len returns the number of indexed chunks.
func (f *Flat) Len() int { return len(f.vectors) }

// Texts returns the indexed chunk texts in corpus order.
func (f *Flat) Texts() []string {
	out := make([]string, len(f.texts))
	copy(out, f.texts)
	return out
}

// Fingerprint returns a hash of the indexed chunk texts, in order. Two
// indexes built from the same corpus share a fingerprint.
func (f *Flat) Fingerprint() uint64 {
	return fingerprintTexts(f.texts)
}

func fingerprintTexts(texts []string) uint64 {
	h := xxhash.New()
	for _, text := range texts {
		h.WriteString(text)
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// Add appends vectors and their chunk texts to the index, preserving order.
// len(vectors) must equal len(texts) and every vector must match the index
// dimension.
func (f *Flat) Add(vectors [][]float32, texts []string) error {
	if len(vectors) != len(texts) {
		return sitechat.Errorf(sitechat.EINVALID, "vector count %d does not match text count %d", len(vectors), len(texts))
	}
	for _, vec := range vectors {
		if len(vec) != f.dim {
			return sitechat.Errorf(sitechat.EINVALID, "vector dimension %d does not match index dimension %d", len(vec), f.dim)
		}
	}
	for i, vec := range vectors {
		stored := make([]float32, f.dim)
		copy(stored, vec)
		if f.normalize {
			l2Normalize(stored)
		}
		f.vectors = append(f.vectors, stored)
		f.texts = append(f.texts, texts[i])
	}
	return nil
}

// Search scores every stored vector against the query and returns up to k
// results in descending score order. Ties are broken by ascending corpus
// position so results are deterministic. If k exceeds the corpus size, all
// stored chunks are returned.
func (f *Flat) Search(query []float32, k int) ([]sitechat.SearchResult, error) {
	if len(query) != f.dim {
		return nil, sitechat.Errorf(sitechat.EINVALID, "query dimension %d does not match index dimension %d", len(query), f.dim)
	}
	if k <= 0 {
		return nil, sitechat.Errorf(sitechat.EINVALID, "k must be positive")
	}

	q := query
	if f.normalize {
		q = make([]float32, f.dim)
		copy(q, query)
		l2Normalize(q)
	}

	results := make([]sitechat.SearchResult, len(f.vectors))
	for i, vec := range f.vectors {
		results[i] = sitechat.SearchResult{
			Score:    innerProduct(q, vec),
			Position: i,
			Text:     f.texts[i],
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Position < results[j].Position
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

func innerProduct(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// l2Normalize scales v to unit length in place. Zero vectors are left
// unchanged.
func l2Normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
}

// flatBlob is the on-disk representation of a Flat index. The corpus texts
// and the normalization flag travel with the vectors so a loaded index is
// self-describing.
type flatBlob struct {
	Dim         int
	Normalize   bool
	Vectors     [][]float32
	Texts       []string
	Fingerprint uint64
}

// Save writes the index to path as a single binary blob.
func (f *Flat) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	blob := flatBlob{
		Dim:         f.dim,
		Normalize:   f.normalize,
		Vectors:     f.vectors,
		Texts:       f.texts,
		Fingerprint: f.Fingerprint(),
	}
	if err := gob.NewEncoder(file).Encode(&blob); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Load reads an index previously written with Save. The stored fingerprint
// is verified against the stored texts so a corrupt or tampered blob is
// rejected instead of silently serving wrong context.
func Load(path string) (*Flat, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var blob flatBlob
	if err := gob.NewDecoder(file).Decode(&blob); err != nil {
		return nil, sitechat.Errorf(sitechat.EINTERNAL, "failed to decode index file %s: %v", path, err)
	}
	if len(blob.Vectors) != len(blob.Texts) {
		return nil, sitechat.Errorf(sitechat.ECONFLICT, "index file %s is inconsistent: %d vectors but %d texts", path, len(blob.Vectors), len(blob.Texts))
	}
	if got := fingerprintTexts(blob.Texts); got != blob.Fingerprint {
		return nil, sitechat.Errorf(sitechat.ECONFLICT, "index file %s failed corpus fingerprint check", path)
	}

	return &Flat{
		dim:       blob.Dim,
		normalize: blob.Normalize,
		vectors:   blob.Vectors,
		texts:     blob.Texts,
	}, nil
}

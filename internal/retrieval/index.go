package retrieval

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Hit is one nearest-neighbor result.
type Hit struct {
	ID    uuid.UUID
	Score float64
}

// FlatIPIndex is an exact inner-product index over unit vectors. Vectors are
// normalized on insert, so inner product equals cosine similarity. Search is
// a full scan; with the corpus sizes this engine handles that is fine, and it
// keeps the output contract identical to an approximate backend.
type FlatIPIndex struct {
	dim int

	mu   sync.RWMutex
	vecs map[uuid.UUID][]float32
}

func NewFlatIPIndex(dim int) *FlatIPIndex {
	return &FlatIPIndex{dim: dim, vecs: make(map[uuid.UUID][]float32)}
}

func (x *FlatIPIndex) Dimension() int { return x.dim }

// Upsert inserts or replaces the vector for id. Last writer wins.
func (x *FlatIPIndex) Upsert(id uuid.UUID, vec []float32) error {
	if len(vec) != x.dim {
		return fmt.Errorf("vector dimension %d, index expects %d", len(vec), x.dim)
	}
	cp := make([]float32, len(vec))
	copy(cp, vec)
	normalize(cp)

	x.mu.Lock()
	x.vecs[id] = cp
	x.mu.Unlock()
	return nil
}

func (x *FlatIPIndex) Remove(id uuid.UUID) {
	x.mu.Lock()
	delete(x.vecs, id)
	x.mu.Unlock()
}

func (x *FlatIPIndex) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.vecs)
}

// Search returns up to k neighbors of query, best first. Ties break on id so
// repeated searches are deterministic.
func (x *FlatIPIndex) Search(query []float32, k int) []Hit {
	if k <= 0 || len(query) != x.dim {
		return nil
	}
	q := make([]float32, len(query))
	copy(q, query)
	normalize(q)

	x.mu.RLock()
	hits := make([]Hit, 0, len(x.vecs))
	for id, vec := range x.vecs {
		hits = append(hits, Hit{ID: id, Score: dotProduct(q, vec)})
	}
	x.mu.RUnlock()

	sortHits(hits)
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

// Vectors returns a copy of the stored vectors for snapshotting.
func (x *FlatIPIndex) Vectors() map[uuid.UUID][]float32 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	out := make(map[uuid.UUID][]float32, len(x.vecs))
	for id, vec := range x.vecs {
		cp := make([]float32, len(vec))
		copy(cp, vec)
		out[id] = cp
	}
	return out
}

// cosineTopK is the brute-force degraded path. It makes no normalization
// assumption about the stored vectors and computes true cosine similarity.
func cosineTopK(vectors map[uuid.UUID][]float32, query []float32, k int) []Hit {
	if k <= 0 {
		return nil
	}
	hits := make([]Hit, 0, len(vectors))
	for id, vec := range vectors {
		if len(vec) != len(query) {
			continue
		}
		hits = append(hits, Hit{ID: id, Score: cosine(query, vec)})
	}
	sortHits(hits)
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

func sortHits(hits []Hit) {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID.String() < hits[j].ID.String()
	})
}

func dotProduct(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

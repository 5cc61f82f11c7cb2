package retrieval

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"math"
	"strings"
	"sync/atomic"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/genai"

	"github.com/suawasthi/job-recom/internal/domain"
)

// Embedder converts canonical entity text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// GeminiEmbedder embeds text through the Gemini embedding API. Calls run
// behind a circuit breaker so a flapping backend trips fast instead of
// stalling every retrieval request.
type GeminiEmbedder struct {
	client  *genai.Client
	model   string
	dim     int
	breaker *gobreaker.CircuitBreaker[[]float32]
	logger  *log.Logger
}

func NewGeminiEmbedder(ctx context.Context, apiKey, model string, dim int, logger *log.Logger) (*GeminiEmbedder, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	settings := gobreaker.Settings{
		Name: "Embedding",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger != nil {
				logger.Printf("circuit breaker %s: %s -> %s", name, from.String(), to.String())
			}
		},
	}

	return &GeminiEmbedder{
		client:  client,
		model:   model,
		dim:     dim,
		breaker: gobreaker.NewCircuitBreaker[[]float32](settings),
		logger:  logger,
	}, nil
}

func (g *GeminiEmbedder) Dimension() int { return g.dim }

func (g *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := g.breaker.Execute(func() ([]float32, error) {
		resp, err := g.client.Models.EmbedContent(ctx, g.model, genai.Text(text), &genai.EmbedContentConfig{
			OutputDimensionality: genai.Ptr(int32(g.dim)),
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
			return nil, fmt.Errorf("empty embedding response")
		}
		return resp.Embeddings[0].Values, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: embed: %v", domain.ErrDependencyDegraded, err)
	}
	if len(vec) != g.dim {
		return nil, fmt.Errorf("%w: embed: got dimension %d, want %d", domain.ErrDependencyDegraded, len(vec), g.dim)
	}
	return vec, nil
}

// HashEmbedder is a deterministic, offline embedder built on token feature
// hashing. Entities sharing tokens land near each other, which is enough to
// keep retrieval ordering sensible while the real backend is down.
type HashEmbedder struct {
	dim int
}

func NewHashEmbedder(dim int) *HashEmbedder {
	if dim <= 0 {
		dim = 256
	}
	return &HashEmbedder{dim: dim}
}

func (h *HashEmbedder) Dimension() int { return h.dim }

func (h *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, h.dim)
	for _, tok := range tokenize(text) {
		hash := fnv.New64a()
		_, _ = hash.Write([]byte(tok))
		sum := hash.Sum64()
		idx := int(sum % uint64(h.dim))
		if sum&(1<<63) != 0 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}
	normalize(vec)
	return vec, nil
}

// FallbackEmbedder tries the primary embedder and degrades to the secondary
// when it fails. Degradation is transparent to callers; it is logged once.
type FallbackEmbedder struct {
	primary   Embedder
	secondary Embedder
	logger    *log.Logger

	warned atomic.Bool
}

func NewFallbackEmbedder(primary, secondary Embedder, logger *log.Logger) *FallbackEmbedder {
	return &FallbackEmbedder{primary: primary, secondary: secondary, logger: logger}
}

func (f *FallbackEmbedder) Dimension() int {
	if f.primary != nil {
		return f.primary.Dimension()
	}
	return f.secondary.Dimension()
}

func (f *FallbackEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.primary != nil {
		vec, err := f.primary.Embed(ctx, text)
		if err == nil {
			return vec, nil
		}
		if f.warned.CompareAndSwap(false, true) && f.logger != nil {
			f.logger.Printf("embedding backend degraded, using hash fallback: %v", err)
		}
	}
	return f.secondary.Embed(ctx, text)
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '+' || r == '#')
	})
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}

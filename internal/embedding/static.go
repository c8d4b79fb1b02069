package embedding

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/talentmatch/go-match-engine/internal/tokenizer"
)

// Static is a deterministic local embedder for development and tests: it
// hashes word tokens into a fixed-dimension bag-of-words vector and
// normalizes it to unit length. Texts sharing vocabulary land near each
// other, which is enough to exercise the matching pipeline end to end.
type Static struct {
	dim int
}

// NewStatic creates a Static embedder of the given dimension.
func NewStatic(dim int) *Static {
	if dim <= 0 {
		dim = 384
	}
	return &Static{dim: dim}
}

func (s *Static) Dim() int { return s.dim }

func (s *Static) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, s.dim)
	if text == "" {
		return vec, nil
	}

	for _, tok := range tokenizer.Tokenize(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok.Text))
		vec[int(h.Sum32())%s.dim]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1.0 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec, nil
}

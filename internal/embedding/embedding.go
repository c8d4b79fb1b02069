// Package embedding abstracts the external text-embedding service. The
// engine treats embedding as an opaque, potentially slow call:
// embed(text) -> vector of a fixed dimension.
package embedding

import "context"

// Embedder produces fixed-dimension embeddings for text. Empty text
// yields the zero vector rather than an error.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dim() int
}

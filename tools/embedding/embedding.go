package embedding

import (
	"context"
	"log"
	"strings"

	"github.com/proposalarchitect/speakerscout/models"
	"github.com/proposalarchitect/speakerscout/provider"
	"github.com/proposalarchitect/speakerscout/utils"
)

// MaxChars is the ceiling on text sent to the embedding endpoint; longer
// input is truncated before the request, never sent whole.
const MaxChars = 30000

type Embedder struct {
	provider provider.Provider
	logger   *log.Logger
}

func NewEmbedder(p provider.Provider) *Embedder {
	return &Embedder{
		provider: p,
		logger:   log.New(log.Writer(), "[EMBED] ", log.LstdFlags),
	}
}

// Embed requests a vector for one text. Any failure, from empty input to a
// provider error, yields nil; callers treat a nil vector as "skip this
// chunk", not as a pipeline-fatal condition.
func (e *Embedder) Embed(ctx context.Context, text string) []float32 {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) > MaxChars {
		e.logger.Printf("text truncated to %d chars for embedding", MaxChars)
		text = utils.Truncate(text, MaxChars)
	}
	vec, err := e.provider.CreateEmbedding(ctx, text)
	if err != nil {
		e.logger.Printf("embedding failed: %v", err)
		return nil
	}
	return vec
}

// ChunkAndEmbed splits text into overlapping chunks and embeds each one.
// Chunks whose embedding fails keep a nil vector and stay in the result so
// indexes are in step with the chunk list.
func (e *Embedder) ChunkAndEmbed(ctx context.Context, text string, chunkSize, overlap int) []models.TextChunk {
	parts := Chunks(text, chunkSize, overlap)
	out := make([]models.TextChunk, 0, len(parts))
	for i, part := range parts {
		out = append(out, models.TextChunk{
			Index:     i,
			Text:      part,
			Embedding: e.Embed(ctx, part),
		})
	}
	return out
}

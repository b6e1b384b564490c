package embedding

import "strings"

// sentence-ending delimiters checked before falling back to whitespace
var sentenceSeps = []string{". ", ".\n", "! ", "? ", "\n\n"}

// Chunks splits text into overlapping windows of roughly chunkSize
// characters. Each cut prefers the nearest sentence boundary past the
// window's midpoint, then the nearest whitespace, then the raw boundary, so
// chunks don't end mid-sentence. overlap must be strictly smaller than
// chunkSize. Empty text yields no chunks; text shorter than chunkSize yields
// a single chunk.
func Chunks(text string, chunkSize, overlap int) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	if len(text) <= chunkSize {
		return []string{strings.TrimSpace(text)}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + chunkSize
		if end >= len(text) {
			end = len(text)
		} else {
			end = cutPoint(text, start, end, chunkSize)
		}

		if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end >= len(text) {
			break
		}

		// overlap backwards, but never lose forward progress
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// cutPoint finds where to cut the window [start, end). A sentence boundary
// past the midpoint wins; otherwise the last whitespace past the midpoint;
// otherwise the raw window end.
func cutPoint(text string, start, end, chunkSize int) int {
	window := text[start:end]
	mid := chunkSize / 2

	best := -1
	for _, sep := range sentenceSeps {
		if idx := strings.LastIndex(window, sep); idx > mid && idx+len(sep) > best {
			best = idx + len(sep)
		}
	}
	if best != -1 {
		return start + best
	}

	if idx := strings.LastIndex(window, " "); idx > mid {
		return start + idx + 1
	}
	return end
}

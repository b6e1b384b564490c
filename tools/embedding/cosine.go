package embedding

import "math"

// CosineSimilarity computes the cosine similarity of two vectors and remaps
// it from [-1, 1] to [0, 1] so the result can be combined arithmetically with
// other unit-interval scores. Mismatched lengths or a zero-magnitude vector
// yield 0.0, never an error.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0.0
	}

	cos := dot / (math.Sqrt(magA) * math.Sqrt(magB))
	return (cos + 1) / 2
}

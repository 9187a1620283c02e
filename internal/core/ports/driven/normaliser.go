package driven

// Normaliser turns raw text into canonical form. Normalisation is
// deterministic and idempotent: normalising already-normalised text
// is a no-op. It runs before chunking and, optionally, on query text
// before embedding.
type Normaliser interface {
	Normalise(text string) string
}

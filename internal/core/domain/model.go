package domain

// ModelManifest describes a trained custom embedder model.
// It is the on-disk contract between the trainer and the custom
// embedder variant.
type ModelManifest struct {
	// Name is the model name.
	Name string `json:"name"`

	// Version is the model version (a subdirectory under the model
	// name; "latest" resolves to the lexicographically greatest).
	Version string `json:"version"`

	// TrainedAt is the RFC 3339 training timestamp.
	TrainedAt string `json:"trained_at"`

	// ExampleCount is the number of training examples sampled.
	ExampleCount int `json:"example_count"`

	// TokenWeights maps vocabulary tokens to trained weights.
	TokenWeights map[string]float64 `json:"token_weights"`
}

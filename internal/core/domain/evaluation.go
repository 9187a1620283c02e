package domain

// EvaluationQuery is one labelled query in the evaluation set.
type EvaluationQuery struct {
	// Name identifies the query in reports.
	Name string `json:"name" toml:"name"`

	// Query is the query text passed to the search pipeline.
	Query string `json:"query" toml:"query"`

	// ExpectedTerms are the ground-truth keywords a good result
	// set should cover.
	ExpectedTerms []string `json:"expected_terms" toml:"expected_terms"`

	// TopK overrides the configured search top-k when positive.
	TopK int `json:"top_k" toml:"top_k"`
}

// QueryReport holds the retrieval quality metrics for one query.
type QueryReport struct {
	Name      string  `json:"name"`
	TopK      int     `json:"top_k"`
	Recall    float64 `json:"recall"`
	MRR       float64 `json:"mrr"`
	NDCG      float64 `json:"ndcg"`
	Hits      int     `json:"hits"`
	Expected  int     `json:"expected"`
	LatencyMS float64 `json:"latency_ms"`
}

// AggregatedMetrics averages query metrics across one evaluation pass.
type AggregatedMetrics struct {
	Recall       float64 `json:"recall"`
	MRR          float64 `json:"mrr"`
	NDCG         float64 `json:"ndcg"`
	AvgLatencyMS float64 `json:"avg_latency_ms"`
	IndexSize    int     `json:"index_size"`
}

// EvaluationRun is the serialised record written to the run log,
// one per (embedder, evaluation pass).
type EvaluationRun struct {
	Timestamp string            `json:"timestamp"`
	Embedder  string            `json:"embedder"`
	Metrics   AggregatedMetrics `json:"metrics"`
	Queries   []QueryReport     `json:"queries"`
}

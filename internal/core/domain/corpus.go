package domain

// Corpus is the full persisted retrieval state: every ingested
// document, every chunk and every index entry. It is loaded whole at
// startup and saved whole after ingest.
type Corpus struct {
	Documents    []Document   `json:"documents"`
	Chunks       []Chunk      `json:"chunks"`
	IndexEntries []IndexEntry `json:"index_entries"`
}

// FindChunk resolves a chunk by ID.
func (c *Corpus) FindChunk(chunkID string) (*Chunk, bool) {
	for i := range c.Chunks {
		if c.Chunks[i].ID == chunkID {
			return &c.Chunks[i], true
		}
	}
	return nil, false
}

// FindDocument resolves a document by ID.
func (c *Corpus) FindDocument(docID string) (*Document, bool) {
	for i := range c.Documents {
		if c.Documents[i].ID == docID {
			return &c.Documents[i], true
		}
	}
	return nil, false
}

// HasDocument reports whether a document with the given content hash
// has already been ingested.
func (c *Corpus) HasDocument(hash string) bool {
	for i := range c.Documents {
		if c.Documents[i].Hash == hash {
			return true
		}
	}
	return false
}

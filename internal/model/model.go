package model

// ChatMode identifies how an answer was produced.
type ChatMode string

const (
	// ModeRAG means the answer was grounded in retrieved document context.
	ModeRAG ChatMode = "RAG"
	// ModeLLMOnly means the model answered from its own knowledge alone.
	ModeLLMOnly ChatMode = "LLM_ONLY"
	// ModeUnavailable means no usable answer could be produced.
	ModeUnavailable ChatMode = "UNAVAILABLE"
)

// Document is one loadable unit of corpus text before chunking. A PDF
// contributes one Document per page; CSV rows and plain text files have no
// page concept and leave Page at zero.
type Document struct {
	SourceFile string
	Page       int // 1-based for PDFs, 0 when the source is unpaged
	Content    string
}

// Chunk is a fixed-size window cut from a Document by the splitter.
type Chunk struct {
	ID         string
	SourceFile string
	Page       int
	StartIndex int // rune offset of the chunk within its source document
	Content    string
}

// IndexedChunk pairs a chunk with its embedding vector, ready for the
// vector store and for persistence.
type IndexedChunk struct {
	Chunk
	Vector map[string]float64
}

// ScoredChunk is a retrieval hit together with its similarity to the query.
type ScoredChunk struct {
	Chunk
	Score float64
}

// Source points an answer back at the corpus location it drew from.
type Source struct {
	SourceFile string  `json:"source_file"`
	Page       string  `json:"page"` // printable page number, "N/A" for unpaged sources
	Score      float64 `json:"score"`
}

// Answer is the result of a single chat turn.
type Answer struct {
	Question    string
	Response    string
	ContextInfo string
	Sources     []Source
	Mode        ChatMode
}

// SystemStatus is a point-in-time snapshot of pipeline readiness.
type SystemStatus struct {
	RAGReady    bool
	LLMReady    bool
	DBReady     bool
	LoadedFiles []string
	InitError   string // empty when initialization succeeded
	Message     string
}

package ai

// Role tags a conversational turn sent to the generative model.
type Role string

const (
	// RoleSystem carries the grounding instruction.
	RoleSystem Role = "system"
	// RoleUser carries the user query.
	RoleUser Role = "user"
)

// Message is one role-tagged conversational turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SparseVector is a high-dimensional, mostly-zero embedding represented as
// parallel index/value slices. Indices are unique and sorted ascending.
type SparseVector struct {
	Indices []uint32  `json:"indices"`
	Values  []float32 `json:"values"`
}

// IsEmpty reports whether the vector carries no terms.
func (v SparseVector) IsEmpty() bool { return len(v.Indices) == 0 }

// Usage carries the per-call accounting a generative model reports,
// passed through verbatim.
type Usage struct {
	CompletionTime float64 `json:"completion_time"`
	PromptTime     float64 `json:"prompt_time"`
	TotalTime      float64 `json:"total_time"`

	CompletionTokens int `json:"completion_tokens"`
	PromptTokens     int `json:"prompt_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Result is one generative completion with its usage accounting.
type Result struct {
	Text  string
	Usage Usage
}

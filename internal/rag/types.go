package rag

// Roles for chat messages, matching the OpenAI-compatible wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single turn in a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a chat pipeline request.
type ChatRequest struct {
	// History is the full conversation so far, oldest first. The last entry
	// must be a user message; it is the one used for retrieval.
	History []ChatMessage `json:"history"`
	// K optionally overrides the number of records retrieved. Zero means
	// the pipeline default.
	K int `json:"k,omitempty"`
}

// RetrievedRecord is one professor review returned by vector search.
// Metadata fields are pointers because the underlying index may not carry
// them for every point; absence is preserved, not defaulted.
type RetrievedRecord struct {
	// ID identifies the record. For review points this is the professor
	// name stored in the payload, falling back to the point ID.
	ID    string
	Score float32

	Department *string
	Rating     *float64
	Review     *string
	Timestamp  *string
}

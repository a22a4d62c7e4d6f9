package rag

import (
	"fmt"
	"strings"

	"profrag-ai/internal/llm"
)

// BuildPrompt composes the message list sent to the model: a system message,
// the prior turns unchanged, and the final user message with the retrieved
// context appended to its content. It is pure and performs no I/O.
//
// The history must be non-empty and end with a user message whose content is
// not blank; otherwise ErrInvalidHistory is returned.
func BuildPrompt(history []ChatMessage, contextBlock, systemPrompt string) ([]llm.Message, error) {
	if err := ValidateHistory(history); err != nil {
		return nil, err
	}

	last := history[len(history)-1]
	prior := history[:len(history)-1]

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{Role: RoleSystem, Content: systemPrompt})
	for _, m := range prior {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, llm.Message{
		Role:    RoleUser,
		Content: last.Content + contextBlock,
	})

	return messages, nil
}

// ValidateHistory checks the precondition shared by BuildPrompt and the
// pipeline: a non-empty history ending with a non-blank user message.
func ValidateHistory(history []ChatMessage) error {
	if len(history) == 0 {
		return fmt.Errorf("%w: history is empty", ErrInvalidHistory)
	}
	last := history[len(history)-1]
	if last.Role != RoleUser {
		return fmt.Errorf("%w: last message role is %q, want %q", ErrInvalidHistory, last.Role, RoleUser)
	}
	if strings.TrimSpace(last.Content) == "" {
		return fmt.Errorf("%w: last user message is empty", ErrInvalidHistory)
	}
	return nil
}

package rag

import (
	"errors"
	"strings"
	"testing"

	"profrag-ai/internal/llm"
)

func TestBuildPrompt_SingleUserMessage(t *testing.T) {
	history := []ChatMessage{
		{Role: RoleUser, Content: "Who teaches algorithms?"},
	}

	messages, err := BuildPrompt(history, "", "SYS")
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	want := []llm.Message{
		{Role: "system", Content: "SYS"},
		{Role: "user", Content: "Who teaches algorithms?"},
	}
	if len(messages) != len(want) {
		t.Fatalf("BuildPrompt() returned %d messages, want %d", len(messages), len(want))
	}
	for i := range want {
		if messages[i] != want[i] {
			t.Errorf("BuildPrompt() message[%d] = %+v, want %+v", i, messages[i], want[i])
		}
	}
}

func TestBuildPrompt_LengthInvariant(t *testing.T) {
	tests := []struct {
		name    string
		history []ChatMessage
	}{
		{
			name: "one turn",
			history: []ChatMessage{
				{Role: RoleUser, Content: "hello"},
			},
		},
		{
			name: "multi turn",
			history: []ChatMessage{
				{Role: RoleUser, Content: "Who teaches calculus?"},
				{Role: RoleAssistant, Content: "Dr. Chen teaches calculus."},
				{Role: RoleUser, Content: "How are her ratings?"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages, err := BuildPrompt(tt.history, "some context", "prompt")
			if err != nil {
				t.Fatalf("BuildPrompt() error = %v", err)
			}
			if len(messages) != len(tt.history)+1 {
				t.Errorf("BuildPrompt() length = %d, want %d", len(messages), len(tt.history)+1)
			}
		})
	}
}

func TestBuildPrompt_PriorTurnsPreserved(t *testing.T) {
	history := []ChatMessage{
		{Role: RoleUser, Content: "first question"},
		{Role: RoleAssistant, Content: "first answer"},
		{Role: RoleUser, Content: "second question"},
	}

	messages, err := BuildPrompt(history, "\nCTX", "SYS")
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	if messages[0].Role != "system" || messages[0].Content != "SYS" {
		t.Errorf("BuildPrompt() first message = %+v, want system SYS", messages[0])
	}
	if messages[1].Content != "first question" || messages[2].Content != "first answer" {
		t.Errorf("BuildPrompt() prior turns not preserved: %+v", messages[1:3])
	}

	final := messages[len(messages)-1]
	if final.Role != "user" {
		t.Errorf("BuildPrompt() final role = %s, want user", final.Role)
	}
	if !strings.HasPrefix(final.Content, "second question") {
		t.Errorf("BuildPrompt() final content does not start with original message: %q", final.Content)
	}
	if !strings.HasSuffix(final.Content, "CTX") {
		t.Errorf("BuildPrompt() final content does not end with context: %q", final.Content)
	}
}

func TestBuildPrompt_EmptyContextAddsNothing(t *testing.T) {
	history := []ChatMessage{
		{Role: RoleUser, Content: "plain question"},
	}

	messages, err := BuildPrompt(history, "", "SYS")
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	final := messages[len(messages)-1]
	if final.Content != "plain question" {
		t.Errorf("BuildPrompt() with empty context altered the message: %q", final.Content)
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	history := []ChatMessage{
		{Role: RoleUser, Content: "q1"},
		{Role: RoleAssistant, Content: "a1"},
		{Role: RoleUser, Content: "q2"},
	}

	first, err := BuildPrompt(history, "ctx", "sys")
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}
	second, err := BuildPrompt(history, "ctx", "sys")
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("BuildPrompt() lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("BuildPrompt() message[%d] differs between calls", i)
		}
	}
}

func TestBuildPrompt_InvalidHistory(t *testing.T) {
	tests := []struct {
		name    string
		history []ChatMessage
	}{
		{
			name:    "empty history",
			history: nil,
		},
		{
			name: "last message not user",
			history: []ChatMessage{
				{Role: RoleUser, Content: "question"},
				{Role: RoleAssistant, Content: "answer"},
			},
		},
		{
			name: "blank last user message",
			history: []ChatMessage{
				{Role: RoleUser, Content: "   "},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildPrompt(tt.history, "", "SYS")
			if !errors.Is(err, ErrInvalidHistory) {
				t.Errorf("BuildPrompt() error = %v, want ErrInvalidHistory", err)
			}
		})
	}
}

package rag

import (
	"strings"
	"testing"
)

func strPtr(s string) *string    { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestFormatRecords_Empty(t *testing.T) {
	if got := FormatRecords(nil); got != "" {
		t.Errorf("FormatRecords(nil) = %q, want empty string", got)
	}
	if got := FormatRecords([]RetrievedRecord{}); got != "" {
		t.Errorf("FormatRecords(empty) = %q, want empty string", got)
	}
}

func TestFormatRecords_AllFields(t *testing.T) {
	records := []RetrievedRecord{
		{
			ID:         "Dr. Sarah Chen",
			Score:      0.91,
			Department: strPtr("Computer Science"),
			Rating:     floatPtr(4.5),
			Review:     strPtr("Great lecturer, fair exams."),
			Timestamp:  strPtr("2024-03-15"),
		},
	}

	got := FormatRecords(records)

	for _, want := range []string{
		"--- Professor reviews ---",
		"Professor: Dr. Sarah Chen",
		"Department: Computer Science",
		"Rating: 4.5",
		"Review: Great lecturer, fair exams.",
		"Timestamp: 2024-03-15",
		"--- End reviews ---",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatRecords() missing %q in:\n%s", want, got)
		}
	}
}

func TestFormatRecords_MissingFieldsRenderUnknown(t *testing.T) {
	records := []RetrievedRecord{
		{ID: "Prof. Blank", Score: 0.5},
	}

	got := FormatRecords(records)

	for _, want := range []string{
		"Department: unknown",
		"Rating: unknown",
		"Review: unknown",
		"Timestamp: unknown",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatRecords() missing %q in:\n%s", want, got)
		}
	}
}

func TestFormatRecords_RatingFormatting(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{4.0, "Rating: 4\n"},
		{4.5, "Rating: 4.5\n"},
		{3.75, "Rating: 3.75\n"},
		{0, "Rating: 0\n"},
	}

	for _, tt := range tests {
		got := FormatRecords([]RetrievedRecord{{ID: "p", Rating: floatPtr(tt.rating)}})
		if !strings.Contains(got, tt.want) {
			t.Errorf("FormatRecords() with rating %v missing %q in:\n%s", tt.rating, tt.want, got)
		}
	}
}

func TestFormatRecords_PreservesInputOrder(t *testing.T) {
	records := []RetrievedRecord{
		{ID: "First Professor", Score: 0.9},
		{ID: "Second Professor", Score: 0.8},
		{ID: "Third Professor", Score: 0.7},
	}

	got := FormatRecords(records)

	first := strings.Index(got, "First Professor")
	second := strings.Index(got, "Second Professor")
	third := strings.Index(got, "Third Professor")
	if first == -1 || second == -1 || third == -1 {
		t.Fatalf("FormatRecords() missing a record:\n%s", got)
	}
	if !(first < second && second < third) {
		t.Errorf("FormatRecords() records out of order: %d, %d, %d", first, second, third)
	}
}

func TestFormatRecords_Deterministic(t *testing.T) {
	records := []RetrievedRecord{
		{ID: "Prof. A", Department: strPtr("Math"), Rating: floatPtr(3.5)},
		{ID: "Prof. B"},
	}

	if FormatRecords(records) != FormatRecords(records) {
		t.Error("FormatRecords() is not deterministic for identical input")
	}
}

package rag

import (
	"fmt"
	"strings"
)

// unknownField is rendered in place of metadata the index did not carry.
const unknownField = "unknown"

// FormatRecords renders retrieved records into a single context block for
// the model, in input order (similarity rank, highest first). It is pure:
// the same records always produce the same string. An empty input yields an
// empty string so the pipeline can still answer without context.
func FormatRecords(records []RetrievedRecord) string {
	if len(records) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n--- Professor reviews ---\n\n")

	for _, rec := range records {
		b.WriteString(fmt.Sprintf("Professor: %s\n", rec.ID))
		b.WriteString(fmt.Sprintf("Department: %s\n", stringOrUnknown(rec.Department)))
		b.WriteString(fmt.Sprintf("Rating: %s\n", ratingOrUnknown(rec.Rating)))
		b.WriteString(fmt.Sprintf("Review: %s\n", stringOrUnknown(rec.Review)))
		b.WriteString(fmt.Sprintf("Timestamp: %s\n", stringOrUnknown(rec.Timestamp)))
		b.WriteString("\n")
	}

	b.WriteString("--- End reviews ---")
	return b.String()
}

func stringOrUnknown(s *string) string {
	if s == nil || *s == "" {
		return unknownField
	}
	return *s
}

func ratingOrUnknown(f *float64) string {
	if f == nil {
		return unknownField
	}
	// Trailing zeros trimmed so 4.0 renders as "4".
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", *f), "0"), ".")
}

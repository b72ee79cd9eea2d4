// Package merge combines the source documents and extracted clauses into a
// single contract text.
package merge

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/smartcp/internal/model"
)

// Section headings of a composed contract.
const (
	HeadingFixtureRecap = "=== FIXTURE RECAP ==="
	HeadingNegotiated   = "=== NEGOTIATED CLAUSES ==="
	HeadingSummary      = "=== EXTRACTED CLAUSES SUMMARY ==="
	HeadingGenerated    = "=== CONTRACT GENERATED ==="
)

// TimestampLayout formats the generation time in the footer.
const TimestampLayout = "2006-01-02 15:04:05"

const footerNote = "This document combines the provided fixture recap, base charter party agreement " +
	"and negotiated clauses into a unified contract document. " +
	"Please review all terms carefully before execution."

// Compose renders the merged contract. The fixture recap comes first, then the
// base charter party, negotiated clauses, any other documents in role order,
// the extracted clauses summary and a generation footer.
func Compose(docs model.DocumentSet, result model.ExtractionResult, generatedAt time.Time) string {
	var b strings.Builder

	if recap := strings.TrimSpace(docs[model.RoleFixtureRecap]); recap != "" {
		writeSection(&b, HeadingFixtureRecap, recap)
	}

	if base := strings.TrimSpace(docs[model.RoleBaseCP]); base != "" {
		b.WriteString(base)
		b.WriteString("\n\n")
	}

	if negotiated := strings.TrimSpace(docs[model.RoleNegotiatedClauses]); negotiated != "" {
		writeSection(&b, HeadingNegotiated, negotiated)
	}

	for _, role := range docs.Roles() {
		switch role {
		case model.RoleFixtureRecap, model.RoleBaseCP, model.RoleNegotiatedClauses:
			continue
		}
		writeSection(&b, "=== "+strings.ToUpper(role)+" ===", strings.TrimSpace(docs[role]))
	}

	if summary := FormatClauses(result); summary != "" {
		writeSection(&b, HeadingSummary, summary)
	}

	b.WriteString(HeadingGenerated)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Generated on: %s\n", generatedAt.Format(TimestampLayout))
	b.WriteString("By: Smart CP Generator\n\n")
	b.WriteString(footerNote)
	b.WriteString("\n")

	return b.String()
}

// FormatClauses lists every non-empty category in presentation order with
// numbered items. It returns "" when nothing was extracted.
func FormatClauses(result model.ExtractionResult) string {
	var blocks []string
	for _, category := range model.Categories() {
		items := result[category]
		if len(items) == 0 {
			continue
		}

		var b strings.Builder
		b.WriteString(strings.ToUpper(string(category)))
		b.WriteString(":\n")
		for i, item := range items {
			fmt.Fprintf(&b, "%d. %s\n", i+1, item)
		}
		blocks = append(blocks, strings.TrimSuffix(b.String(), "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func writeSection(b *strings.Builder, heading, body string) {
	b.WriteString(heading)
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
}

package nlp

import (
	"regexp"
	"sort"
	"strings"
)

const monthPattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

// entityRule is a surface pattern that tags matching text with a label.
type entityRule struct {
	re    *regexp.Regexp
	label string
}

// entityRules covers the labels the statistical model does not produce
// reliably for shipping documents: amounts, dates, quantities and companies.
var entityRules = []entityRule{
	{label: LabelMoney, re: regexp.MustCompile(`(?i)(?:USD|US\$|EUR|GBP|\$|€|£)\s?\d[\d,]*(?:\.\d+)?(?:\s?(?:k|m|million|thousand)\b)?`)},
	{label: LabelMoney, re: regexp.MustCompile(`(?i)\b\d[\d,]*(?:\.\d+)?\s?(?:USD|EUR|GBP|dollars|euros)\b`)},
	{label: LabelDate, re: regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?\s+` + monthPattern + `\.?,?\s+\d{4}\b`)},
	{label: LabelDate, re: regexp.MustCompile(`(?i)\b` + monthPattern + `\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b`)},
	{label: LabelDate, re: regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)},
	{label: LabelDate, re: regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`)},
	{label: LabelDate, re: regexp.MustCompile(`(?i)\b\d+\s+(?:days?|weeks?|months?)\b`)},
	{label: LabelQuantity, re: regexp.MustCompile(`(?i)\b\d[\d,]*(?:\.\d+)?\s?(?:metric\s+tons?|mts?|tons?|tonnes?|cbm|dwt|teu|kgs?|barrels|bbls?)\b`)},
	{label: LabelOrg, re: regexp.MustCompile(`\b(?:[A-Z][A-Za-z0-9&'-]*\s+){1,4}(?:Ltd|Limited|Inc|Corp|Corporation|LLC|GmbH|PLC|Plc|Pte|BV|AG)\b\.?`)},
}

type entitySpan struct {
	label string
	start int
	end   int
}

// RecognizeEntities tags money amounts, dates, quantities and company names in
// text. Overlapping candidates resolve to the earliest, then longest, span.
func RecognizeEntities(text string) []Entity {
	var spans []entitySpan
	for _, rule := range entityRules {
		for _, loc := range rule.re.FindAllStringIndex(text, -1) {
			spans = append(spans, entitySpan{label: rule.label, start: loc[0], end: loc[1]})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	entities := make([]Entity, 0, len(spans))
	lastEnd := -1
	for _, span := range spans {
		if span.start < lastEnd {
			continue
		}
		entityText := strings.TrimSpace(text[span.start:span.end])
		if entityText == "" {
			continue
		}
		entities = append(entities, Entity{Text: entityText, Label: span.label})
		lastEnd = span.end
	}
	return entities
}

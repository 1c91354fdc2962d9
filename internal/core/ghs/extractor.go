// Package ghs mines GHS hazard markers out of plain SDS text. Every rule is a
// pure function over whitespace-normalized text; Extract composes them.
package ghs

import (
	"regexp"
	"slices"
	"strings"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
)

var (
	signalWordRe  = regexp.MustCompile(`(?i)Signal word[:\s]+(Danger|Warning)`)
	hazardStmtRe  = regexp.MustCompile(`H[2-4][0-9]{2}[^.]*\.?`)
	precautionRe  = regexp.MustCompile(`P[1-9][0-9]{2}[^.]*\.?`)
	pictogramRe   = regexp.MustCompile(`GHS[0-9]{2}`)
	hazardClassRe = regexp.MustCompile(`[A-Z][a-zA-Z. ]+\s[1-3][A-B]?`)
)

const minHazardClassLen = 4

// Normalize collapses every Unicode whitespace run (NBSP and vertical tab
// included) to one space.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Extract runs every rule over text. It never fails: text without hazard
// markers yields an empty record.
func Extract(text string) domain.HazardInfo {
	normalized := Normalize(text)

	info := domain.HazardInfo{
		SignalWord:              SignalWord(normalized),
		HazardStatements:        HazardStatements(normalized),
		PrecautionaryStatements: PrecautionaryStatements(normalized),
		Pictograms:              Pictograms(normalized),
		HazardClasses:           HazardClasses(normalized),
	}
	applyFlags(&info, Flags(normalized))
	applyCategories(&info, Categories(normalized))
	return info
}

// SignalWord returns "Danger", "Warning" or "".
func SignalWord(normalized string) string {
	m := signalWordRe.FindStringSubmatch(normalized)
	if m == nil {
		return ""
	}
	word := strings.ToLower(m[1])
	return strings.ToUpper(word[:1]) + word[1:]
}

func HazardStatements(normalized string) []string {
	return collect(hazardStmtRe, normalized, 0)
}

func PrecautionaryStatements(normalized string) []string {
	return collect(precautionRe, normalized, 0)
}

func Pictograms(normalized string) []string {
	return collect(pictogramRe, normalized, 0)
}

// HazardClasses matches abbreviated class phrases such as "Flam. Liq. 2" or
// "Carc. 1A". Matches of three characters or fewer are dropped.
func HazardClasses(normalized string) []string {
	return collect(hazardClassRe, normalized, minHazardClassLen)
}

func collect(re *regexp.Regexp, normalized string, minLen int) []string {
	matches := re.FindAllString(normalized, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimSpace(m)
		if len(m) < minLen || m == "" {
			continue
		}
		out = append(out, m)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

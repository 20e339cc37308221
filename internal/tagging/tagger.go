package tagging

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/gap-analyzer/internal/types"
)

var (
	metricPattern = regexp.MustCompile(`(?i)(\b\d{1,3}%\b)|(\$\s?\d+(?:\.\d+)?\s?(?:k|m|b)\b)|(\b\d+(?:\.\d+)?\s?(?:k|m|b)\b)`)
	teamPattern   = regexp.MustCompile(`(?i)\b(team of|managed|led)\s+(\d{1,4})\b`)
	budgetPattern = regexp.MustCompile(`(?i)\bbudget\s*(?:of)?\s*\$?\s*(\d+(?:\.\d+)?)\s*(k|m|b)?\b`)
	yearsPattern  = regexp.MustCompile(`(?i)\b(\d{1,2})\+?\s+years?\b`)
)

const maxMetrics = 10

// Extraction is the full tagging output for one chunk of text.
type Extraction struct {
	Tags       []string
	Entities   types.Entities
	Signals    types.Signals
	Confidence float64
}

// Tagger assigns competency tags and extracts signals from text. It is pure:
// the same input always yields byte-identical output.
type Tagger struct {
	lexicon Lexicon
}

// NewTagger creates a tagger over the given lexicon.
func NewTagger(lexicon Lexicon) *Tagger {
	return &Tagger{lexicon: lexicon}
}

// Extract tags the text and runs the entity and signal passes.
func (t *Tagger) Extract(text string) Extraction {
	low := strings.ToLower(text)

	var tags []string
	for _, entry := range t.lexicon.entries {
		for _, kw := range entry.keywords {
			if strings.Contains(low, kw) {
				tags = append(tags, entry.tag)
				break
			}
		}
	}
	tags = sortedUnique(tags)

	metrics := metricPattern.FindAllString(text, -1)
	if len(metrics) > maxMetrics {
		metrics = metrics[:maxMetrics]
	}

	var teamSize *int
	if m := teamPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[2]); err == nil {
			teamSize = &n
		}
	}

	var budget *float64
	if m := budgetPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			switch strings.ToLower(m[2]) {
			case "k":
				v *= 1_000
			case "m":
				v *= 1_000_000
			case "b":
				v *= 1_000_000_000
			}
			budget = &v
		}
	}

	var years *int
	if m := yearsPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			years = &n
		}
	}

	// Confidence is heuristic: more tags and harder signals raise it.
	confidence := 0.35
	confidence += minFloat(0.35, 0.08*float64(len(tags)))
	if len(metrics) > 0 {
		confidence += 0.10
	}
	if teamSize != nil {
		confidence += 0.10
	}
	confidence = clamp01(confidence)

	return Extraction{
		Tags:     tags,
		Entities: types.Entities{Metrics: metrics},
		Signals: types.Signals{
			Scope: types.ScopeSignals{TeamSize: teamSize, Budget: budget},
			Seniority: types.SenioritySignals{
				Years:         years,
				MentionsCEO:   strings.Contains(low, "ceo"),
				MentionsCMO:   strings.Contains(low, "cmo"),
				MentionsBoard: strings.Contains(low, "board"),
			},
		},
		Confidence: confidence,
	}
}

// Tags returns just the sorted competency tags for the text.
func (t *Tagger) Tags(text string) []string {
	return t.Extract(text).Tags
}

func sortedUnique(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Package extraction turns a job description into an ordered list of
// structured requirements using a deterministic line scanner.
package extraction

import (
	"strings"

	"github.com/jonathan/gap-analyzer/internal/tagging"
	"github.com/jonathan/gap-analyzer/internal/types"
)

// mode is the scanner state set by the most recent section heading.
type mode int

const (
	modeGeneral mode = iota
	modeResponsibility
	modeQualification
	modePreferred
)

// transitions maps heading markers to scanner modes. A line containing a
// marker (case-insensitive) switches mode and is itself discarded; mode
// persists until the next transition. Order matters: the first marker found
// on a line wins.
var transitions = []struct {
	marker string
	next   mode
}{
	{"responsibilit", modeResponsibility},
	{"qualif", modeQualification},
	{"preferred", modePreferred},
}

// bulletPrefixes are the markers that make a line a candidate requirement.
var bulletPrefixes = []string{"●", "-", "•", "*"}

const bulletCutset = "●-•* "

// Extractor builds requirements from job-description text. Competency
// assignment reuses the tagging lexicon.
type Extractor struct {
	tagger *tagging.Tagger
}

// NewExtractor creates an extractor that uses the given tagger for
// competency assignment.
func NewExtractor(tagger *tagging.Tagger) *Extractor {
	return &Extractor{tagger: tagger}
}

// Extract scans the job description and returns requirements in document
// order. Requirement IDs are a strictly increasing sequence independent of
// mode. Empty input yields an empty list.
func (e *Extractor) Extract(jobDescription string) []types.Requirement {
	jd := strings.TrimSpace(jobDescription)
	if jd == "" {
		return nil
	}

	jd = strings.ReplaceAll(jd, "\r\n", "\n")
	jd = strings.ReplaceAll(jd, "\r", "\n")

	var reqs []types.Requirement
	seq := 1
	current := modeGeneral

	for _, raw := range strings.Split(jd, "\n") {
		ln := strings.TrimSpace(raw)
		if ln == "" {
			continue
		}

		if next, ok := transition(ln); ok {
			current = next
			continue
		}

		if !isBullet(ln) {
			continue
		}
		text := strings.TrimSpace(strings.TrimLeft(ln, bulletCutset))
		if text == "" {
			continue
		}

		mustHave := current == modeQualification || current == modeResponsibility
		weight := 1
		category := types.CategoryPreferred
		if mustHave {
			weight = 3
			category = types.CategoryRequired
		}

		competency := types.CompetencyGeneral
		if tags := e.tagger.Tags(text); len(tags) > 0 {
			competency = tags[0]
		}

		reqs = append(reqs, types.Requirement{
			RequirementID: types.FormatRequirementID(seq),
			Category:      category,
			Competency:    competency,
			Text:          text,
			Weight:        weight,
			MustHave:      mustHave,
		})
		seq++
	}

	return reqs
}

func transition(line string) (mode, bool) {
	low := strings.ToLower(line)
	for _, t := range transitions {
		if strings.Contains(low, t.marker) {
			return t.next, true
		}
	}
	return modeGeneral, false
}

func isBullet(line string) bool {
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

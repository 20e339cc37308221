// Package tagging assigns competency tags and extracts structured signals
// from evidence text using a fixed keyword lexicon and regex passes.
package tagging

// Competency tags in the default lexicon.
const (
	TagCorporateNarrative  = "corporate_narrative"
	TagThoughtLeadership   = "thought_leadership"
	TagExecutiveComms      = "executive_comms"
	TagMediaRelations      = "media_relations"
	TagProductComms        = "product_comms"
	TagInternalComms       = "internal_comms"
	TagFinancialComms      = "financial_comms"
	TagCrisisIssues        = "crisis_issues"
	TagPolicyPublicAffairs = "policy_public_affairs"
	TagRegulatedHealthcare = "regulated_healthcare"
	TagMeasurement         = "measurement"
	TagAgencyManagement    = "agency_management"
	TagPartnerComms        = "partner_comms"
	TagWritingMaterials    = "writing_materials"
)

// Lexicon maps competency tags to keyword lists. Keywords match as
// case-insensitive substrings. The zero value is unusable; construct with
// DefaultLexicon or NewLexicon.
type Lexicon struct {
	entries []lexiconEntry
}

type lexiconEntry struct {
	tag      string
	keywords []string
}

// NewLexicon builds a lexicon from a tag→keywords mapping expressed as an
// ordered entry list.
func NewLexicon(entries map[string][]string) Lexicon {
	lex := Lexicon{entries: make([]lexiconEntry, 0, len(entries))}
	for tag, kws := range entries {
		lex.entries = append(lex.entries, lexiconEntry{tag: tag, keywords: kws})
	}
	return lex
}

// DefaultLexicon returns the senior corporate-communications lexicon used
// for both evidence tagging and requirement competency assignment.
func DefaultLexicon() Lexicon {
	return Lexicon{entries: []lexiconEntry{
		{TagCorporateNarrative, []string{"corporate narrative", "company narrative", "positioning", "reputation", "brand trust"}},
		{TagThoughtLeadership, []string{"thought leadership", "op-ed", "keynote", "panel", "speaker", "speaking", "byline"}},
		{TagExecutiveComms, []string{"executive communications", "ceo", "cfo", "exec", "leadership team", "board", "executive presence"}},
		{TagMediaRelations, []string{"media relations", "journalist", "press", "earned media", "pitch", "story pitch", "newsroom"}},
		{TagProductComms, []string{"product communications", "launch", "milestone", "product", "platform", "solution", "gtm"}},
		{TagInternalComms, []string{"internal communications", "employee communications", "all-hands", "town hall", "culture", "people & culture"}},
		{TagFinancialComms, []string{"financial communications", "earnings", "investor", "ir", "analyst", "guidance", "s-1", "ipo"}},
		{TagCrisisIssues, []string{"crisis", "issues management", "incident", "reputation risk", "rapid response", "war room"}},
		{TagPolicyPublicAffairs, []string{"public policy", "government affairs", "public affairs", "dc", "washington", "regulatory", "legislation"}},
		{TagRegulatedHealthcare, []string{"fda", "hipaa", "clinical", "healthcare", "biotech", "life sciences", "medtech", "health tech", "pharma"}},
		{TagMeasurement, []string{"measurement", "metrics", "kpi", "share of voice", "sentiment", "dashboard", "effectiveness"}},
		{TagAgencyManagement, []string{"agency", "pr agency", "agency relationship", "retainer", "vendor"}},
		{TagPartnerComms, []string{"partner", "partnership", "alliances", "customer", "stakeholder"}},
		{TagWritingMaterials, []string{"press release", "blog", "q&a", "messaging", "talking points", "presentation", "speech", "guidelines"}},
	}}
}

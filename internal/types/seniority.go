package types

// Seniority is the experience tier used when tailoring job titles and
// descriptions for a work history entry.
type Seniority string

const (
	SenioritySenior Seniority = "senior"
	SeniorityMid    Seniority = "mid"
	SeniorityJunior Seniority = "junior"
)

// SeniorityForPosition maps a work-history index to a tier. Index 0 is the
// most recent position and gets the senior tier, the next two are mid-level,
// and everything older is junior.
func SeniorityForPosition(index int) Seniority {
	switch {
	case index == 0:
		return SenioritySenior
	case index <= 2:
		return SeniorityMid
	default:
		return SeniorityJunior
	}
}

// TitlePrefix returns the adjective used when composing a fallback job title
// for this tier.
func (s Seniority) TitlePrefix() string {
	switch s {
	case SenioritySenior:
		return "Senior"
	case SeniorityMid:
		return "Mid-level"
	default:
		return "Junior"
	}
}

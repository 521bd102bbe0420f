// Package types defines the core data structures shared across the resume maker.
package types

// PersonalInfo holds the candidate's contact details. Title is synthesized
// during generation and overwrites whatever the caller supplied.
type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title,omitempty"`
	Address  string `json:"address,omitempty"`
	Email    string `json:"email,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// WorkExperience is one employment entry as supplied by the caller.
// Entries are ordered by recency: index 0 is the most recent position.
type WorkExperience struct {
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is one education entry. Honors and Focus are filled in during
// generation; the remaining fields come from the caller.
type Education struct {
	Degree   string `json:"degree"`
	School   string `json:"school,omitempty"`
	Location string `json:"location,omitempty"`
	Year     string `json:"year,omitempty"`
	Level    string `json:"level,omitempty"` // "bachelors" or "masters"
	Honors   string `json:"honors,omitempty"`
	Focus    string `json:"focus,omitempty"`
}

// Certification is a professional certification line on the resume.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Project is a portfolio entry.
type Project struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Technologies string `json:"technologies,omitempty"`
	URL          string `json:"url,omitempty"`
}

// UserProfile is the caller-supplied input to resume generation.
type UserProfile struct {
	PersonalInfo        PersonalInfo     `json:"personal_info"`
	ProfessionalSummary string           `json:"professional_summary,omitempty"`
	Skills              []string         `json:"skills"`
	WorkExperience      []WorkExperience `json:"work_experience"`
	Education           []Education      `json:"education"`
	Projects            []Project        `json:"projects,omitempty"`
	Certifications      []Certification  `json:"certifications,omitempty"`
	Languages           []string         `json:"languages,omitempty"`
}

// GeneratedExperience is a work entry enriched with a synthesized job title
// and description tailored to the target job description.
type GeneratedExperience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description"`
}

// ResumeRecord is the full generation output handed to the PDF renderer.
// It is built fresh per request and never persisted.
type ResumeRecord struct {
	PersonalInfo        PersonalInfo          `json:"personal_info"`
	ProfessionalSummary string                `json:"professional_summary"`
	Skills              []string              `json:"skills"`
	WorkExperience      []GeneratedExperience `json:"work_experience"`
	Certifications      []Certification       `json:"certifications"`
	Education           []Education           `json:"education"`
	Languages           []string              `json:"languages"`
	Projects            []Project             `json:"projects"`
}

// EmptyProfile returns the blank profile template served when no snapshot
// has been saved yet.
func EmptyProfile() *UserProfile {
	return &UserProfile{
		Skills:         []string{},
		WorkExperience: []WorkExperience{},
		Education:      []Education{},
		Projects:       []Project{},
		Certifications: []Certification{},
	}
}

package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/resume-maker/internal/types"
)

//go:embed resume.html.tmpl
var templateFS embed.FS

var resumeTemplate = template.Must(template.New("resume.html.tmpl").Funcs(template.FuncMap{
	"join": strings.Join,
}).ParseFS(templateFS, "resume.html.tmpl"))

type templateData struct {
	Style   StylePreset
	Record  *types.ResumeRecord
	Contact string
}

// BuildHTML renders the resume record into the HTML document that the PDF
// renderer prints. Sections appear in a fixed order; empty sections are
// omitted.
func BuildHTML(record *types.ResumeRecord, style StylePreset) (string, error) {
	data := templateData{
		Style:   style,
		Record:  record,
		Contact: contactLine(record.PersonalInfo),
	}

	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render resume template: %w", err)
	}
	return buf.String(), nil
}

func contactLine(info types.PersonalInfo) string {
	var parts []string
	for _, p := range []string{info.Address, info.Email, info.Phone, info.LinkedIn} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " • ")
}

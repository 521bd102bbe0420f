// Package rendering turns a generated resume record into a styled PDF.
// Layout varies between runs: a style preset is picked per render so
// repeated generations do not produce visually identical documents.
package rendering

import (
	"math/rand"
	"sync"
)

// Alignment is a horizontal text alignment in the rendered document.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
)

// ContactPosition controls where the contact line sits in the header.
type ContactPosition string

const (
	// ContactHeader places contact details directly under the name.
	ContactHeader ContactPosition = "header"
	// ContactBelowTitle places contact details under the professional title.
	ContactBelowTitle ContactPosition = "below_title"
)

// StylePreset is one ATS-friendly layout. Sizes are in points, margins in
// inches, section spacing in points.
type StylePreset struct {
	Name            string
	NameSize        float64
	TitleSize       float64
	ContactSize     float64
	SectionSize     float64
	JobTitleSize    float64
	BodySize        float64
	MarginInches    float64
	SectionSpacing  float64
	NameAlignment   Alignment
	TitleAlignment  Alignment
	ContactAlign    Alignment
	ContactPosition ContactPosition
	Font            string
}

// Presets returns the built-in style presets.
func Presets() []StylePreset {
	return stylePresets
}

// StylePicker selects the preset for a render.
type StylePicker interface {
	Pick() StylePreset
}

// randomPicker picks uniformly from the preset list. A seed makes the
// sequence reproducible for tests.
type randomPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewStylePicker returns a picker seeded for reproducible selection.
func NewStylePicker(seed int64) StylePicker {
	return &randomPicker{rng: rand.New(rand.NewSource(seed))}
}

// NewRandomStylePicker returns a picker with a time-derived seed.
func NewRandomStylePicker() StylePicker {
	return &randomPicker{rng: rand.New(rand.NewSource(rand.Int63()))}
}

func (p *randomPicker) Pick() StylePreset {
	p.mu.Lock()
	defer p.mu.Unlock()
	return stylePresets[p.rng.Intn(len(stylePresets))]
}

// FixedStylePicker always returns the same preset. For tests and the CLI's
// --style flag.
type FixedStylePicker struct {
	Preset StylePreset
}

func (p FixedStylePicker) Pick() StylePreset {
	return p.Preset
}

// PresetByName looks a preset up by its display name.
func PresetByName(name string) (StylePreset, bool) {
	for _, preset := range stylePresets {
		if preset.Name == name {
			return preset, true
		}
	}
	return StylePreset{}, false
}

var stylePresets = []StylePreset{
	{
		Name:     "Classic Professional - Center",
		NameSize: 18, TitleSize: 11, ContactSize: 9, SectionSize: 13, JobTitleSize: 11, BodySize: 10,
		MarginInches: 0.75, SectionSpacing: 14,
		NameAlignment: AlignCenter, TitleAlignment: AlignCenter, ContactAlign: AlignCenter,
		ContactPosition: ContactHeader, Font: "Helvetica",
	},
	{
		Name:     "Modern Minimalist - Center",
		NameSize: 20, TitleSize: 10, ContactSize: 9, SectionSize: 12, JobTitleSize: 10, BodySize: 10,
		MarginInches: 0.85, SectionSpacing: 12,
		NameAlignment: AlignCenter, TitleAlignment: AlignCenter, ContactAlign: AlignCenter,
		ContactPosition: ContactHeader, Font: "Helvetica",
	},
	{
		Name:     "Executive Bold - Left Aligned",
		NameSize: 22, TitleSize: 12, ContactSize: 10, SectionSize: 14, JobTitleSize: 11, BodySize: 11,
		MarginInches: 0.65, SectionSpacing: 16,
		NameAlignment: AlignLeft, TitleAlignment: AlignLeft, ContactAlign: AlignLeft,
		ContactPosition: ContactBelowTitle, Font: "Helvetica",
	},
	{
		Name:     "Compact Efficient - Dense",
		NameSize: 16, TitleSize: 10, ContactSize: 9, SectionSize: 11, JobTitleSize: 10, BodySize: 9.5,
		MarginInches: 0.6, SectionSpacing: 10,
		NameAlignment: AlignCenter, TitleAlignment: AlignCenter, ContactAlign: AlignCenter,
		ContactPosition: ContactHeader, Font: "Helvetica",
	},
	{
		Name:     "Balanced Standard - Left Header",
		NameSize: 17, TitleSize: 11, ContactSize: 9.5, SectionSize: 12, JobTitleSize: 10.5, BodySize: 10,
		MarginInches: 0.7, SectionSpacing: 13,
		NameAlignment: AlignLeft, TitleAlignment: AlignLeft, ContactAlign: AlignLeft,
		ContactPosition: ContactHeader, Font: "Helvetica",
	},
	{
		Name:     "Clean Contemporary - Center",
		NameSize: 19, TitleSize: 11, ContactSize: 9, SectionSize: 13, JobTitleSize: 10.5, BodySize: 10.5,
		MarginInches: 0.8, SectionSpacing: 15,
		NameAlignment: AlignCenter, TitleAlignment: AlignCenter, ContactAlign: AlignCenter,
		ContactPosition: ContactBelowTitle, Font: "Helvetica",
	},
	{
		Name:     "Professional Left - Bold",
		NameSize: 20, TitleSize: 11, ContactSize: 9, SectionSize: 13, JobTitleSize: 11, BodySize: 10.5,
		MarginInches: 0.7, SectionSpacing: 14,
		NameAlignment: AlignLeft, TitleAlignment: AlignLeft, ContactAlign: AlignLeft,
		ContactPosition: ContactBelowTitle, Font: "Helvetica",
	},
	{
		Name:     "Executive Center - Spacious",
		NameSize: 21, TitleSize: 12, ContactSize: 9.5, SectionSize: 13, JobTitleSize: 11, BodySize: 10.5,
		MarginInches: 0.75, SectionSpacing: 15,
		NameAlignment: AlignCenter, TitleAlignment: AlignCenter, ContactAlign: AlignCenter,
		ContactPosition: ContactHeader, Font: "Helvetica",
	},
	{
		Name:     "Minimalist Left - Clean",
		NameSize: 18, TitleSize: 10, ContactSize: 9, SectionSize: 12, JobTitleSize: 10, BodySize: 10,
		MarginInches: 0.8, SectionSpacing: 13,
		NameAlignment: AlignLeft, TitleAlignment: AlignLeft, ContactAlign: AlignLeft,
		ContactPosition: ContactHeader, Font: "Helvetica",
	},
	{
		Name:     "Compact Left - Efficient",
		NameSize: 17, TitleSize: 10, ContactSize: 9, SectionSize: 11, JobTitleSize: 10, BodySize: 9.5,
		MarginInches: 0.65, SectionSpacing: 11,
		NameAlignment: AlignLeft, TitleAlignment: AlignLeft, ContactAlign: AlignLeft,
		ContactPosition: ContactBelowTitle, Font: "Helvetica",
	},
}

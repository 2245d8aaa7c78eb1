// Package profile holds the static user profile the whole pipeline scores
// against. The profile is created and edited out-of-band and is a read-only
// input to every run.
package profile

import (
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

// Template keys understood by the email assembler. A pitch angle "analytics"
// selects the "analyticsOpener" entry; absent entries fall back to a generic
// opener derived from the profile itself.
const (
	OpenerSuffix   = "Opener"
	RemoteCTAKey   = "remoteCTA"
	FulltimeCTAKey = "fulltimeCTA"
)

// KeywordTiers groups free-text expertise keywords into two weight classes.
// Matching is case-insensitive everywhere downstream.
type KeywordTiers struct {
	High   []string `yaml:"high_match"`
	Medium []string `yaml:"medium_match"`
}

// PriorityTiers groups preference values (industries, client types) into two
// priority classes.
type PriorityTiers struct {
	High   []string `yaml:"high_priority"`
	Medium []string `yaml:"medium_priority"`
}

// WorkPreference selects which call-to-action template applies.
type WorkPreference struct {
	Remote       bool `yaml:"remote"`
	ProjectBased bool `yaml:"project_based"`
}

// Achievement is a reusable proof point: a named past project, a quantified
// result and the keyword set used to match it against lead text. Benchmark
// optionally names a well-known product the achievement is compared against
// and drives the social-proof section.
type Achievement struct {
	Name      string   `yaml:"name"`
	Result    string   `yaml:"result"`
	Keywords  []string `yaml:"keywords"`
	Benchmark string   `yaml:"benchmark"`
}

func (a Achievement) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.Required),
		validation.Field(&a.Result, validation.Required),
		validation.Field(&a.Keywords, validation.Required, validation.Each(validation.Required)),
	)
}

// Profile is the static scoring reference for a single user.
type Profile struct {
	Name            string `yaml:"name"`
	Role            string `yaml:"role"`
	Email           string `yaml:"email"`
	Website         string `yaml:"website"`
	YearsExperience int    `yaml:"years_experience"`

	// CoreExpertise feeds the generic value proposition when no achievement
	// matches a lead.
	CoreExpertise []string `yaml:"core_expertise"`

	ExpertiseKeywords    KeywordTiers  `yaml:"expertise_keywords"`
	PreferredIndustries  PriorityTiers `yaml:"preferred_industries"`
	PreferredClientTypes PriorityTiers `yaml:"preferred_client_types"`

	WorkPreference WorkPreference `yaml:"work_preference"`

	// HighlightProjects is an ordered list. Order matters: the achievement
	// matcher keeps the first-seen achievement on ties.
	HighlightProjects []Achievement `yaml:"highlight_projects"`

	// EmailTemplates maps pitch-angle openers and CTA variants to template
	// strings. Templates may embed the {{project_title}} and {{client_name}}
	// placeholder tokens.
	EmailTemplates map[string]string `yaml:"email_templates"`

	Signature string `yaml:"signature"`
}

func (p *Profile) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Role, validation.Required),
		validation.Field(&p.Email, is.EmailFormat),
		validation.Field(&p.YearsExperience, validation.Min(0)),
		validation.Field(&p.ExpertiseKeywords),
		validation.Field(&p.PreferredIndustries),
		validation.Field(&p.HighlightProjects),
	)
}

func (t KeywordTiers) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.High, validation.Each(validation.Required)),
		validation.Field(&t.Medium, validation.Each(validation.Required)),
	)
}

func (t PriorityTiers) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.High, validation.Each(validation.Required)),
		validation.Field(&t.Medium, validation.Each(validation.Required)),
	)
}

// Load reads and validates a profile from a YAML file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile file %q: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validating profile %q: %w", path, err)
	}

	return &p, nil
}

// Template returns the named email template and whether it is configured.
// Blank templates count as absent.
func (p *Profile) Template(key string) (string, bool) {
	if p == nil || p.EmailTemplates == nil {
		return "", false
	}
	tpl, ok := p.EmailTemplates[key]
	if !ok || strings.TrimSpace(tpl) == "" {
		return "", false
	}
	return tpl, true
}

// OpenerFor returns the opener template configured for the given pitch angle.
func (p *Profile) OpenerFor(angle string) (string, bool) {
	angle = strings.TrimSpace(angle)
	if angle == "" {
		return "", false
	}
	return p.Template(angle + OpenerSuffix)
}

// TopExpertise returns up to n core-expertise entries, skipping blanks.
func (p *Profile) TopExpertise(n int) []string {
	if p == nil || n <= 0 {
		return nil
	}
	top := make([]string, 0, n)
	for _, e := range p.CoreExpertise {
		if strings.TrimSpace(e) == "" {
			continue
		}
		top = append(top, e)
		if len(top) == n {
			break
		}
	}
	return top
}

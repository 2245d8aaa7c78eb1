// Package leads defines the lead (project posting) model and collection
// operations. Leads are produced by an external collection step; this package
// only carries them through scoring and email generation.
package leads

import "strings"

const (
	LeadIDField           = "ID"
	LeadClientField       = "Client"
	LeadPlatformLinkField = "PlatformLink"
)

// ContactCheck is an optional validity annotation attached by the contact
// verification step. The core never requires it to be present.
type ContactCheck struct {
	EmailValid      bool   `json:"email_valid"`
	EmailDisposable bool   `json:"email_disposable"`
	URLValid        bool   `json:"url_valid"`
	Note            string `json:"note,omitempty"`
}

// MatchResult holds the fields the scorer derives and writes back onto a lead.
type MatchResult struct {
	Score         int      `json:"score"`
	Reasons       []string `json:"reasons,omitempty"`
	PriorityScore int      `json:"priority_score"`
	PriorityLabel string   `json:"priority_label,omitempty"`
}

// Lead is one external posting. Optional fields default to their zero value
// and never cause errors downstream.
type Lead struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	Budget   float64 `json:"budget,omitempty"`
	Currency string  `json:"currency,omitempty"`

	Client     string `json:"client,omitempty"`
	ClientType string `json:"client_type,omitempty"`
	Industry   string `json:"industry,omitempty"`

	ContactEmail string `json:"contact_email,omitempty"`
	ContactURL   string `json:"contact_url,omitempty"`
	PlatformLink string `json:"platform_link,omitempty"`
	Platform     string `json:"platform,omitempty"`

	// Timestamps stay wire-format strings so decoding never depends on a
	// collector's exact layout.
	PostedAt    string `json:"posted_at,omitempty"`
	CollectedAt string `json:"collected_at,omitempty"`

	// Derived fields, attached by the pipeline.
	Match    *MatchResult  `json:"match,omitempty"`
	Contact  *ContactCheck `json:"contact_check,omitempty"`
	HasEmail bool          `json:"has_email,omitempty"`
}

// CombinedText returns the lowercase title+description text every matching
// step scans.
func (l *Lead) CombinedText() string {
	return strings.ToLower(strings.TrimSpace(l.Title + " " + l.Description))
}

// HasContact reports whether any direct contact channel is present.
func (l *Lead) HasContact() bool {
	return strings.TrimSpace(l.ContactEmail) != "" ||
		strings.TrimSpace(l.ContactURL) != "" ||
		strings.TrimSpace(l.PlatformLink) != ""
}

// GetStringField returns the named string field, used by the generic
// collection exclude operation.
func (l *Lead) GetStringField(name string) string {
	switch name {
	case LeadIDField:
		return l.ID
	case LeadClientField:
		return l.Client
	case LeadPlatformLinkField:
		return l.PlatformLink
	default:
		return ""
	}
}

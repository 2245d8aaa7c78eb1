package filtering

import (
	"context"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hueshadow/leadscout/internal/leads"
)

// ContactedFilterName identifies the contacted-leads step for DisableByName.
const ContactedFilterName = "contacted"

type duplicatesFilter struct{}

// NewDuplicates creates a filter that removes repeated postings. Collectors
// on different platforms frequently pick up the same listing twice.
func NewDuplicates() Filter {
	return &duplicatesFilter{}
}

func (f *duplicatesFilter) Name() string { return "duplicates" }

func (f *duplicatesFilter) Disable(string) {}

func (f *duplicatesFilter) IsEnabled() bool { return true }

func (f *duplicatesFilter) Validate(*Config) error { return nil }

func (f *duplicatesFilter) Apply(_ context.Context, deps Deps, l *leads.Leads) (*leads.Leads, Step, error) {
	initial := l.Len()

	seen := make(map[string]bool, initial)
	kept := make([]*leads.Lead, 0, initial)
	var dropped []string
	for _, lead := range l.Items {
		key := strings.TrimSpace(lead.PlatformLink)
		if key == "" {
			key = strings.TrimSpace(strings.ToLower(lead.Title + "|" + lead.Client))
		}
		if key != "" && seen[key] {
			dropped = append(dropped, lead.ID)
			continue
		}
		seen[key] = true
		kept = append(kept, lead)
	}
	l.Items = kept

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("removed duplicate postings",
			zap.Strings("dropped_leads", dropped),
			zap.Int("leads_left", l.Len()),
		)
	}

	return l, Step{Initial: initial, Dropped: len(dropped), Left: l.Len()}, nil
}

type contactedFilter struct {
	path     string
	disabled bool
	reason   string
}

// NewContacted creates a filter that removes leads recorded in the
// contacted-leads file, so repeated runs never email the same posting twice.
func NewContacted() Filter {
	return &contactedFilter{}
}

func (f *contactedFilter) Name() string { return ContactedFilterName }

func (f *contactedFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *contactedFilter) IsEnabled() bool { return !f.disabled }

func (f *contactedFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	return nil
}

func (f *contactedFilter) Apply(_ context.Context, deps Deps, l *leads.Leads) (*leads.Leads, Step, error) {
	initial := l.Len()
	if f.path == "" {
		return l, Step{Initial: initial, Dropped: 0, Left: l.Len()}, nil
	}

	contacted, err := leads.ContactedFromFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return l, Step{}, err
		}
		contacted = &leads.ContactedLeads{}
	}

	removed := l.Exclude(leads.LeadIDField, contacted.LeadIDs())
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding already contacted leads",
			zap.String("path", f.path),
			zap.Strings("excluded_leads", removed),
			zap.Int("leads_left", l.Len()),
		)
	}

	return l, Step{Initial: initial, Dropped: len(removed), Left: l.Len()}, nil
}

func (f *contactedFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type contactCheckFilter struct {
	requireContact bool
}

// NewContactCheck creates a filter that annotates every lead's contact fields
// with validity checks. It drops leads only when contact details are required
// and none survive the checks.
func NewContactCheck() Filter {
	return &contactCheckFilter{}
}

func (f *contactCheckFilter) Name() string { return "contact_check" }

func (f *contactCheckFilter) Disable(string) {}

func (f *contactCheckFilter) IsEnabled() bool { return true }

func (f *contactCheckFilter) Validate(cfg *Config) error {
	f.requireContact = cfg != nil && cfg.RequireContact
	return nil
}

func (f *contactCheckFilter) Apply(_ context.Context, deps Deps, l *leads.Leads) (*leads.Leads, Step, error) {
	initial := l.Len()
	if deps.Checker == nil {
		return l, Step{Initial: initial, Dropped: 0, Left: l.Len()}, nil
	}

	kept := make([]*leads.Lead, 0, initial)
	var dropped []string
	for _, lead := range l.Items {
		valid, disposable := deps.Checker.CheckEmail(lead.ContactEmail)
		check := &leads.ContactCheck{
			EmailValid:      valid,
			EmailDisposable: disposable,
			URLValid:        deps.Checker.CheckURL(lead.ContactURL) || deps.Checker.CheckURL(lead.PlatformLink),
		}
		if disposable {
			check.Note = "disposable email domain"
		}
		lead.Contact = check

		usable := (check.EmailValid && !check.EmailDisposable) || check.URLValid
		if f.requireContact && !usable {
			dropped = append(dropped, lead.ID)
			continue
		}
		kept = append(kept, lead)
	}
	l.Items = kept

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding leads without a usable contact channel",
			zap.Strings("excluded_leads", dropped),
			zap.Int("leads_left", l.Len()),
		)
	}

	return l, Step{Initial: initial, Dropped: len(dropped), Left: l.Len()}, nil
}

func (f *contactCheckFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: true,
		Details: map[string]string{
			"require_contact": strconv.FormatBool(f.requireContact),
		},
	}
}

type minScoreFilter struct {
	threshold int
}

// NewMinScore creates a filter that drops leads whose match score falls below
// the configured threshold. It must run after scoring.
func NewMinScore() Filter {
	return &minScoreFilter{}
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) Disable(string) {}

func (f *minScoreFilter) IsEnabled() bool { return true }

func (f *minScoreFilter) Validate(cfg *Config) error {
	f.threshold = 0
	if cfg != nil {
		f.threshold = cfg.MinMatchScore
	}
	return nil
}

func (f *minScoreFilter) Apply(_ context.Context, deps Deps, l *leads.Leads) (*leads.Leads, Step, error) {
	initial := l.Len()
	if f.threshold <= 0 {
		return l, Step{Initial: initial, Dropped: 0, Left: l.Len()}, nil
	}

	kept := make([]*leads.Lead, 0, initial)
	var dropped []string
	for _, lead := range l.Items {
		if lead.Match == nil || lead.Match.Score < f.threshold {
			dropped = append(dropped, lead.ID)
			continue
		}
		kept = append(kept, lead)
	}
	l.Items = kept

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding leads below the match score threshold",
			zap.Int("threshold", f.threshold),
			zap.Strings("excluded_leads", dropped),
			zap.Int("leads_left", l.Len()),
		)
	}

	return l, Step{Initial: initial, Dropped: len(dropped), Left: l.Len()}, nil
}

func (f *minScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: true,
		Details: map[string]string{
			"threshold": strconv.Itoa(f.threshold),
		},
	}
}

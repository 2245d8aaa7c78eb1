// Package outbox persists generated emails as markdown files plus an
// append-only JSON index. Regenerating an email for the same lead appends a
// new record; prior records are never mutated.
package outbox

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hueshadow/leadscout/internal/leads"
	"github.com/hueshadow/leadscout/internal/outreach"
	"github.com/hueshadow/leadscout/internal/scoring"
)

const (
	highPriorityDir   = "high_priority"
	mediumPriorityDir = "medium_priority"
	indexFile         = "index.json"
)

var unsafeFilenameChars = regexp.MustCompile(`[^\w-]+`)

// GeneratedEmail is one persisted email record.
type GeneratedEmail struct {
	ID            string               `json:"id"`
	LeadID        string               `json:"lead_id"`
	Client        string               `json:"client,omitempty"`
	PriorityLabel string               `json:"priority_label,omitempty"`
	File          string               `json:"file"`
	Draft         *outreach.EmailDraft `json:"draft"`
	GeneratedAt   time.Time            `json:"generated_at"`
}

// Store writes generated emails under a base directory, bucketed by priority.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	for _, sub := range []string{highPriorityDir, mediumPriorityDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("creating outbox directory: %w", err)
		}
	}
	return &Store{dir: dir}, nil
}

// Save persists the draft for the lead, marks the lead as having an email and
// returns the new record.
func (s *Store) Save(lead *leads.Lead, draft *outreach.EmailDraft) (*GeneratedEmail, error) {
	record := &GeneratedEmail{
		ID:          uuid.NewString(),
		LeadID:      lead.ID,
		Client:      lead.Client,
		Draft:       draft,
		GeneratedAt: time.Now().UTC(),
	}
	if lead.Match != nil {
		record.PriorityLabel = lead.Match.PriorityLabel
	}

	sub := mediumPriorityDir
	if record.PriorityLabel == scoring.LabelA || record.PriorityLabel == scoring.LabelB {
		sub = highPriorityDir
	}

	name := fmt.Sprintf("%s_%s_email.md", safeName(lead.ID), safeName(lead.Client))
	record.File = filepath.Join(sub, name)

	path := filepath.Join(s.dir, record.File)
	if err := os.WriteFile(path, []byte(renderMarkdown(lead, record)), 0o644); err != nil {
		return nil, fmt.Errorf("writing email file: %w", err)
	}

	if err := s.appendIndex(record); err != nil {
		return nil, err
	}

	lead.HasEmail = true
	return record, nil
}

// Records loads all persisted records from the index.
func (s *Store) Records() ([]*GeneratedEmail, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, indexFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []*GeneratedEmail
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing outbox index: %w", err)
	}
	return records, nil
}

func (s *Store) appendIndex(record *GeneratedEmail) error {
	records, err := s.Records()
	if err != nil {
		return err
	}
	records = append(records, record)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, indexFile), data, 0o644)
}

func renderMarkdown(lead *leads.Lead, record *GeneratedEmail) string {
	var b strings.Builder

	client := lead.Client
	if client == "" {
		client = "(unknown client)"
	}

	fmt.Fprintf(&b, "# Outreach Email - %s\n\n", client)
	fmt.Fprintf(&b, "**Generated**: %s\n", record.GeneratedAt.Format("2006-01-02 15:04"))
	if record.PriorityLabel != "" {
		fmt.Fprintf(&b, "**Priority**: %s\n", record.PriorityLabel)
	}
	if lead.Platform != "" {
		fmt.Fprintf(&b, "**Platform**: %s\n", lead.Platform)
	}
	fmt.Fprintf(&b, "**Generator**: %s\n", record.Draft.Generator)

	b.WriteString("\n## Subject Lines\n\n")
	for i, subject := range record.Draft.SubjectLines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, subject)
	}

	b.WriteString("\n## Email Body\n\n")
	b.WriteString(record.Draft.FullText)
	b.WriteString("\n\n## Metadata\n\n")
	fmt.Fprintf(&b, "- Pitch angle: %s\n", record.Draft.PitchAngle)
	if record.Draft.MatchedAchievement != "" {
		fmt.Fprintf(&b, "- Matched achievement: %s\n", record.Draft.MatchedAchievement)
	}
	fmt.Fprintf(&b, "- Relevance score: %.0f\n", record.Draft.RelevanceScore)
	if lead.Match != nil {
		fmt.Fprintf(&b, "- Match score: %d/100\n", lead.Match.Score)
	}

	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	s = strings.ReplaceAll(s, " ", "_")
	return unsafeFilenameChars.ReplaceAllString(s, "")
}

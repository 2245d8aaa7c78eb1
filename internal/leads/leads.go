package leads

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Leads is a mutable collection of leads flowing through the pipeline.
type Leads struct {
	Items []*Lead
}

// FromFile reads a JSON leads file produced by the external collection step.
// Records are decoded leniently: unknown fields are ignored and missing
// fields default, since collectors on different platforms emit different
// shapes.
func FromFile(path string) (*Leads, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening leads file: %w", err)
	}
	defer file.Close()

	var raw []map[string]any
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing leads file %q: %w", path, err)
	}

	var items []*Lead
	cfg := &mapstructure.DecoderConfig{
		Result:           &items,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding leads: %w", err)
	}

	return &Leads{Items: items}, nil
}

func (l *Leads) Len() int {
	return len(l.Items)
}

func (l *Leads) FindByID(id string) *Lead {
	for _, lead := range l.Items {
		if lead.ID == id {
			return lead
		}
	}
	return nil
}

// Exclude removes leads whose named string field matches any target and
// returns the removed lead IDs.
func (l *Leads) Exclude(name string, targets []string) []string {
	var excluded []string
	for _, target := range targets {
		for idx, lead := range l.Items {
			if lead.GetStringField(name) == target {
				l.RemoveByIndex(idx)
				excluded = append(excluded, lead.ID)
				break
			}
		}
	}
	return excluded
}

// RemoveByIndex removes a lead from the list by index. Does not preserve order.
func (l *Leads) RemoveByIndex(idx int) {
	l.Items[idx] = l.Items[len(l.Items)-1]
	l.Items = l.Items[:len(l.Items)-1]
}

// ReportByClient groups lead summaries by client for interactive review.
func (l *Leads) ReportByClient() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, lead := range l.Items {
		key := lead.Client
		if key == "" {
			key = "(unknown client)"
		}
		entry := map[string]string{
			"title":    lead.Title,
			"platform": lead.Platform,
			"link":     lead.PlatformLink,
			"budget":   fmt.Sprintf("%.0f %s", lead.Budget, lead.Currency),
			"industry": lead.Industry,
		}
		if lead.Match != nil {
			entry["match_score"] = fmt.Sprintf("%d/100", lead.Match.Score)
			entry["priority"] = lead.Match.PriorityLabel
		}
		report[key] = append(report[key], entry)
	}
	return report
}

// DumpToTmpFile writes the current lead list to a temporary JSON file and
// returns its name.
func (l *Leads) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "leads_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return "", err
	}
	return file.Name(), nil
}

package leads

import (
	"encoding/json"
	"os"
	"time"
)

// ContactedLeads is an append-only file of leads already reached out to, so
// repeated runs never email the same posting twice.
type ContactedLeads struct {
	Items []*ContactedLead
}

type ContactedLead struct {
	ID          string
	Link        string
	ClientName  string
	ContactedAt time.Time
}

// ToContacted snapshots the current lead list as contacted entries.
func (l *Leads) ToContacted() *ContactedLeads {
	contacted := &ContactedLeads{}
	for _, lead := range l.Items {
		contacted.Items = append(contacted.Items, &ContactedLead{
			ID:          lead.ID,
			Link:        lead.PlatformLink,
			ClientName:  lead.Client,
			ContactedAt: time.Now().UTC(),
		})
	}
	return contacted
}

// ContactedFromFile loads the contacted-leads file. A missing-size file yields
// an empty list rather than an error.
func ContactedFromFile(path string) (*ContactedLeads, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ContactedLeads{}, nil
	}

	var contacted ContactedLeads
	if err := json.NewDecoder(file).Decode(&contacted); err != nil {
		return nil, err
	}
	return &contacted, nil
}

func (c *ContactedLeads) Append(s *ContactedLeads) {
	c.Items = append(c.Items, s.Items...)
}

func (c *ContactedLeads) LeadIDs() []string {
	ids := make([]string, 0)
	for _, lead := range c.Items {
		ids = append(ids, lead.ID)
	}
	return ids
}

func (c *ContactedLeads) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

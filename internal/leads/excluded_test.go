package leads

import (
	"os"
	"path/filepath"
	"testing"
)

func TestContactedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacted.json")

	collected := &Leads{Items: []*Lead{
		{ID: "lead-1", Client: "Acme", PlatformLink: "https://upwork.example/job/1"},
		{ID: "lead-2", Client: "Globex"},
	}}

	contacted := collected.ToContacted()
	if len(contacted.Items) != 2 {
		t.Fatalf("expected 2 contacted entries, got %d", len(contacted.Items))
	}

	if err := contacted.ToFile(path); err != nil {
		t.Fatalf("writing contacted file: %v", err)
	}

	loaded, err := ContactedFromFile(path)
	if err != nil {
		t.Fatalf("loading contacted file: %v", err)
	}

	ids := loaded.LeadIDs()
	if len(ids) != 2 || ids[0] != "lead-1" || ids[1] != "lead-2" {
		t.Fatalf("unexpected lead ids: %v", ids)
	}
	if loaded.Items[0].ClientName != "Acme" {
		t.Fatalf("unexpected client name: %s", loaded.Items[0].ClientName)
	}
}

func TestContactedFromEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacted.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("creating empty file: %v", err)
	}

	contacted, err := ContactedFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error for empty file: %v", err)
	}
	if len(contacted.Items) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(contacted.Items))
	}
}

func TestContactedAppend(t *testing.T) {
	first := &ContactedLeads{Items: []*ContactedLead{{ID: "lead-1"}}}
	second := &ContactedLeads{Items: []*ContactedLead{{ID: "lead-2"}, {ID: "lead-3"}}}

	first.Append(second)

	if ids := first.LeadIDs(); len(ids) != 3 {
		t.Fatalf("expected 3 ids, got %v", ids)
	}
}

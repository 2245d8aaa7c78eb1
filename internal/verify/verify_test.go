package verify

import (
	"errors"
	"testing"
)

type fakeResolver struct {
	domains map[string]bool
	err     error
}

func (f *fakeResolver) LookupMX(domain string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.domains[domain], nil
}

func TestCheckEmail(t *testing.T) {
	checker := New()

	cases := []struct {
		name       string
		address    string
		valid      bool
		disposable bool
	}{
		{"valid", "hire@acme.example", true, false},
		{"valid with display name", "Acme Hiring <hire@acme.example>", true, false},
		{"empty", "", false, false},
		{"whitespace", "   ", false, false},
		{"no at sign", "not-an-email", false, false},
		{"disposable", "joe@mailinator.com", true, true},
		{"disposable uppercase domain", "joe@MAILINATOR.COM", true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			valid, disposable := checker.CheckEmail(tc.address)
			if valid != tc.valid || disposable != tc.disposable {
				t.Fatalf("got (%v, %v), want (%v, %v)", valid, disposable, tc.valid, tc.disposable)
			}
		})
	}
}

func TestCheckEmailWithMXResolver(t *testing.T) {
	resolver := &fakeResolver{domains: map[string]bool{"acme.example": true}}
	checker := New(WithMXResolver(resolver))

	if valid, _ := checker.CheckEmail("hire@acme.example"); !valid {
		t.Fatalf("expected valid email for domain with MX records")
	}
	if valid, _ := checker.CheckEmail("hire@nomx.example"); valid {
		t.Fatalf("expected invalid email for domain without MX records")
	}

	failing := New(WithMXResolver(&fakeResolver{err: errors.New("dns timeout")}))
	if valid, _ := failing.CheckEmail("hire@acme.example"); valid {
		t.Fatalf("expected invalid email when MX lookup fails")
	}
}

func TestCheckEmailCustomDisposableList(t *testing.T) {
	checker := New(WithDisposableDomains([]string{"Throwaway.Example "}))

	valid, disposable := checker.CheckEmail("x@throwaway.example")
	if !valid || !disposable {
		t.Fatalf("expected disposable hit, got (%v, %v)", valid, disposable)
	}

	// The custom list replaces the default one.
	valid, disposable = checker.CheckEmail("x@mailinator.com")
	if !valid || disposable {
		t.Fatalf("expected default list to be replaced, got (%v, %v)", valid, disposable)
	}
}

func TestCheckURL(t *testing.T) {
	checker := New()

	cases := []struct {
		name string
		raw  string
		want bool
	}{
		{"https", "https://acme.example/jobs/1", true},
		{"http", "http://acme.example", true},
		{"empty", "", false},
		{"no scheme", "acme.example/jobs", false},
		{"ftp", "ftp://acme.example", false},
		{"no dot in host", "https://localhost", false},
		{"garbage", "ht tp://broken", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := checker.CheckURL(tc.raw); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

// Package verify annotates lead contact fields with validity checks. The
// checks are advisory: the pipeline consumes annotations when present but
// never requires them.
package verify

import (
	"net/mail"
	"net/url"
	"strings"
)

// Domains of throwaway email providers. Mail sent there is wasted outreach.
var defaultDisposableDomains = map[string]bool{
	"mailinator.com":    true,
	"guerrillamail.com": true,
	"10minutemail.com":  true,
	"tempmail.com":      true,
	"throwawaymail.com": true,
	"yopmail.com":       true,
	"sharklasers.com":   true,
	"getnada.com":       true,
}

// MXResolver looks up mail-exchanger hosts for a domain. It is optional so
// the pure core never performs network I/O; the CLI wires net.LookupMX when
// deep checks are requested.
type MXResolver interface {
	LookupMX(domain string) (bool, error)
}

// Checker validates contact email addresses and URLs.
type Checker struct {
	disposable map[string]bool
	resolver   MXResolver
}

// Option configures a Checker.
type Option func(*Checker)

// WithMXResolver enables MX lookups for email domains.
func WithMXResolver(resolver MXResolver) Option {
	return func(c *Checker) { c.resolver = resolver }
}

// WithDisposableDomains replaces the built-in disposable-domain denylist.
func WithDisposableDomains(domains []string) Option {
	return func(c *Checker) {
		c.disposable = make(map[string]bool, len(domains))
		for _, d := range domains {
			d = strings.ToLower(strings.TrimSpace(d))
			if d != "" {
				c.disposable[d] = true
			}
		}
	}
}

func New(opts ...Option) *Checker {
	c := &Checker{disposable: defaultDisposableDomains}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckEmail validates the address syntax and flags disposable domains.
// An empty address is reported as invalid, not as an error.
func (c *Checker) CheckEmail(address string) (valid, disposable bool) {
	address = strings.TrimSpace(address)
	if address == "" {
		return false, false
	}

	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return false, false
	}

	at := strings.LastIndex(parsed.Address, "@")
	if at < 0 {
		return false, false
	}
	domain := strings.ToLower(parsed.Address[at+1:])

	if c.disposable[domain] {
		return true, true
	}

	if c.resolver != nil {
		ok, err := c.resolver.LookupMX(domain)
		if err != nil || !ok {
			return false, false
		}
	}

	return true, false
}

// CheckURL validates that the value is an absolute http(s) URL.
func (c *Checker) CheckURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	return parsed.Host != "" && strings.Contains(parsed.Host, ".")
}

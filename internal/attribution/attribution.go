package attribution

import (
	"net/url"
	"strings"

	"github.com/edushetra/edushetra-api/internal/catalog"
)

// Query parameters read at form init
const (
	ParamProgram  = "program"
	ParamRef      = "ref"
	ParamSource   = "utm_source"
	ParamMedium   = "utm_medium"
	ParamCampaign = "utm_campaign"
)

// Initial holds field values pre-filled from the URL
type Initial struct {
	ProgramInterest string `json:"programInterest,omitempty"`
}

// Snapshot is the attribution captured when the form was opened. Nil means absent.
type Snapshot struct {
	Source        *string `json:"utm_source"`
	Medium        *string `json:"utm_medium"`
	Campaign      *string `json:"utm_campaign"`
	ReferringPage *string `json:"referring_page"`
}

// Empty reports whether no attribution was captured
func (s Snapshot) Empty() bool {
	return s.Source == nil && s.Medium == nil && s.Campaign == nil && s.ReferringPage == nil
}

// Seed is the result of reading a form page URL
type Seed struct {
	Initial     Initial  `json:"initial"`
	Attribution Snapshot `json:"attribution"`
}

// FromURL reads program, ref and utm_* from a page URL, a bare query string
// ("?a=b" or "a=b") or an empty string. It never fails; unknown program values
// are dropped and whatever the query parser can salvage is used.
func FromURL(raw string) Seed {
	q := parseQuery(raw)

	var seed Seed
	if p := strings.TrimSpace(q.Get(ParamProgram)); catalog.IsProgram(p) {
		seed.Initial.ProgramInterest = p
	}
	seed.Attribution = Snapshot{
		Source:        nonEmpty(q.Get(ParamSource)),
		Medium:        nonEmpty(q.Get(ParamMedium)),
		Campaign:      nonEmpty(q.Get(ParamCampaign)),
		ReferringPage: nonEmpty(q.Get(ParamRef)),
	}
	return seed
}

func parseQuery(raw string) url.Values {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return url.Values{}
	}

	query := raw
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		query = raw[i+1:]
	} else if strings.Contains(raw, "://") || strings.HasPrefix(raw, "/") {
		// a URL without a query string
		return url.Values{}
	}
	if i := strings.IndexByte(query, '#'); i >= 0 {
		query = query[:i]
	}

	// ParseQuery keeps every pair it could decode alongside the error
	values, _ := url.ParseQuery(query)
	return values
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Strings flattens a snapshot for signing; blank fields are absent
func (s Snapshot) Strings() (source, medium, campaign, ref string) {
	return deref(s.Source), deref(s.Medium), deref(s.Campaign), deref(s.ReferringPage)
}

// FromStrings is the inverse of Strings
func FromStrings(source, medium, campaign, ref string) Snapshot {
	return Snapshot{
		Source:        nonEmpty(source),
		Medium:        nonEmpty(medium),
		Campaign:      nonEmpty(campaign),
		ReferringPage: nonEmpty(ref),
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

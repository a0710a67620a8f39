package domain

import (
	"strings"

	"github.com/cristianoliveira/listkit/internal/listview"
)

// Filter keys understood in a listview.Query.
const (
	FilterStatus = "status"
	FilterRef    = "ref"
)

// Filter holds the enum and text criteria of a listing screen.
type Filter struct {
	Status Status
	Ref    string
	// Search is split into whitespace tokens; every token must appear in
	// the name or the id, case-insensitively.
	Search string
	// None is set when the criteria contradict each other, for example
	// two different statuses. Nothing matches.
	None bool
}

// FilterFromQuery converts view query state into a Filter, validating the
// status against the collection. Search tokens of the form status:<value>
// or ref:<value> become enum criteria and are removed from Search.
func FilterFromQuery(c Collection, q listview.Query) (Filter, error) {
	f := Filter{Ref: q.Filter(FilterRef)}
	if s := q.Filter(FilterStatus); s != "" {
		status, err := ParseStatus(c, s)
		if err != nil {
			return Filter{}, err
		}
		f.Status = status
	}

	var text []string
	for _, token := range strings.Fields(q.Search) {
		field, value, ok := qualifier(token)
		if !ok {
			text = append(text, token)
			continue
		}
		switch field {
		case FilterStatus:
			status, err := ParseStatus(c, value)
			if err != nil || (f.Status != "" && f.Status != status) {
				f.None = true
				continue
			}
			f.Status = status
		case FilterRef:
			if f.Ref != "" && f.Ref != value {
				f.None = true
				continue
			}
			f.Ref = value
		}
	}
	f.Search = strings.Join(text, " ")
	return f, nil
}

// qualifier splits a field:value search token. Only the status and ref
// fields qualify and the value must not be empty.
func qualifier(token string) (field, value string, ok bool) {
	field, value, found := strings.Cut(token, ":")
	if !found || value == "" {
		return "", "", false
	}
	field = strings.ToLower(field)
	if field != FilterStatus && field != FilterRef {
		return "", "", false
	}
	return field, value, true
}

// Tokens returns the lowercased search tokens.
func (f Filter) Tokens() []string {
	return strings.Fields(strings.ToLower(f.Search))
}

// Matches reports whether r satisfies every criterion.
func (f Filter) Matches(r Record) bool {
	return f.MatchesEnums(r) && f.matchesText(r)
}

// MatchesEnums checks only the status and ref criteria.
func (f Filter) MatchesEnums(r Record) bool {
	if f.None {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Ref != "" && r.Ref != f.Ref {
		return false
	}
	return true
}

func (f Filter) matchesText(r Record) bool {
	name := strings.ToLower(r.Name)
	id := strings.ToLower(r.ID)
	for _, token := range f.Tokens() {
		if !strings.Contains(name, token) && !strings.Contains(id, token) {
			return false
		}
	}
	return true
}

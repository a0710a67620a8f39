package search

import (
	"strings"

	"github.com/cristianoliveira/listkit/internal/domain"
)

// TokenProvider provides token-based search.
// The query is split into whitespace-separated tokens.
// Each token must match at least one field (AND logic).
// Tokens of the form status:<value> or ref:<value> match that field exactly.
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a new token search provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if all tokens match.
func (p *TokenProvider) Match(r domain.Record, query string) bool {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return true
	}

	for _, token := range tokens {
		if field, want, ok := p.qualified(token); ok {
			if !p.equal(fieldValue(r, field), want) {
				return false
			}
			continue
		}
		if !p.anyFieldContains(r, token) {
			return false
		}
	}
	return true
}

// qualified splits a field:value token. Unknown prefixes are plain text.
func (p *TokenProvider) qualified(token string) (field, value string, ok bool) {
	field, value, found := strings.Cut(token, ":")
	if !found || value == "" {
		return "", "", false
	}
	switch strings.ToLower(field) {
	case FieldStatus, FieldRef:
		return strings.ToLower(field), value, true
	default:
		return "", "", false
	}
}

func (p *TokenProvider) equal(a, b string) bool {
	if p.opts.CaseInsensitive {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func (p *TokenProvider) anyFieldContains(r domain.Record, token string) bool {
	if p.opts.CaseInsensitive {
		token = strings.ToLower(token)
	}
	for _, field := range p.opts.Fields {
		value := fieldValue(r, field)
		if value == "" {
			continue
		}
		if p.opts.CaseInsensitive {
			value = strings.ToLower(value)
		}
		if strings.Contains(value, token) {
			return true
		}
	}
	return false
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return "token"
}

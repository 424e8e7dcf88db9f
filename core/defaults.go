// ABOUTME: Default values consumers apply when optional page settings are absent.
// ABOUTME: Accessors read through to the defaults without rewriting the config.

package core

import "strings"

const (
	DefaultPerPage          = 10
	DefaultSort             = "-created"
	DefaultShowUpdateButton = true
	DefaultShowDeleteButton = true
	DefaultEnableSearch     = true
)

// SortSpec is one field of a PocketBase sort expression.
type SortSpec struct {
	Field      string
	Descending bool
}

func (s SortSpec) String() string {
	if s.Descending {
		return "-" + s.Field
	}
	return s.Field
}

// Sort is a parsed PocketBase sort expression, highest priority first.
type Sort []SortSpec

// ParseSort parses "-created", "title" or "-created,title". Whitespace around
// each field is ignored. An empty item yields a SortSpec with no Field.
func ParseSort(s string) Sort {
	parts := strings.Split(s, ",")
	out := make(Sort, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		switch {
		case strings.HasPrefix(p, "-"):
			out = append(out, SortSpec{Field: strings.TrimSpace(p[1:]), Descending: true})
		case strings.HasPrefix(p, "+"):
			out = append(out, SortSpec{Field: strings.TrimSpace(p[1:])})
		default:
			out = append(out, SortSpec{Field: p})
		}
	}
	return out
}

// Fields returns the sorted field names in order.
func (s Sort) Fields() []string {
	fields := make([]string, len(s))
	for i, spec := range s {
		fields[i] = spec.Field
	}
	return fields
}

// Valid reports whether every item names a field.
func (s Sort) Valid() bool {
	for _, spec := range s {
		if spec.Field == "" {
			return false
		}
	}
	return len(s) > 0
}

func (s Sort) String() string {
	items := make([]string, len(s))
	for i, spec := range s {
		items[i] = spec.String()
	}
	return strings.Join(items, ",")
}

func boolOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}

// Bool returns a pointer to b, for optional flags in literals.
func Bool(b bool) *bool {
	return &b
}

// PerPageOrDefault returns PerPage, or DefaultPerPage when unset.
func (l *ListConfig) PerPageOrDefault() int {
	if l == nil || l.PerPage <= 0 {
		return DefaultPerPage
	}
	return l.PerPage
}

// SortOrDefault returns the parsed DefaultSort, or DefaultSort when unset.
func (l *ListConfig) SortOrDefault() Sort {
	if l == nil || strings.TrimSpace(l.DefaultSort) == "" {
		return ParseSort(DefaultSort)
	}
	return ParseSort(l.DefaultSort)
}

func (l *ListConfig) UpdateButtonShown() bool {
	if l == nil {
		return DefaultShowUpdateButton
	}
	return boolOr(l.ShowUpdateButton, DefaultShowUpdateButton)
}

func (l *ListConfig) DeleteButtonShown() bool {
	if l == nil {
		return DefaultShowDeleteButton
	}
	return boolOr(l.ShowDeleteButton, DefaultShowDeleteButton)
}

func (l *ListConfig) SearchEnabled() bool {
	if l == nil {
		return DefaultEnableSearch
	}
	return boolOr(l.EnableSearch, DefaultEnableSearch)
}

func (c *CreateConfig) DeleteButtonShown() bool {
	if c == nil {
		return DefaultShowDeleteButton
	}
	return boolOr(c.ShowDeleteButton, DefaultShowDeleteButton)
}

func (u *UpdateConfig) DeleteButtonShown() bool {
	if u == nil {
		return DefaultShowDeleteButton
	}
	return u.CreateConfig.DeleteButtonShown()
}

// ABOUTME: Page registration: appends page configs to an explicitly passed Config.
// ABOUTME: Also provides the copy-on-write WithPage builder and duplicate policies.

package core

import (
	"errors"
	"fmt"
)

var (
	// ErrPagesUninitialized is returned by Register when Config.Pages is nil.
	// The config is left untouched.
	ErrPagesUninitialized = errors.New("config pages list is not initialized")
	// ErrDuplicateResource is matched by *DuplicateResourceError.
	ErrDuplicateResource = errors.New("duplicate resource")
)

// DuplicatePolicy decides what Register does when a page for the same
// resource is already present.
type DuplicatePolicy int

const (
	// DuplicateAllow appends the page anyway.
	DuplicateAllow DuplicatePolicy = iota
	// DuplicateReject returns a *DuplicateResourceError.
	DuplicateReject
	// DuplicateReplace overwrites the existing entry in place.
	DuplicateReplace
)

func (d DuplicatePolicy) String() string {
	switch d {
	case DuplicateAllow:
		return "allow"
	case DuplicateReject:
		return "reject"
	case DuplicateReplace:
		return "replace"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", int(d))
	}
}

// ParseDuplicatePolicy parses "allow", "reject" or "replace".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "allow":
		return DuplicateAllow, nil
	case "reject":
		return DuplicateReject, nil
	case "replace":
		return DuplicateReplace, nil
	}
	return DuplicateAllow, fmt.Errorf("unknown duplicate policy %q", s)
}

// DuplicateResourceError reports a rejected second registration.
type DuplicateResourceError struct {
	ResourceName string
	Index        int // position of the existing page
}

func (e *DuplicateResourceError) Error() string {
	return fmt.Sprintf("resource %q already registered at pages[%d]", e.ResourceName, e.Index)
}

func (e *DuplicateResourceError) Unwrap() error {
	return ErrDuplicateResource
}

// NewConfig returns a Config with an empty, initialized page list.
func NewConfig(appName, description, logoURL string) *Config {
	return &Config{
		AppName:     appName,
		Description: description,
		LogoURL:     logoURL,
		Pages:       []*PageConfig{},
	}
}

// Register appends page to cfg.Pages. The stored entry is page itself, so
// later changes to page are visible through cfg.
//
// When cfg.Pages is nil nothing is appended and ErrPagesUninitialized is
// returned. Configs from NewConfig or the loaders never hit this.
func Register(cfg *Config, page *PageConfig) error {
	if cfg == nil || cfg.Pages == nil {
		return ErrPagesUninitialized
	}
	pages, err := addPage(cfg.Pages, page, cfg.Duplicates)
	if err != nil {
		return err
	}
	cfg.Pages = pages
	return nil
}

// WithPage returns a copy of c with page added. c itself is not modified;
// the page list is copied but the pages are shared. A nil page list on c is
// treated as empty.
func (c Config) WithPage(page *PageConfig) (Config, error) {
	pages := make([]*PageConfig, len(c.Pages), len(c.Pages)+1)
	copy(pages, c.Pages)

	pages, err := addPage(pages, page, c.Duplicates)
	if err != nil {
		return c, err
	}
	c.Pages = pages
	return c, nil
}

func addPage(pages []*PageConfig, page *PageConfig, policy DuplicatePolicy) ([]*PageConfig, error) {
	if page == nil {
		return nil, errors.New("page is nil")
	}
	if policy == DuplicateAllow {
		return append(pages, page), nil
	}

	for i, existing := range pages {
		if existing == nil || existing.ResourceName != page.ResourceName {
			continue
		}
		if policy == DuplicateReplace {
			pages[i] = page
			return pages, nil
		}
		return nil, &DuplicateResourceError{ResourceName: page.ResourceName, Index: i}
	}
	return append(pages, page), nil
}

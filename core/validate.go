// ABOUTME: Structural validation of a Config before it is served or checked.
// ABOUTME: Collects every problem with its path instead of stopping at the first.

package core

import (
	"errors"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// ErrInvalidConfig is matched by *ValidationError.
var ErrInvalidConfig = errors.New("invalid config")

// FieldError is one validation problem.
type FieldError struct {
	Path    string // e.g. "pages[1].create.fields"
	Message string
}

func (e FieldError) String() string {
	return e.Path + ": " + e.Message
}

// ValidationError aggregates every problem found by Validate.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.String()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

type validator struct {
	errs []FieldError
}

func (v *validator) add(path, format string, args ...any) {
	v.errs = append(v.errs, FieldError{Path: path, Message: fmt.Sprintf(format, args...)})
}

// Validate checks the config shape: mandatory names and titles, non-empty
// form layouts, required fields that exist in the layout, and unique
// resource names. It returns nil or a *ValidationError.
func (c *Config) Validate() error {
	v := &validator{}

	if strings.TrimSpace(c.AppName) == "" {
		v.add("appName", "must not be empty")
	}

	seen := make(map[string]int)
	for i, p := range c.Pages {
		path := fmt.Sprintf("pages[%d]", i)
		if p == nil {
			v.add(path, "must not be null")
			continue
		}
		v.page(path, p)

		if p.ResourceName == "" {
			continue
		}
		if first, dup := seen[p.ResourceName]; dup {
			v.add(path+".resourceName", "%q already used by pages[%d]", p.ResourceName, first)
			continue
		}
		seen[p.ResourceName] = i
	}

	if len(v.errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errs}
}

func (v *validator) page(path string, p *PageConfig) {
	if strings.TrimSpace(p.ResourceName) == "" {
		v.add(path+".resourceName", "must not be empty")
	} else if strings.ContainsAny(p.ResourceName, " /?#") {
		v.add(path+".resourceName", "%q is not a valid collection name", p.ResourceName)
	}
	if strings.TrimSpace(p.Title) == "" {
		v.add(path+".title", "must not be empty")
	}
	if strings.TrimSpace(p.Description) == "" {
		v.add(path+".description", "must not be empty")
	}
	v.permissions(path+".permissions", p.Permissions)

	if l := p.List; l != nil {
		v.permissions(path+".list.permissions", l.Permissions)
		if l.PerPage < 0 {
			v.add(path+".list.perPage", "must be positive, got %d", l.PerPage)
		}
		if l.DefaultSort != "" && !l.SortOrDefault().Valid() {
			v.add(path+".list.defaultSort", "%q names no field", l.DefaultSort)
		}
		v.unique(path+".list.columns", l.Columns)
	}
	if p.Create != nil {
		v.form(path+".create", p.Create)
	}
	if p.Update != nil {
		v.form(path+".update", &p.Update.CreateConfig)
	}
	if p.Delete != nil {
		v.permissions(path+".delete.permissions", p.Delete.Permissions)
	}
}

func (v *validator) form(path string, f *CreateConfig) {
	v.permissions(path+".permissions", f.Permissions)

	if len(f.Fields) == 0 {
		v.add(path+".fields", "must list at least one field")
	}
	for i, e := range f.Fields {
		if e.IsGroup() && len(e.Names()) == 0 {
			v.add(fmt.Sprintf("%s.fields[%d]", path, i), "field group must not be empty")
		}
		for _, n := range e.Names() {
			if strings.TrimSpace(n) == "" {
				v.add(fmt.Sprintf("%s.fields[%d]", path, i), "field name must not be empty")
			}
		}
	}

	layout := FlattenFields(f.Fields)
	v.unique(path+".fields", layout)

	inLayout := mapset.NewThreadUnsafeSet(layout...)
	for _, r := range f.RequiredFields {
		if !inLayout.Contains(r) {
			v.add(path+".requiredFields", "%q is not in fields", r)
		}
	}
	for i, val := range f.Validations {
		vp := fmt.Sprintf("%s.validations[%d]", path, i)
		if len(val) == 0 {
			v.add(vp, "must not be empty")
			continue
		}
		if _, present := val["field"]; !present {
			continue
		}
		if name, ok := val.Field(); !ok {
			v.add(vp+".field", "must be a string")
		} else if !inLayout.Contains(name) {
			v.add(vp+".field", "%q is not in fields", name)
		}
	}
}

// permissions rejects a present but empty list: it would lock everyone out,
// and omitting the list already means open access.
func (v *validator) permissions(path string, p Permissions) {
	if p == nil {
		return
	}
	if len(p) == 0 {
		v.add(path, "must list at least one key; omit it for open access")
		return
	}
	for _, k := range p {
		if strings.TrimSpace(k) == "" {
			v.add(path, "permission key must not be empty")
		}
	}
}

func (v *validator) unique(path string, names []string) {
	seen := mapset.NewThreadUnsafeSet[string]()
	for _, n := range names {
		if !seen.Add(n) {
			v.add(path, "%q listed more than once", n)
		}
	}
}

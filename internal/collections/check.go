// ABOUTME: Checks page configs against the collections that exist in PocketBase.
// ABOUTME: Reports unknown resources and columns or form fields missing from a collection.

package collections

import (
	"context"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/2389/pocketms/core"
)

// Lister is satisfied by *Client.
type Lister interface {
	ListCollections(ctx context.Context) ([]Collection, error)
}

// Problem is one mismatch between a page and the backend.
type Problem struct {
	Resource string
	Path     string // config path, e.g. "pages[0].list.columns"
	Message  string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Path, p.Message)
}

// Report is the result of Check.
type Report struct {
	Checked  int
	Problems []Problem
}

// OK reports whether every page matched its collection.
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

func (r *Report) String() string {
	if r.OK() {
		return fmt.Sprintf("%d pages checked, no problems", r.Checked)
	}
	lines := make([]string, 0, len(r.Problems)+1)
	lines = append(lines, fmt.Sprintf("%d pages checked, %d problems:", r.Checked, len(r.Problems)))
	for _, p := range r.Problems {
		lines = append(lines, "  "+p.String())
	}
	return strings.Join(lines, "\n")
}

// Check compares every page in cfg with the collections listed by l.
func Check(ctx context.Context, l Lister, cfg *core.Config) (*Report, error) {
	cols, err := l.ListCollections(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]Collection, len(cols))
	for _, c := range cols {
		byName[c.Name] = c
	}

	report := &Report{}
	for i, page := range cfg.Pages {
		if page == nil {
			continue
		}
		report.Checked++
		path := fmt.Sprintf("pages[%d]", i)

		col, ok := byName[page.ResourceName]
		if !ok {
			report.Problems = append(report.Problems, Problem{
				Resource: page.ResourceName,
				Path:     path + ".resourceName",
				Message:  fmt.Sprintf("no collection named %q", page.ResourceName),
			})
			continue
		}

		known := mapset.NewThreadUnsafeSet(col.FieldNames()...)
		missing := func(sub string, names []string) {
			for _, n := range names {
				if !known.Contains(n) {
					report.Problems = append(report.Problems, Problem{
						Resource: page.ResourceName,
						Path:     path + "." + sub,
						Message:  fmt.Sprintf("collection %q has no field %q", col.Name, n),
					})
				}
			}
		}

		if page.List != nil {
			missing("list.columns", page.List.Columns)
			if page.List.DefaultSort != "" {
				missing("list.defaultSort", page.List.SortOrDefault().Fields())
			}
		}
		if page.Create != nil {
			missing("create.fields", core.FlattenFields(page.Create.Fields))
		}
		if page.Update != nil {
			missing("update.fields", core.FlattenFields(page.Update.Fields))
		}
	}
	return report, nil
}

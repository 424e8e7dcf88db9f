// ABOUTME: Response shapes served by the manifest service.
// ABOUTME: Action views carry effective permissions and defaults already applied.

package manifest

import "github.com/2389/pocketms/core"

// NavItem is one navigation entry, in registration order.
type NavItem struct {
	ResourceName string `json:"resourceName"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Href         string `json:"href"`
}

// ActionView is the effective configuration of one page action. Unlike the
// raw config it never leaves a setting unset.
type ActionView struct {
	ResourceName string           `json:"resourceName"`
	Action       core.Action      `json:"action"`
	Permissions  core.Permissions `json:"permissions"` // null means open access
	Disabled     bool             `json:"disabled"`

	// list
	Columns          []string `json:"columns,omitempty"`
	PerPage          int      `json:"perPage,omitempty"`
	Sort             string   `json:"sort,omitempty"`
	ShowUpdateButton *bool    `json:"showUpdateButton,omitempty"`
	EnableSearch     *bool    `json:"enableSearch,omitempty"`

	// list, create, update
	ShowDeleteButton *bool `json:"showDeleteButton,omitempty"`

	// create, update. Empty Fields means every collection field.
	Fields         []core.FieldEntry `json:"fields,omitempty"`
	RequiredFields []string          `json:"requiredFields,omitempty"`
	Validations    []core.Validation `json:"validations,omitempty"`
}

func navItems(cfg *core.Config) []NavItem {
	items := make([]NavItem, 0, len(cfg.Pages))
	for _, p := range cfg.Pages {
		if p == nil {
			continue
		}
		items = append(items, NavItem{
			ResourceName: p.ResourceName,
			Title:        p.Title,
			Description:  p.Description,
			Href:         "/" + p.ResourceName,
		})
	}
	return items
}

func actionView(p *core.PageConfig, action core.Action) ActionView {
	v := ActionView{
		ResourceName: p.ResourceName,
		Action:       action,
		Permissions:  p.PermissionsFor(action),
	}

	switch action {
	case core.ActionList:
		if p.List != nil {
			v.Columns = p.List.Columns
		}
		v.PerPage = p.List.PerPageOrDefault()
		v.Sort = p.List.SortOrDefault().String()
		v.ShowUpdateButton = core.Bool(p.List.UpdateButtonShown())
		v.ShowDeleteButton = core.Bool(p.List.DeleteButtonShown())
		v.EnableSearch = core.Bool(p.List.SearchEnabled())
	case core.ActionCreate:
		v.ShowDeleteButton = core.Bool(p.Create.DeleteButtonShown())
		if p.Create != nil {
			form(&v, p.Create)
		}
	case core.ActionUpdate:
		v.ShowDeleteButton = core.Bool(p.Update.DeleteButtonShown())
		if p.Update != nil {
			form(&v, &p.Update.CreateConfig)
		}
	}
	return v
}

func form(v *ActionView, f *core.CreateConfig) {
	v.Disabled = f.Disabled
	v.Fields = f.Fields
	v.RequiredFields = f.RequiredFields
	v.Validations = f.Validations
}

// ABOUTME: Configuration schema for generated admin pages over PocketBase collections.
// ABOUTME: Pure data shapes; consumers render pages and apply defaults from these values.

package core

// Config describes one admin application: its identity and its pages.
//
// Build it with NewConfig so Pages is always initialized, then add pages with
// Register or WithPage.
type Config struct {
	// AppName is displayed in the UI header.
	AppName string `json:"appName" yaml:"appName"`
	// Description is displayed under the app name.
	Description string `json:"description" yaml:"description"`
	// LogoURL points at the logo image, either a site-relative path
	// ("/assets/logo.png") or an absolute URL.
	LogoURL string `json:"logoUrl" yaml:"logoUrl"`
	// Pages in navigation order. Nil means the list was never initialized.
	Pages []*PageConfig `json:"pages" yaml:"pages"`

	// Duplicates controls how Register treats a second page for the same
	// resource. It is a registration setting and is never serialized.
	Duplicates DuplicatePolicy `json:"-" yaml:"-"`
}

// PageConfig describes the list/create/update/delete pages of one resource.
type PageConfig struct {
	// ResourceName is the PocketBase collection name, e.g. "posts".
	ResourceName string `json:"resourceName" yaml:"resourceName"`
	// Title is the display title, e.g. "Blog Posts".
	Title string `json:"title" yaml:"title"`
	// Description is displayed as a hint in the UI.
	Description string `json:"description" yaml:"description"`
	// Permissions apply to all four actions unless the action overrides them.
	// Nil means open access.
	Permissions Permissions `json:"permissions,omitempty" yaml:"permissions,omitempty"`

	List   *ListConfig   `json:"list,omitempty" yaml:"list,omitempty"`
	Create *CreateConfig `json:"create,omitempty" yaml:"create,omitempty"`
	Update *UpdateConfig `json:"update,omitempty" yaml:"update,omitempty"`
	Delete *DeleteConfig `json:"delete,omitempty" yaml:"delete,omitempty"`
}

// ListConfig configures the list page.
//
// Pointer and zero-valued fields mean "not set"; see defaults.go for the
// values consumers fall back to.
type ListConfig struct {
	Permissions      Permissions `json:"permissions,omitempty" yaml:"permissions,omitempty"`
	Columns          []string    `json:"columns,omitempty" yaml:"columns,omitempty"`
	ShowUpdateButton *bool       `json:"showUpdateButton,omitempty" yaml:"showUpdateButton,omitempty"`
	ShowDeleteButton *bool       `json:"showDeleteButton,omitempty" yaml:"showDeleteButton,omitempty"`
	PerPage          int         `json:"perPage,omitempty" yaml:"perPage,omitempty"`
	// DefaultSort uses the PocketBase sort syntax: "-created", "title".
	DefaultSort  string `json:"defaultSort,omitempty" yaml:"defaultSort,omitempty"`
	EnableSearch *bool  `json:"enableSearch,omitempty" yaml:"enableSearch,omitempty"`
}

// CreateConfig configures the create page.
type CreateConfig struct {
	Permissions Permissions `json:"permissions,omitempty" yaml:"permissions,omitempty"`
	// Fields lists what the form shows, in order. Collection fields not listed
	// here are omitted.
	Fields           []FieldEntry `json:"fields" yaml:"fields"`
	RequiredFields   []string     `json:"requiredFields,omitempty" yaml:"requiredFields,omitempty"`
	ShowDeleteButton *bool        `json:"showDeleteButton,omitempty" yaml:"showDeleteButton,omitempty"`
	Validations      []Validation `json:"validations,omitempty" yaml:"validations,omitempty"`
	// Disabled hides the page from every user.
	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// UpdateConfig configures the update page. It has the same shape as
// CreateConfig.
type UpdateConfig struct {
	CreateConfig `yaml:",inline"`
}

// DeleteConfig configures record deletion.
type DeleteConfig struct {
	Permissions Permissions `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

// Validation is an opaque validator descriptor handed to the form renderer.
// Its keys are whatever the renderer understands; nothing in this module
// executes it, and it round-trips unchanged.
type Validation map[string]any

// Field returns the "field" key when it is a string.
func (v Validation) Field() (string, bool) {
	f, ok := v["field"].(string)
	return f, ok
}

// Action identifies one of the four generated pages.
type Action string

const (
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actions returns all actions in page order.
func Actions() []Action {
	return []Action{ActionList, ActionCreate, ActionUpdate, ActionDelete}
}

// Page returns the page registered for resourceName, or nil. With duplicate
// registrations the first match wins.
func (c *Config) Page(resourceName string) *PageConfig {
	for _, p := range c.Pages {
		if p != nil && p.ResourceName == resourceName {
			return p
		}
	}
	return nil
}

// ResourceNames returns the resource name of every page in order.
func (c *Config) ResourceNames() []string {
	names := make([]string, 0, len(c.Pages))
	for _, p := range c.Pages {
		if p != nil {
			names = append(names, p.ResourceName)
		}
	}
	return names
}

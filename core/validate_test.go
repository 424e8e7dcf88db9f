// ABOUTME: Tests for structural config validation and error paths.

package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usersPage() *PageConfig {
	return &PageConfig{
		ResourceName: "users",
		Title:        "Users",
		Description:  "User Management",
		Permissions:  Permissions{"admin"},
		List: &ListConfig{
			Columns: []string{"name", "username", "email", "permissions", "created", "updated"},
		},
		Create: &CreateConfig{
			Fields:         []FieldEntry{Single("name"), Group("username", "email"), Single("permissions")},
			RequiredFields: []string{"email"},
		},
		Update: &UpdateConfig{CreateConfig{
			Fields: []FieldEntry{Single("name"), Group("username", "email"), Single("permissions")},
		}},
	}
}

func paths(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	out := make([]string, len(verr.Errors))
	for i, fe := range verr.Errors {
		out[i] = fe.Path
	}
	return out
}

func TestValidate_Valid(t *testing.T) {
	cfg := NewConfig("My PocketMS App", "Admin", "/images/logo.png")
	require.NoError(t, Register(cfg, usersPage()))

	assert.NoError(t, cfg.Validate())
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   []string
	}{
		{
			name:   "missing app name",
			mutate: func(c *Config) { c.AppName = " " },
			want:   []string{"appName"},
		},
		{
			name: "missing page identity",
			mutate: func(c *Config) {
				c.Pages[0].ResourceName = ""
				c.Pages[0].Title = ""
				c.Pages[0].Description = ""
			},
			want: []string{"pages[0].resourceName", "pages[0].title", "pages[0].description"},
		},
		{
			name:   "bad resource name",
			mutate: func(c *Config) { c.Pages[0].ResourceName = "blog posts" },
			want:   []string{"pages[0].resourceName"},
		},
		{
			name:   "empty create fields",
			mutate: func(c *Config) { c.Pages[0].Create.Fields = nil },
			want:   []string{"pages[0].create.fields", "pages[0].create.requiredFields"},
		},
		{
			name:   "empty update group",
			mutate: func(c *Config) { c.Pages[0].Update.Fields = []FieldEntry{Group()} },
			want:   []string{"pages[0].update.fields[0]"},
		},
		{
			name:   "field listed twice",
			mutate: func(c *Config) { c.Pages[0].Create.Fields = append(c.Pages[0].Create.Fields, Single("email")) },
			want:   []string{"pages[0].create.fields"},
		},
		{
			name:   "empty permission list",
			mutate: func(c *Config) { c.Pages[0].List.Permissions = Permissions{} },
			want:   []string{"pages[0].list.permissions"},
		},
		{
			name:   "negative per page",
			mutate: func(c *Config) { c.Pages[0].List.PerPage = -1 },
			want:   []string{"pages[0].list.perPage"},
		},
		{
			name:   "sort without field",
			mutate: func(c *Config) { c.Pages[0].List.DefaultSort = "-" },
			want:   []string{"pages[0].list.defaultSort"},
		},
		{
			name: "validation on unknown field",
			mutate: func(c *Config) {
				c.Pages[0].Create.Validations = []Validation{
					{"field": "age", "rule": "min"},
					{"field": 3},
					{},
				}
			},
			want: []string{
				"pages[0].create.validations[0].field",
				"pages[0].create.validations[1].field",
				"pages[0].create.validations[2]",
			},
		},
		{
			name:   "duplicate resource",
			mutate: func(c *Config) { c.Pages = append(c.Pages, usersPage()) },
			want:   []string{"pages[1].resourceName"},
		},
		{
			name:   "nil page",
			mutate: func(c *Config) { c.Pages = append(c.Pages, nil) },
			want:   []string{"pages[1]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("App", "Admin", "/logo.png")
			require.NoError(t, Register(cfg, usersPage()))
			tt.mutate(cfg)

			err := cfg.Validate()

			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Equal(t, tt.want, paths(t, err))
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Path: "appName", Message: "must not be empty"},
		{Path: "pages[0].title", Message: "must not be empty"},
	}}

	assert.Equal(t, "invalid config: appName: must not be empty; pages[0].title: must not be empty", err.Error())
}

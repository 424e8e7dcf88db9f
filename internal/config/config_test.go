// ABOUTME: Tests for config file loading, env overrides and round-tripping.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/2389/pocketms/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersYAML = `appName: My PocketMS App Name
description: My PocketMS App Description
logoUrl: /images/logo.png
pages:
  - resourceName: users
    title: Users
    description: User Management
    permissions: [admin]
    list:
      columns: [name, username, email, permissions, created, updated]
    create:
      fields: [name, [username, email], permissions]
    update:
      fields: [name, [username, email], permissions]
      showDeleteButton: false
      disabled: true
`

const usersJSON = `{
  "appName": "My PocketMS App Name",
  "description": "My PocketMS App Description",
  "logoUrl": "/images/logo.png",
  "pages": [{
    "resourceName": "users",
    "title": "Users",
    "description": "User Management",
    "permissions": ["admin"],
    "list": {"columns": ["name", "username", "email", "permissions", "created", "updated"]},
    "create": {"fields": ["name", ["username", "email"], "permissions"]},
    "update": {"fields": ["name", ["username", "email"], "permissions"], "showDeleteButton": false, "disabled": true}
  }]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func assertUsersConfig(t *testing.T, cfg *core.Config) {
	t.Helper()
	assert.Equal(t, "My PocketMS App Name", cfg.AppName)
	assert.Equal(t, "/images/logo.png", cfg.LogoURL)
	require.Len(t, cfg.Pages, 1)

	users := cfg.Pages[0]
	assert.Equal(t, "users", users.ResourceName)
	assert.Equal(t, core.Permissions{"admin"}, users.Permissions)
	assert.Equal(t, []string{"name", "username", "email", "permissions", "created", "updated"}, users.List.Columns)
	assert.Equal(t, []core.FieldEntry{core.Single("name"), core.Group("username", "email"), core.Single("permissions")}, users.Create.Fields)
	assert.True(t, users.Create.DeleteButtonShown())
	assert.False(t, users.Update.DeleteButtonShown())
	assert.False(t, users.Create.Disabled)
	assert.True(t, users.Update.Disabled)
	assert.Equal(t, core.DuplicateReject, cfg.Duplicates)
}

func TestLoad_YAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "pocketms.yaml", usersYAML))
	require.NoError(t, err)
	assertUsersConfig(t, cfg)
}

func TestLoad_JSON(t *testing.T) {
	cfg, err := Load(writeFile(t, "pocketms.json", usersJSON))
	require.NoError(t, err)
	assertUsersConfig(t, cfg)
}

func TestLoad_ExampleFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "examples", "pocketms.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"users", "posts"}, cfg.ResourceNames())
	posts := cfg.Page("posts")
	require.NotNil(t, posts)
	assert.Equal(t, 25, posts.List.PerPageOrDefault())
	assert.Equal(t, core.Permissions{"admin"}, posts.PermissionsFor(core.ActionDelete))
	assert.Equal(t, core.Permissions{"admin", "editor"}, posts.PermissionsFor(core.ActionCreate))
	require.Len(t, posts.Create.Validations, 1)
	assert.Equal(t, "maxLength", posts.Create.Validations[0]["rule"])
}

func TestLoad_NoPagesStillInitialized(t *testing.T) {
	cfg, err := Load(writeFile(t, "pocketms.yml", "appName: Empty\ndescription: d\nlogoUrl: /l.png\n"))
	require.NoError(t, err)

	assert.NotNil(t, cfg.Pages)
	require.NoError(t, core.Register(cfg, &core.PageConfig{ResourceName: "posts", Title: "Posts", Description: "p"}))
	assert.Len(t, cfg.Pages, 1)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errIs   error
	}{
		{name: "unknown extension", file: "pocketms.toml", content: "appName = 'x'"},
		{name: "unknown yaml key", file: "pocketms.yaml", content: "appName: x\ncolour: red\n"},
		{name: "unknown json key", file: "pocketms.json", content: `{"appName":"x","colour":"red"}`},
		{name: "bad field entry", file: "pocketms.yaml", content: "appName: x\npages:\n  - resourceName: a\n    title: A\n    description: a\n    create:\n      fields: [{a: 1}]\n"},
		{
			name:    "invalid page",
			file:    "pocketms.yaml",
			content: "appName: x\npages:\n  - resourceName: users\n    title: Users\n",
			errIs:   core.ErrInvalidConfig,
		},
		{
			name:    "duplicate resource",
			file:    "pocketms.yaml",
			content: "appName: x\npages:\n  - {resourceName: a, title: A, description: a}\n  - {resourceName: a, title: A, description: a}\n",
			errIs:   core.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvAppName, "Staging Admin")
	t.Setenv(EnvLogoURL, "https://cdn.example.com/logo.png")

	cfg, err := Load(writeFile(t, "pocketms.yaml", usersYAML))
	require.NoError(t, err)

	assert.Equal(t, "Staging Admin", cfg.AppName)
	assert.Equal(t, "My PocketMS App Description", cfg.Description)
	assert.Equal(t, "https://cdn.example.com/logo.png", cfg.LogoURL)
}

func TestLoadEnv(t *testing.T) {
	envFile := writeFile(t, ".env", EnvDescription+"=From dotenv\n")
	t.Setenv(EnvDescription, "")
	os.Unsetenv(EnvDescription)

	require.NoError(t, LoadEnv(envFile, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "From dotenv", os.Getenv(EnvDescription))
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			src, err := Load(writeFile(t, "pocketms.yaml", usersYAML))
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, Save(path, src))

			got, err := Load(path)
			require.NoError(t, err)
			assertUsersConfig(t, got)
		})
	}
}

const validationsYAML = `appName: App
pages:
  - resourceName: users
    title: Users
    description: User Management
    create:
      fields: [name, email]
      validations:
        - field: email
          zod: z.string().email()
        - rule: regex
          args: {pattern: "^[a-z]+$"}
`

func TestDecode_ValidationsAreOpaque(t *testing.T) {
	cfg, err := Decode([]byte(validationsYAML), FormatYAML)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	want := []core.Validation{
		{"field": "email", "zod": "z.string().email()"},
		{"rule": "regex", "args": map[string]any{"pattern": "^[a-z]+$"}},
	}
	assert.Equal(t, want, cfg.Pages[0].Create.Validations)

	for _, format := range []Format{FormatJSON, FormatYAML} {
		data, err := Encode(cfg, format)
		require.NoError(t, err)

		got, err := Decode(data, format)
		require.NoError(t, err, string(data))
		assert.Equal(t, want, got.Pages[0].Create.Validations, "format %s", format)
	}
}

func TestDecode_ValidationFieldMustBeInLayout(t *testing.T) {
	data := []byte(`appName: App
pages:
  - resourceName: users
    title: Users
    description: User Management
    create:
      fields: [name]
      validations:
        - field: email
          zod: z.string().email()
`)
	cfg, err := Decode(data, FormatYAML)
	require.NoError(t, err)

	err = cfg.Validate()
	require.ErrorIs(t, err, core.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "pages[0].create.validations[0].field")
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.yaml": FormatYAML,
		"a.YML":  FormatYAML,
		"a.json": FormatJSON,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := FormatFromPath("a.txt")
	assert.Error(t, err)
}

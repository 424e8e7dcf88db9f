// ABOUTME: Tests for permission sets and per-action override resolution.

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPermissionsDedupes(t *testing.T) {
	p := NewPermissions("admin", "sales", "admin", "moderator")

	assert.Equal(t, Permissions{"admin", "sales", "moderator"}, p)
	assert.True(t, p.Contains("sales"))
	assert.False(t, p.Contains("guest"))
	assert.True(t, p.Set().Equal(NewPermissions("moderator", "sales", "admin").Set()))
}

func TestPermissionsKeys(t *testing.T) {
	p := Permissions{"sales", "admin", "sales"}

	assert.Equal(t, []string{"admin", "sales"}, p.Keys())
	assert.Empty(t, Permissions(nil).Keys())
}

func TestPermissionsOpen(t *testing.T) {
	var open Permissions
	assert.True(t, open.Open())
	assert.False(t, Permissions{}.Open())
	assert.False(t, NewPermissions("admin").Open())
}

func TestPermissionsFor(t *testing.T) {
	p := &PageConfig{
		ResourceName: "posts",
		Permissions:  Permissions{"admin"},
		List:         &ListConfig{Permissions: Permissions{"admin", "sales"}},
		Create:       &CreateConfig{Fields: Fields("title")},
		Update:       &UpdateConfig{CreateConfig{Permissions: Permissions{"editor"}, Fields: Fields("title")}},
	}

	tests := []struct {
		action Action
		want   Permissions
	}{
		{ActionList, Permissions{"admin", "sales"}},
		{ActionCreate, Permissions{"admin"}},
		{ActionUpdate, Permissions{"editor"}},
		{ActionDelete, Permissions{"admin"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.want, p.PermissionsFor(tt.action))
		})
	}
}

func TestPermissionsForOpenPage(t *testing.T) {
	p := &PageConfig{
		ResourceName: "posts",
		Delete:       &DeleteConfig{Permissions: Permissions{"admin"}},
	}

	assert.True(t, p.PermissionsFor(ActionList).Open())
	assert.Equal(t, Permissions{"admin"}, p.PermissionsFor(ActionDelete))
}

func TestPermissionKeys(t *testing.T) {
	p := &PageConfig{
		Permissions: Permissions{"admin"},
		List:        &ListConfig{Permissions: Permissions{"sales"}},
		Delete:      &DeleteConfig{Permissions: Permissions{"owner", "admin"}},
	}

	keys := p.PermissionKeys()

	assert.Equal(t, 3, keys.Cardinality())
	assert.True(t, keys.Contains("admin", "sales", "owner"))
}

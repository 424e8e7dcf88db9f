// ABOUTME: Permission key sets and per-action override resolution.
// ABOUTME: Resolution only; checking a user's keys belongs to the backend client.

package core

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// Permissions lists the permission keys that grant access. A nil value means
// no restriction. A user needs any one of the listed keys.
type Permissions []string

// NewPermissions returns a permission list with duplicate keys removed,
// keeping first-seen order.
func NewPermissions(keys ...string) Permissions {
	seen := mapset.NewThreadUnsafeSet[string]()
	out := make(Permissions, 0, len(keys))
	for _, k := range keys {
		if seen.Add(k) {
			out = append(out, k)
		}
	}
	return out
}

// Open reports whether no restriction applies.
func (p Permissions) Open() bool {
	return p == nil
}

// Set returns the keys as a set.
func (p Permissions) Set() mapset.Set[string] {
	return mapset.NewSet(p...)
}

// Keys returns the distinct keys in sorted order.
func (p Permissions) Keys() []string {
	keys := p.Set().ToSlice()
	sort.Strings(keys)
	return keys
}

// Contains reports whether key is listed.
func (p Permissions) Contains(key string) bool {
	for _, k := range p {
		if k == key {
			return true
		}
	}
	return false
}

// PermissionsFor returns the permissions governing action: the action's own
// list when its sub-config sets one, otherwise the page-level list.
func (p *PageConfig) PermissionsFor(action Action) Permissions {
	var override Permissions
	switch action {
	case ActionList:
		if p.List != nil {
			override = p.List.Permissions
		}
	case ActionCreate:
		if p.Create != nil {
			override = p.Create.Permissions
		}
	case ActionUpdate:
		if p.Update != nil {
			override = p.Update.Permissions
		}
	case ActionDelete:
		if p.Delete != nil {
			override = p.Delete.Permissions
		}
	}
	if override != nil {
		return override
	}
	return p.Permissions
}

// PermissionKeys returns every key referenced anywhere on the page.
func (p *PageConfig) PermissionKeys() mapset.Set[string] {
	keys := p.Permissions.Set()
	for _, a := range Actions() {
		keys.Append(p.PermissionsFor(a)...)
	}
	return keys
}

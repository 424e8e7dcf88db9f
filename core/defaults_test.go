// ABOUTME: Tests for default fallbacks and sort parsing.

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListDefaults(t *testing.T) {
	var unset *ListConfig
	for _, l := range []*ListConfig{unset, {}} {
		assert.Equal(t, 10, l.PerPageOrDefault())
		assert.Equal(t, Sort{{Field: "created", Descending: true}}, l.SortOrDefault())
		assert.True(t, l.UpdateButtonShown())
		assert.True(t, l.DeleteButtonShown())
		assert.True(t, l.SearchEnabled())
	}
}

func TestListOverrides(t *testing.T) {
	l := &ListConfig{
		PerPage:          25,
		DefaultSort:      "title",
		ShowUpdateButton: Bool(false),
		ShowDeleteButton: Bool(false),
		EnableSearch:     Bool(false),
	}

	assert.Equal(t, 25, l.PerPageOrDefault())
	assert.Equal(t, Sort{{Field: "title"}}, l.SortOrDefault())
	assert.False(t, l.UpdateButtonShown())
	assert.False(t, l.DeleteButtonShown())
	assert.False(t, l.SearchEnabled())
}

func TestFormDeleteButton(t *testing.T) {
	var create *CreateConfig
	var update *UpdateConfig
	assert.True(t, create.DeleteButtonShown())
	assert.True(t, update.DeleteButtonShown())

	update = &UpdateConfig{CreateConfig{ShowDeleteButton: Bool(false)}}
	assert.False(t, update.DeleteButtonShown())
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		in    string
		want  Sort
		valid bool
	}{
		{"-created", Sort{{Field: "created", Descending: true}}, true},
		{"title", Sort{{Field: "title"}}, true},
		{"+title", Sort{{Field: "title"}}, true},
		{"  -updated ", Sort{{Field: "updated", Descending: true}}, true},
		{"-created,title", Sort{{Field: "created", Descending: true}, {Field: "title"}}, true},
		{" -created , +title ", Sort{{Field: "created", Descending: true}, {Field: "title"}}, true},
		{"-", Sort{{Descending: true}}, false},
		{"title,,created", Sort{{Field: "title"}, {}, {Field: "created"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseSort(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, got.Valid())
		})
	}

	assert.Equal(t, "-created", ParseSort("-created").String())
	assert.Equal(t, "-created,title", ParseSort(" -created, +title").String())
	assert.Equal(t, []string{"created", "title"}, ParseSort("-created,title").Fields())
}

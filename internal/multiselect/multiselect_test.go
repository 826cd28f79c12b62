package multiselect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"office-asset-web/internal/model"
)

func categories() []Item {
	return []Item{
		{Label: "Laptop", Value: "1"},
		{Label: "Monitor", Value: "2"},
		{Label: "Desk", Value: "3"},
	}
}

func TestToggle(t *testing.T) {
	s := New(categories(), []string{"1", "2"})

	assert.Equal(t, []string{"1"}, s.Toggle("2"))
	assert.Equal(t, []string{"1", "2", "3"}, s.Toggle("3"))
	// receiver untouched
	assert.Equal(t, []string{"1", "2"}, s.Selected())
}

func TestToggle_TwiceRestoresMembership(t *testing.T) {
	s := New(categories(), []string{"2"})

	once := New(categories(), s.Toggle("1"))
	assert.ElementsMatch(t, []string{"2"}, once.Toggle("1"))
}

func TestNew_CollapsesDuplicates(t *testing.T) {
	s := New(categories(), []string{"2", "1", "2"})

	assert.Equal(t, []string{"2", "1"}, s.Selected())
}

func TestUnknownSelectionIsPreservedButNotShown(t *testing.T) {
	// categories not loaded yet
	s := New(nil, []string{"7", "2"})
	assert.Equal(t, []string{"7", "2"}, s.Selected())
	assert.Empty(t, s.Options())
	assert.False(t, s.IsSelected("2"))

	// categories loaded, 7 still unknown
	s = New(categories(), s.Selected())
	assert.True(t, s.IsSelected("2"))
	assert.False(t, s.IsSelected("7"))
	assert.Equal(t, []string{"7", "2"}, s.Selected())

	for _, opt := range s.Options() {
		assert.Equal(t, opt.Value == "2", opt.Selected, opt.Value)
		assert.Contains(t, opt.Toggled, "7")
	}
}

func TestOptions(t *testing.T) {
	s := New(categories(), []string{"3"})

	opts := s.Options()

	assert.Len(t, opts, 3)
	assert.False(t, opts[0].Selected)
	assert.Equal(t, []string{"3", "1"}, opts[0].Toggled)
	assert.True(t, opts[2].Selected)
	assert.Equal(t, []string{}, opts[2].Toggled)
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		want     string
	}{
		{"none", nil, "Category"},
		{"one", []string{"2"}, "Monitor"},
		{"some", []string{"2", "1"}, "Laptop +1"},
		{"all", []string{"1", "2", "3"}, "All"},
		{"unknown only", []string{"9"}, "Category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(categories(), tt.selected).Summary("Category"))
		})
	}
}

func TestFromEnum(t *testing.T) {
	items := FromEnum([]model.AssetState{model.AssetAvailable, model.AssetUnavailable})

	assert.Equal(t, []Item{
		{Label: "Available", Value: "AVAILABLE"},
		{Label: "Not Available", Value: "UNAVAILABLE"},
	}, items)
	assert.Equal(t, []model.AssetState{model.AssetAssigned}, Values[model.AssetState]([]string{"ASSIGNED"}))
	assert.Equal(t, []string{"ACCEPTED"}, Strings([]model.AssignmentState{model.AssignmentAccepted}))
}

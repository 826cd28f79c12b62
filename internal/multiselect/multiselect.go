// Package multiselect models a checkable filter list whose selection is kept
// as an ordered sequence of values.
package multiselect

import (
	"slices"
	"strconv"
)

// Item is one checkable entry.
type Item struct {
	Label string
	Value string
}

// Option is an item as rendered: whether it is checked and what the
// selection becomes when it is clicked.
type Option struct {
	Item
	Selected bool
	Toggled  []string
}

// Select holds the items and the current selection. The selection may
// reference values that are not (yet) among the items; those are kept but
// never rendered as selected.
type Select struct {
	items    []Item
	selected []string
}

// New builds a Select. Duplicate selected values are collapsed, keeping the
// first occurrence.
func New(items []Item, selected []string) *Select {
	sel := make([]string, 0, len(selected))
	for _, v := range selected {
		if !slices.Contains(sel, v) {
			sel = append(sel, v)
		}
	}
	return &Select{items: slices.Clone(items), selected: sel}
}

// Items returns the supplied items.
func (s *Select) Items() []Item {
	return slices.Clone(s.items)
}

// Selected returns the full selection in order, including values without
// a matching item.
func (s *Select) Selected() []string {
	return slices.Clone(s.selected)
}

// IsSelected reports whether value is both selected and a known item.
func (s *Select) IsSelected(value string) bool {
	return s.known(value) && slices.Contains(s.selected, value)
}

// Toggle returns the selection with value removed if present, appended
// otherwise. The receiver is not modified.
func (s *Select) Toggle(value string) []string {
	if i := slices.Index(s.selected, value); i >= 0 {
		return slices.Delete(slices.Clone(s.selected), i, i+1)
	}
	return append(slices.Clone(s.selected), value)
}

// Options returns every item with its checked state and toggled selection.
func (s *Select) Options() []Option {
	out := make([]Option, len(s.items))
	for i, item := range s.items {
		out[i] = Option{
			Item:     item,
			Selected: slices.Contains(s.selected, item.Value),
			Toggled:  s.Toggle(item.Value),
		}
	}
	return out
}

// Summary is the label shown on the closed widget.
func (s *Select) Summary(placeholder string) string {
	var labels []string
	for _, item := range s.items {
		if slices.Contains(s.selected, item.Value) {
			labels = append(labels, item.Label)
		}
	}
	switch {
	case len(labels) == 0:
		return placeholder
	case len(labels) == len(s.items):
		return "All"
	case len(labels) == 1:
		return labels[0]
	}
	return labels[0] + " +" + strconv.Itoa(len(labels)-1)
}

func (s *Select) known(value string) bool {
	return slices.ContainsFunc(s.items, func(it Item) bool { return it.Value == value })
}

type labeled interface {
	~string
	Label() string
}

// FromEnum builds items from enum values using their labels.
func FromEnum[T labeled](values []T) []Item {
	out := make([]Item, len(values))
	for i, v := range values {
		out[i] = Item{Label: v.Label(), Value: string(v)}
	}
	return out
}

// Strings converts enum values to their string form.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// Values converts strings back to enum values.
func Values[T ~string](values []string) []T {
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = T(v)
	}
	return out
}

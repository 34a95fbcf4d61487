// Package codes resolves human-readable option names to the numeric
// identifiers the Fineract API expects. A code group is any backend-defined
// enumeration: code values fetched from /codes/{id}/codevalues, option lists
// embedded in template documents, or the currency list.
package codes

import (
	"fmt"
	"strings"
)

// Value is one entry of a code group. Template option lists name their
// display text either "name" (payment types, code values) or "value"
// (frequency types); both are decoded and Display picks whichever is set.
type Value struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Display returns the entry's human-readable text.
func (v Value) Display() string {
	if v.Name != "" {
		return v.Name
	}
	return v.Value
}

// Group is an ordered code enumeration.
type Group struct {
	Name   string
	Values []Value
}

// NotFoundError signals that a name matched no entry in a group. Callers
// decide whether that is fatal (required field) or ignorable (optional
// field); the resolver never substitutes a default on its own.
type NotFoundError struct {
	Group string
	Name  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no entry named %q in code group %q", e.Name, e.Group)
}

// Resolve finds the id of the entry whose display text equals name,
// case-insensitively. The first match in group order wins.
func Resolve(group Group, name string) (int64, error) {
	for _, v := range group.Values {
		if strings.EqualFold(v.Display(), name) {
			return v.ID, nil
		}
	}
	return 0, &NotFoundError{Group: group.Name, Name: name}
}

// ResolveOrDefault resolves name, falling back to the given id when the name
// is blank or matches nothing. Used only where the upstream contract defines
// a fallback (family-member relationship and gender).
func ResolveOrDefault(group Group, name string, fallback int64) int64 {
	if name == "" {
		return fallback
	}
	id, err := Resolve(group, name)
	if err != nil {
		return fallback
	}
	return id
}

// Currency is one entry of the backend's configured currency list.
type Currency struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ResolveCurrency matches either the ISO code or the display name,
// case-insensitively, and returns the ISO code.
func ResolveCurrency(options []Currency, query string) (string, error) {
	for _, c := range options {
		if strings.EqualFold(c.Code, query) || strings.EqualFold(c.Name, query) {
			return c.Code, nil
		}
	}
	return "", &NotFoundError{Group: "currencies", Name: query}
}

// SPDX-License-Identifier: MPL-2.0

package repository

import "strings"

// altRepositorySeparator separates the id, layout and url of an override.
const altRepositorySeparator = "::"

// AltRepository is a parsed id::layout::url override.
type AltRepository struct {
	ID     string
	Layout string
	URL    string
}

// ParseAltRepository splits an override of the form id::layout::url.
//
// The string must contain exactly two "::" separators and every segment must
// be non-empty after trimming surrounding whitespace. URLs that themselves
// contain "::" (IPv6 literals) are therefore rejected.
func ParseAltRepository(s string) (AltRepository, error) {
	parts := strings.Split(s, altRepositorySeparator)
	if len(parts) != 3 {
		return AltRepository{}, &InvalidRepositorySyntaxError{Value: s}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return AltRepository{}, &InvalidRepositorySyntaxError{Value: s}
		}
	}
	return AltRepository{ID: parts[0], Layout: parts[1], URL: parts[2]}, nil
}

// String returns the override in id::layout::url form.
func (a AltRepository) String() string {
	return a.ID + altRepositorySeparator + a.Layout + altRepositorySeparator + a.URL
}

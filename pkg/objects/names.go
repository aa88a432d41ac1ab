/*
 * Copyright (c) Cubewise CODE GmbH.
 */

// Package objects holds client-side mirrors of the server-side TM1 resource
// types. Each type knows how to build its own request body.
package objects

import "strings"

// NormalizeName lowers a name and drops spaces, the way the server compares
// object names
func NormalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}

// NamesEqual compares two object names case-and-space-insensitively
func NamesEqual(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}

// DimensionNameFromUniqueName extracts the dimension from a member unique
// name of the form [dimension].[hierarchy].[element]
func DimensionNameFromUniqueName(uniqueName string) string {
	end := strings.Index(uniqueName, "].[")
	if end < 0 || !strings.HasPrefix(uniqueName, "[") {
		return ""
	}
	return uniqueName[1:end]
}

// NameSet is a set of object names with case-and-space-insensitive membership
type NameSet struct {
	original map[string]string
}

// NewNameSet builds a set from the given names
func NewNameSet(names ...string) *NameSet {
	s := &NameSet{original: make(map[string]string, len(names))}
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add inserts a name, keeping the first original spelling
func (s *NameSet) Add(name string) {
	key := NormalizeName(name)
	if _, ok := s.original[key]; !ok {
		s.original[key] = name
	}
}

// Remove deletes a name regardless of case and spacing
func (s *NameSet) Remove(name string) {
	delete(s.original, NormalizeName(name))
}

// Contains reports membership regardless of case and spacing
func (s *NameSet) Contains(name string) bool {
	_, ok := s.original[NormalizeName(name)]
	return ok
}

// Len returns the number of names in the set
func (s *NameSet) Len() int {
	return len(s.original)
}

// Values returns the original spellings
func (s *NameSet) Values() []string {
	values := make([]string, 0, len(s.original))
	for _, name := range s.original {
		values = append(values, name)
	}
	return values
}

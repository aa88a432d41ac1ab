/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package formatter

import "strings"

// SubContext is implemented by every object formatter context. FullHeader
// exposes the header row the table template renders.
type SubContext interface {
	FullHeader() interface{}
}

// SubHeaderContext maps template placeholders to column captions
type SubHeaderContext map[string]string

// Label derives a column caption from a template placeholder name: the last
// path segment with dashes and underscores turned into spaces
func (c SubHeaderContext) Label(name string) string {
	parts := strings.Split(name, ".")
	return strings.NewReplacer("-", " ", "_", " ").Replace(parts[len(parts)-1])
}

// HeaderContext carries the header row shared by the object formatters
type HeaderContext struct {
	Header interface{}
}

// FullHeader returns the header row
func (c *HeaderContext) FullHeader() interface{} {
	return c.Header
}

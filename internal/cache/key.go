package cache

import (
	"fmt"
	"sort"
	"strings"
)

// Key identifies one cached read: a resource name plus its parameters in
// canonical order, e.g. "services?limit=12&page=1".
type Key string

// NewKey builds the canonical key of resource with params. Parameter order
// does not matter; nil or empty params yield the bare resource name.
func NewKey(resource string, params map[string]any) Key {
	if len(params) == 0 {
		return Key(resource)
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(resource)
	for i, name := range names {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		fmt.Fprintf(&b, "%s=%v", name, params[name])
	}

	return Key(b.String())
}

// Resource returns the resource part of k.
func (k Key) Resource() string {
	resource, _, _ := strings.Cut(string(k), "?")
	return resource
}

func (k Key) String() string {
	return string(k)
}

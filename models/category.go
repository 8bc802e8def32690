package models

import "strings"

// Category is the closed set of service categories the backend accepts.
// The list must stay in sync with the backend, otherwise create/edit
// requests are rejected.
type Category string

// Categories in the order the marketing site shows them.
var Categories = []Category{
	"AI Agents",
	"Video & Image",
	"Voice & Music",
	"Technology",
	"Cybersecurity",
	"Healthcare",
	"Finance & Fintech",
	"Education & EdTech",
	"Real Estate",
	"Robotics and Automation",
	"Project Management",
	"Business",
	"Legal and Compliance",
	"Retail and E-Commerce",
	"Entertainment",
	"Aerospace",
	"Agriculture",
	"Manufacturing",
	"Fashion & Beauty",
	"Gaming & eSports",
	"Transportation",
	"Energy & Sustainability",
	"Supply Chain & Logistics",
	"Tourism & Hospitality",
	"Food & Beverage",
}

var categorySet = func() map[Category]struct{} {
	set := make(map[Category]struct{}, len(Categories))
	for _, c := range Categories {
		set[c] = struct{}{}
	}
	return set
}()

// IsValid reports whether c is a member of [Categories]. Matching is exact.
func (c Category) IsValid() bool {
	_, ok := categorySet[c]
	return ok
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// SuggestCategories returns the categories whose label contains term,
// ignoring case, in [Categories] order. An empty term matches everything.
func SuggestCategories(term string) []Category {
	needle := strings.ToLower(strings.TrimSpace(term))

	out := make([]Category, 0, len(Categories))
	for _, c := range Categories {
		if strings.Contains(strings.ToLower(string(c)), needle) {
			out = append(out, c)
		}
	}
	return out
}

// Package navigation maps roles and services to client routes and records
// where the client has navigated.
package navigation

import (
	"net/url"
	"strings"

	"github.com/MKhiriev/loopp-client/models"
)

// Fixed routes.
const (
	RouteLanding          = "/"
	RouteManagerHome      = "/dashboard/project-manager"
	RouteOwnerHome        = "/dashboard/project-owner"
	RouteEngineerHome     = "/dashboard/project-engineer"
	routeServicePrefix    = "/services/"
	routeSearchPathPrefix = "/services/search/"
)

// PopularSearches are the quick-pick terms offered next to the search box.
var PopularSearches = []string{
	"AI Agent",
	"AI Chatbots",
	"AI for Video",
	"AI for Image",
	"AI for Voice",
}

// HomeFor returns the dashboard route of role. ok is false for a role the
// client does not know; callers must not navigate in that case.
func HomeFor(role models.Role) (route string, ok bool) {
	switch role {
	case models.RoleProjectManager:
		return RouteManagerHome, true
	case models.RoleProjectOwner:
		return RouteOwnerHome, true
	case models.RoleProjectEngineer:
		return RouteEngineerHome, true
	default:
		return "", false
	}
}

// Slugify lower-cases name, trims it and joins its words with "-".
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// ServicePath is the detail route of a service.
func ServicePath(name string) string {
	return routeServicePrefix + Slugify(name)
}

// SearchPath is the results route of a search term.
func SearchPath(term string) string {
	return routeSearchPathPrefix + url.PathEscape(strings.TrimSpace(term))
}

// SearchTerm extracts the term from a route built by [SearchPath].
func SearchTerm(route string) (string, bool) {
	escaped, ok := strings.CutPrefix(route, routeSearchPathPrefix)
	if !ok || escaped == "" {
		return "", false
	}

	term, err := url.PathUnescape(escaped)
	if err != nil {
		return "", false
	}
	return term, true
}

package models

import (
	"io"
	"strconv"
)

// Service is a marketplace service listing.
type Service struct {
	// ID is the backend identifier ("id" or "_id" on the wire).
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description string   `json:"description"`

	// Image is a URL or path of the uploaded cover image.
	Image string `json:"image,omitempty"`

	Verified bool `json:"verified"`
	Pro      bool `json:"pro"`
}

// FileUpload is an image attached to a service create/edit request.
// Reader is consumed once by the transport.
type FileUpload struct {
	Name   string
	Reader io.Reader
}

// ServicePayload carries the fields of the add/edit service forms.
// It is sent as multipart form data.
type ServicePayload struct {
	Name        string   `json:"name" validate:"required"`
	Category    Category `json:"category" validate:"required,category"`
	Description string   `json:"description" validate:"required"`
	Verified    bool     `json:"verified"`
	Pro         bool     `json:"pro"`

	// File is optional on edit; when nil the backend keeps the current image.
	File *FileUpload `json:"-"`
}

// FormFields renders the non-file fields the way the backend expects them:
// booleans as "true"/"false".
func (p ServicePayload) FormFields() map[string]string {
	return map[string]string{
		"name":        p.Name,
		"category":    string(p.Category),
		"description": p.Description,
		"verified":    strconv.FormatBool(p.Verified),
		"pro":         strconv.FormatBool(p.Pro),
	}
}

// ListServicesParams selects one page of the service listing.
// Page is 1-based.
type ListServicesParams struct {
	Page  int
	Limit int
}

// ServicesPage is the body of GET /services/get-services.
// ServicesCount is the total number of services on the server, independent
// of how many are in this page.
type ServicesPage struct {
	Services      []Service `json:"services"`
	ServicesCount int       `json:"servicesCount"`
}

// SearchResponse is the body of the search endpoint.
type SearchResponse struct {
	Results []Service `json:"results"`
}

// ServiceResponse is returned by add and edit.
type ServiceResponse struct {
	Service Service `json:"service"`
	Message string  `json:"message"`
}

// MessageResponse is returned by delete.
type MessageResponse struct {
	Message string `json:"message"`
}

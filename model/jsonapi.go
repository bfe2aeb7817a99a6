// file: model/jsonapi.go

package model

import (
	"encoding/json"
	"errors"
)

// MediaType is the JSON:API content type used on every resource request.
const MediaType = "application/vnd.api+json"

// Document is the top-level JSON:API envelope. T is Resource for single
// resource documents and []Resource for collections.
type Document[T any] struct {
	Data     T               `json:"data"`
	Included []Resource      `json:"included,omitempty"`
	Links    map[string]Link `json:"links,omitempty"`
	Meta     map[string]any  `json:"meta,omitempty"`
}

// Resource is a JSON:API resource object.
type Resource struct {
	Type          string                  `json:"type" validate:"required"`
	ID            string                  `json:"id,omitempty"`
	Attributes    map[string]any          `json:"attributes,omitempty"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
	Links         map[string]Link         `json:"links,omitempty"`
}

// ResourceIdentifier references another resource by type and id.
type ResourceIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type Link struct {
	Href string `json:"href"`
}

// Relationship keeps its linkage raw because it may be null, a single
// identifier or a list of identifiers.
type Relationship struct {
	Data  json.RawMessage `json:"data"`
	Links map[string]Link `json:"links,omitempty"`
}

var ErrNotToOne = errors.New("relationship is not a to-one linkage")

// ToOne builds a to-one relationship pointing at (typ, id).
func ToOne(typ, id string) Relationship {
	data, _ := json.Marshal(ResourceIdentifier{Type: typ, ID: id})
	return Relationship{Data: data}
}

// One returns the to-one linkage, or nil when the relationship is empty.
func (r Relationship) One() (*ResourceIdentifier, error) {
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return nil, nil
	}
	var id ResourceIdentifier
	if err := json.Unmarshal(r.Data, &id); err != nil {
		return nil, ErrNotToOne
	}
	return &id, nil
}

// Many returns the to-many linkage. A to-one linkage is returned as a single
// element list.
func (r Relationship) Many() ([]ResourceIdentifier, error) {
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return nil, nil
	}
	var ids []ResourceIdentifier
	if err := json.Unmarshal(r.Data, &ids); err == nil {
		return ids, nil
	}
	one, err := r.One()
	if err != nil || one == nil {
		return nil, err
	}
	return []ResourceIdentifier{*one}, nil
}

// ErrorObject is a JSON:API error object.
type ErrorObject struct {
	Status string `json:"status,omitempty"`
	Title  string `json:"title,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// ErrorDocument is the top-level body of a JSON:API error response.
type ErrorDocument struct {
	Errors []ErrorObject `json:"errors"`
}

// FindIncluded returns the included resource matching id, if any.
func FindIncluded(included []Resource, id ResourceIdentifier) (Resource, bool) {
	for _, res := range included {
		if res.Type == id.Type && res.ID == id.ID {
			return res, true
		}
	}
	return Resource{}, false
}

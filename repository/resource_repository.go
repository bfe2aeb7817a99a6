// file: repository/resource_repository.go

package repository

import (
	"errors"
	"fmt"
	"maps"
	"sync"
	"tailorpro/logger"
	"tailorpro/model"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrResourceNotFound = errors.New("resource not found")

// ResourceRepository stores JSON:API resources of the stand-in server,
// grouped by resource type ("node--measurement", ...).
type ResourceRepository struct {
	mu      sync.RWMutex
	byType  map[string][]*model.Resource
	serials map[string]int
	now     func() time.Time
}

func NewResourceRepository() *ResourceRepository {
	return &ResourceRepository{
		byType:  make(map[string][]*model.Resource),
		serials: make(map[string]int),
		now:     time.Now,
	}
}

// Create stores res under a fresh UUID and fills the server-owned
// attributes: created/changed for nodes, drupal_internal__tid for terms.
func (r *ResourceRepository) Create(res model.Resource) model.Resource {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneResource(res)
	stored.ID = uuid.NewString()
	if stored.Attributes == nil {
		stored.Attributes = make(map[string]any)
	}
	r.serials[res.Type]++
	stamp := r.now().UTC().Format(time.RFC3339)
	switch {
	case isNode(res.Type):
		stored.Attributes["drupal_internal__nid"] = r.serials[res.Type]
		stored.Attributes["created"] = stamp
		stored.Attributes["changed"] = stamp
	case isTerm(res.Type):
		stored.Attributes["drupal_internal__tid"] = r.serials[res.Type]
	}
	r.byType[res.Type] = append(r.byType[res.Type], &stored)

	logger.Log.WithFields(logrus.Fields{
		"type": res.Type,
		"id":   stored.ID,
	}).Info("Resource created")
	return cloneResource(stored)
}

// Get returns a copy of one resource.
func (r *ResourceRepository) Get(typ, id string) (model.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if res := r.find(typ, id); res != nil {
		return cloneResource(*res), nil
	}
	return model.Resource{}, ErrResourceNotFound
}

// List returns every resource of typ whose attributes match filter.
func (r *ResourceRepository) List(typ string, filter map[string]string) []model.Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Resource{}
	for _, res := range r.byType[typ] {
		if matchesAttributes(res, filter) {
			out = append(out, cloneResource(*res))
		}
	}
	return out
}

// Update merges attributes and relationships into an existing resource.
func (r *ResourceRepository) Update(typ, id string, attrs map[string]any, rels map[string]model.Relationship) (model.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := r.find(typ, id)
	if res == nil {
		return model.Resource{}, ErrResourceNotFound
	}
	if res.Attributes == nil {
		res.Attributes = make(map[string]any)
	}
	for k, v := range attrs {
		res.Attributes[k] = v
	}
	if len(rels) > 0 && res.Relationships == nil {
		res.Relationships = make(map[string]model.Relationship)
	}
	for k, v := range rels {
		res.Relationships[k] = v
	}
	if isNode(typ) {
		res.Attributes["changed"] = r.now().UTC().Format(time.RFC3339)
	}
	return cloneResource(*res), nil
}

// Delete removes a resource.
func (r *ResourceRepository) Delete(typ, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.byType[typ]
	for i, res := range list {
		if res.ID == id {
			r.byType[typ] = append(list[:i], list[i+1:]...)
			logger.Log.WithFields(logrus.Fields{"type": typ, "id": id}).Info("Resource deleted")
			return nil
		}
	}
	return ErrResourceNotFound
}

func (r *ResourceRepository) find(typ, id string) *model.Resource {
	for _, res := range r.byType[typ] {
		if res.ID == id {
			return res
		}
	}
	return nil
}

func matchesAttributes(res *model.Resource, filter map[string]string) bool {
	for field, want := range filter {
		got, ok := res.Attributes[field]
		if !ok || fmt.Sprint(got) != want {
			return false
		}
	}
	return true
}

func cloneResource(res model.Resource) model.Resource {
	res.Attributes = maps.Clone(res.Attributes)
	res.Relationships = maps.Clone(res.Relationships)
	res.Links = maps.Clone(res.Links)
	return res
}

func isNode(typ string) bool { return len(typ) > 6 && typ[:6] == "node--" }

func isTerm(typ string) bool { return len(typ) > 15 && typ[:15] == "taxonomy_term--" }

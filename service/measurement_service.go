// file: service/measurement_service.go

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"tailorpro/logger"
	"tailorpro/model"
	"time"

	"github.com/google/uuid"
)

const (
	measurementPath     = "/jsonapi/node/measurement"
	measurementTypePath = "/jsonapi/taxonomy_term/measurement_type"
	measurementTypesKey = "tailor:measurement_types"
	defaultTypeCacheTTL = 10 * time.Minute
)

// MeasurementService reads and writes measurement nodes and the
// measurement_type vocabulary through the JSON:API.
type MeasurementService struct {
	api      ISender
	cache    ICacheClient
	cacheTTL time.Duration
}

// NewMeasurementService creates the service. cache may be nil, in which case
// measurement types are always fetched from the server.
func NewMeasurementService(api ISender, cache ICacheClient, cacheTTL time.Duration) *MeasurementService {
	if cacheTTL <= 0 {
		cacheTTL = defaultTypeCacheTTL
	}
	return &MeasurementService{api: api, cache: cache, cacheTTL: cacheTTL}
}

// ListMeasurementTypes lists the garment vocabulary using a cache-aside
// strategy when a cache is configured.
func (s *MeasurementService) ListMeasurementTypes(ctx context.Context) ([]model.MeasurementType, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, measurementTypesKey).Result()
		if err == nil {
			var types []model.MeasurementType
			if err := json.Unmarshal([]byte(cached), &types); err == nil {
				return types, nil
			}
		}
	}

	var doc model.Document[[]model.Resource]
	if err := call(ctx, s.api, get(measurementTypePath), &doc); err != nil {
		return nil, fmt.Errorf("fetch measurement types: %w", err)
	}
	types := make([]model.MeasurementType, 0, len(doc.Data))
	for _, res := range doc.Data {
		types = append(types, transformMeasurementType(res))
	}

	if s.cache != nil {
		if data, err := json.Marshal(types); err == nil {
			if err := s.cache.Set(ctx, measurementTypesKey, data, s.cacheTTL).Err(); err != nil {
				logger.Log.WithError(err).Warn("Failed to cache measurement types")
			}
		}
	}
	return types, nil
}

// InvalidateMeasurementTypes drops the cached vocabulary.
func (s *MeasurementService) InvalidateMeasurementTypes(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, measurementTypesKey).Err()
}

// ListMeasurements lists every measurement with its garment type resolved.
func (s *MeasurementService) ListMeasurements(ctx context.Context) ([]model.Measurement, error) {
	req := get(measurementPath)
	req.Query = url.Values{"include": {model.MeasurementTypeRelationship}}

	var doc model.Document[[]model.Resource]
	if err := call(ctx, s.api, req, &doc); err != nil {
		return nil, fmt.Errorf("fetch measurements: %w", err)
	}
	out := make([]model.Measurement, 0, len(doc.Data))
	for _, res := range doc.Data {
		out = append(out, transformMeasurement(res, doc.Included))
	}
	return out, nil
}

// GetMeasurement fetches one measurement by UUID.
func (s *MeasurementService) GetMeasurement(ctx context.Context, id string) (*model.Measurement, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, ErrInvalidID
	}
	req := get(measurementPath + "/" + id)
	req.Query = url.Values{"include": {model.MeasurementTypeRelationship}}

	var doc model.Document[model.Resource]
	if err := call(ctx, s.api, req, &doc); err != nil {
		return nil, fmt.Errorf("fetch measurement: %w", err)
	}
	m := transformMeasurement(doc.Data, doc.Included)
	return &m, nil
}

// CreateMeasurement creates a measurement node.
func (s *MeasurementService) CreateMeasurement(ctx context.Context, data model.MeasurementFormData) (*model.Measurement, error) {
	if err := validateStruct(data); err != nil {
		return nil, err
	}
	attrs, err := measurementAttributes(data.Title, data.Measurements)
	if err != nil {
		return nil, err
	}

	doc := model.Document[model.Resource]{Data: model.Resource{
		Type:       model.MeasurementResourceType,
		Attributes: attrs,
		Relationships: map[string]model.Relationship{
			model.MeasurementTypeRelationship: model.ToOne(model.MeasurementTypeResourceType, data.MeasurementTypeID),
		},
	}}
	req, err := jsonAPIRequest(http.MethodPost, measurementPath, doc)
	if err != nil {
		return nil, err
	}

	var created model.Document[model.Resource]
	if err := call(ctx, s.api, req, &created); err != nil {
		return nil, fmt.Errorf("create measurement: %w", err)
	}
	m := transformMeasurement(created.Data, created.Included)
	return &m, nil
}

// UpdateMeasurement applies a partial update; only the given title,
// measurements and garment type are sent.
func (s *MeasurementService) UpdateMeasurement(ctx context.Context, id string, patch model.MeasurementPatch) (*model.Measurement, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, ErrInvalidID
	}
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	attrs, err := measurementAttributes(patch.Title, patch.Measurements)
	if err != nil {
		return nil, err
	}

	res := model.Resource{
		Type:       model.MeasurementResourceType,
		ID:         id,
		Attributes: attrs,
	}
	if patch.MeasurementTypeID != "" {
		res.Relationships = map[string]model.Relationship{
			model.MeasurementTypeRelationship: model.ToOne(model.MeasurementTypeResourceType, patch.MeasurementTypeID),
		}
	}
	req, err := jsonAPIRequest(http.MethodPatch, measurementPath+"/"+id, model.Document[model.Resource]{Data: res})
	if err != nil {
		return nil, err
	}

	var updated model.Document[model.Resource]
	if err := call(ctx, s.api, req, &updated); err != nil {
		return nil, fmt.Errorf("update measurement: %w", err)
	}
	m := transformMeasurement(updated.Data, updated.Included)
	return &m, nil
}

// DeleteMeasurement deletes a measurement node.
func (s *MeasurementService) DeleteMeasurement(ctx context.Context, id string) error {
	if err := uuid.Validate(id); err != nil {
		return ErrInvalidID
	}
	req := &Request{Method: http.MethodDelete, Path: measurementPath + "/" + id}
	if err := call(ctx, s.api, req, nil); err != nil {
		return fmt.Errorf("delete measurement: %w", err)
	}
	return nil
}

// measurementAttributes builds the node attributes: the title when set and
// one field_<key> attribute per measurement.
func measurementAttributes(title string, measurements map[string]float64) (map[string]any, error) {
	attrs := make(map[string]any, len(measurements)+1)
	if title != "" {
		attrs["title"] = title
	}
	keys := make([]string, 0, len(measurements))
	for key := range measurements {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !model.IsMeasurementField(key) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMeasurementField, key)
		}
		attrs[model.FieldPrefix+key] = measurements[key]
	}
	return attrs, nil
}

func transformMeasurementType(res model.Resource) model.MeasurementType {
	mt := model.MeasurementType{
		ID:   res.ID,
		Name: attributeString(res, "name"),
	}
	if desc, ok := res.Attributes["description"].(map[string]any); ok {
		if processed, _ := desc["processed"].(string); processed != "" {
			mt.Description = processed
		} else {
			mt.Description, _ = desc["value"].(string)
		}
	}
	if tid, ok := numericValue(res.Attributes["drupal_internal__tid"]); ok {
		mt.TID = int(tid)
	}
	return mt
}

func transformMeasurement(res model.Resource, included []model.Resource) model.Measurement {
	m := model.Measurement{
		ID:           res.ID,
		Title:        attributeString(res, "title"),
		Measurements: make(map[string]float64),
		Created:      attributeString(res, "created"),
		Changed:      attributeString(res, "changed"),
	}
	for key, value := range res.Attributes {
		if !strings.HasPrefix(key, model.FieldPrefix) || value == nil {
			continue
		}
		if n, ok := numericValue(value); ok {
			m.Measurements[strings.TrimPrefix(key, model.FieldPrefix)] = n
		}
	}

	if rel, ok := res.Relationships[model.MeasurementTypeRelationship]; ok {
		if ref, err := rel.One(); err == nil && ref != nil {
			m.MeasurementType.ID = ref.ID
			if term, found := model.FindIncluded(included, *ref); found {
				m.MeasurementType = transformMeasurementType(term)
			}
		}
	}
	return m
}

// numericValue accepts JSON numbers and the decimal strings Drupal uses for
// decimal fields.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

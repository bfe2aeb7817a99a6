package handler

import (
	"net/http"
	"strings"
	"tailorpro/common"
	"tailorpro/logger"
	"tailorpro/model"
	"tailorpro/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const ownerRelationship = "uid"

// MeasurementHandler serves node--measurement resources and the
// measurement_type vocabulary. Non-administrators only see their own nodes.
type MeasurementHandler struct {
	resources *repository.ResourceRepository
}

func NewMeasurementHandler(resources *repository.ResourceRepository) *MeasurementHandler {
	return &MeasurementHandler{resources: resources}
}

// ListTypes godoc
// @Summary      List measurement types
// @Tags         taxonomy_term
// @Produce      json
// @Param        filter[name]  query  string  false  "Term name"
// @Success      200  {object}  model.Document[[]model.Resource]
// @Failure      401  {object}  model.ErrorDocument
// @Security     BearerAuth
// @Router       /jsonapi/taxonomy_term/measurement_type [get]
func (h *MeasurementHandler) ListTypes(w http.ResponseWriter, r *http.Request) *common.AppError {
	terms := h.resources.List(model.MeasurementTypeResourceType, filterParams(r))
	writeDocument(w, http.StatusOK, model.Document[[]model.Resource]{Data: terms})
	return nil
}

// CreateType godoc
// @Summary      Create a measurement type
// @Tags         taxonomy_term
// @Accept       json
// @Produce      json
// @Param        document  body  model.Document[model.Resource]  true  "taxonomy_term--measurement_type resource"
// @Success      201  {object}  model.Document[model.Resource]
// @Failure      403  {object}  model.ErrorDocument
// @Security     BearerAuth
// @Router       /jsonapi/taxonomy_term/measurement_type [post]
func (h *MeasurementHandler) CreateType(w http.ResponseWriter, r *http.Request) *common.AppError {
	var doc model.Document[model.Resource]
	if appErr := common.ValidateAndDecode(r, &doc); appErr != nil {
		return appErr
	}
	if doc.Data.Type != model.MeasurementTypeResourceType {
		return common.NewAppError(http.StatusConflict, "Resource type does not match the endpoint.", nil)
	}
	name, _ := doc.Data.Attributes["name"].(string)
	if name == "" {
		return common.NewAppError(http.StatusUnprocessableEntity, "name: This value should not be null.", nil)
	}

	term := h.resources.Create(model.Resource{Type: model.MeasurementTypeResourceType, Attributes: doc.Data.Attributes})
	writeDocument(w, http.StatusCreated, model.Document[model.Resource]{Data: term})
	return nil
}

// ListMeasurements godoc
// @Summary      List measurements
// @Tags         node
// @Produce      json
// @Param        include  query  string  false  "field_measurement_type"
// @Success      200  {object}  model.Document[[]model.Resource]
// @Failure      401  {object}  model.ErrorDocument
// @Security     BearerAuth
// @Router       /jsonapi/node/measurement [get]
func (h *MeasurementHandler) ListMeasurements(w http.ResponseWriter, r *http.Request) *common.AppError {
	nodes := h.resources.List(model.MeasurementResourceType, filterParams(r))
	visible := make([]model.Resource, 0, len(nodes))
	for _, node := range nodes {
		if canAccess(r, node) {
			visible = append(visible, node)
		}
	}
	writeDocument(w, http.StatusOK, model.Document[[]model.Resource]{
		Data:     visible,
		Included: h.included(r, visible...),
	})
	return nil
}

// GetMeasurement godoc
// @Summary      Get a measurement
// @Tags         node
// @Produce      json
// @Param        id       path   string  true   "Measurement UUID"
// @Param        include  query  string  false  "field_measurement_type"
// @Success      200  {object}  model.Document[model.Resource]
// @Failure      404  {object}  model.ErrorDocument
// @Security     BearerAuth
// @Router       /jsonapi/node/measurement/{id} [get]
func (h *MeasurementHandler) GetMeasurement(w http.ResponseWriter, r *http.Request) *common.AppError {
	node, appErr := h.findMeasurement(r)
	if appErr != nil {
		return appErr
	}
	writeDocument(w, http.StatusOK, model.Document[model.Resource]{
		Data:     node,
		Included: h.included(r, node),
	})
	return nil
}

// CreateMeasurement godoc
// @Summary      Create a measurement
// @Tags         node
// @Accept       json
// @Produce      json
// @Param        document  body  model.Document[model.Resource]  true  "node--measurement resource"
// @Success      201  {object}  model.Document[model.Resource]
// @Failure      422  {object}  model.ErrorDocument
// @Security     BearerAuth
// @Router       /jsonapi/node/measurement [post]
func (h *MeasurementHandler) CreateMeasurement(w http.ResponseWriter, r *http.Request) *common.AppError {
	var doc model.Document[model.Resource]
	if appErr := common.ValidateAndDecode(r, &doc); appErr != nil {
		return appErr
	}
	if doc.Data.Type != model.MeasurementResourceType {
		return common.NewAppError(http.StatusConflict, "Resource type does not match the endpoint.", nil)
	}
	if title, _ := doc.Data.Attributes["title"].(string); title == "" {
		return common.NewAppError(http.StatusUnprocessableEntity, "title: This value should not be null.", nil)
	}
	if appErr := h.checkRelationships(doc.Data.Relationships); appErr != nil {
		return appErr
	}

	userID, _ := r.Context().Value(UserIDKey).(string)
	rels := make(map[string]model.Relationship, len(doc.Data.Relationships)+1)
	for k, v := range doc.Data.Relationships {
		rels[k] = v
	}
	rels[ownerRelationship] = model.ToOne(model.UserResourceType, userID)

	node := h.resources.Create(model.Resource{
		Type:          model.MeasurementResourceType,
		Attributes:    doc.Data.Attributes,
		Relationships: rels,
	})
	logger.Log.WithFields(logrus.Fields{"id": node.ID, "uid": userID}).Info("Measurement created")

	writeDocument(w, http.StatusCreated, model.Document[model.Resource]{
		Data:     node,
		Included: h.included(r, node),
	})
	return nil
}

// UpdateMeasurement godoc
// @Summary      Update a measurement
// @Description  Only the attributes and relationships present in the document change.
// @Tags         node
// @Accept       json
// @Produce      json
// @Param        id        path  string                          true  "Measurement UUID"
// @Param        document  body  model.Document[model.Resource]  true  "Partial node--measurement resource"
// @Success      200  {object}  model.Document[model.Resource]
// @Failure      404  {object}  model.ErrorDocument
// @Security     BearerAuth
// @Router       /jsonapi/node/measurement/{id} [patch]
func (h *MeasurementHandler) UpdateMeasurement(w http.ResponseWriter, r *http.Request) *common.AppError {
	node, appErr := h.findMeasurement(r)
	if appErr != nil {
		return appErr
	}
	var doc model.Document[model.Resource]
	if appErr := common.ValidateAndDecode(r, &doc); appErr != nil {
		return appErr
	}
	if doc.Data.Type != model.MeasurementResourceType || (doc.Data.ID != "" && doc.Data.ID != node.ID) {
		return common.NewAppError(http.StatusConflict, "Resource type or id does not match the endpoint.", nil)
	}
	if _, ok := doc.Data.Relationships[ownerRelationship]; ok {
		return common.NewAppError(http.StatusUnprocessableEntity, "uid: The author cannot be changed.", nil)
	}
	if appErr := h.checkRelationships(doc.Data.Relationships); appErr != nil {
		return appErr
	}

	updated, err := h.resources.Update(model.MeasurementResourceType, node.ID, doc.Data.Attributes, doc.Data.Relationships)
	if err != nil {
		return common.NewAppError(http.StatusNotFound, "The requested resource could not be found.", nil)
	}
	writeDocument(w, http.StatusOK, model.Document[model.Resource]{
		Data:     updated,
		Included: h.included(r, updated),
	})
	return nil
}

// DeleteMeasurement godoc
// @Summary      Delete a measurement
// @Tags         node
// @Param        id  path  string  true  "Measurement UUID"
// @Success      204
// @Failure      404  {object}  model.ErrorDocument
// @Security     BearerAuth
// @Router       /jsonapi/node/measurement/{id} [delete]
func (h *MeasurementHandler) DeleteMeasurement(w http.ResponseWriter, r *http.Request) *common.AppError {
	node, appErr := h.findMeasurement(r)
	if appErr != nil {
		return appErr
	}
	if err := h.resources.Delete(model.MeasurementResourceType, node.ID); err != nil {
		return common.NewAppError(http.StatusNotFound, "The requested resource could not be found.", nil)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *MeasurementHandler) findMeasurement(r *http.Request) (model.Resource, *common.AppError) {
	id := r.PathValue("id")
	if uuid.Validate(id) != nil {
		return model.Resource{}, common.NewAppError(http.StatusNotFound, "The requested resource could not be found.", nil)
	}
	node, err := h.resources.Get(model.MeasurementResourceType, id)
	if err != nil {
		return model.Resource{}, common.NewAppError(http.StatusNotFound, "The requested resource could not be found.", nil)
	}
	if !canAccess(r, node) {
		return model.Resource{}, common.NewAppError(http.StatusForbidden, "The current user is not allowed to access this measurement.", nil)
	}
	return node, nil
}

// checkRelationships verifies that a measurement type linkage points at an
// existing term.
func (h *MeasurementHandler) checkRelationships(rels map[string]model.Relationship) *common.AppError {
	rel, ok := rels[model.MeasurementTypeRelationship]
	if !ok {
		return nil
	}
	ref, err := rel.One()
	if err != nil || ref == nil || ref.Type != model.MeasurementTypeResourceType {
		return common.NewAppError(http.StatusUnprocessableEntity, "field_measurement_type: Invalid linkage.", nil)
	}
	if _, err := h.resources.Get(ref.Type, ref.ID); err != nil {
		return common.NewAppError(http.StatusUnprocessableEntity, "field_measurement_type: The referenced term does not exist.", nil)
	}
	return nil
}

// included resolves the to-one relationships named in ?include.
func (h *MeasurementHandler) included(r *http.Request, nodes ...model.Resource) []model.Resource {
	names := includes(r)
	if len(names) == 0 {
		return nil
	}
	var out []model.Resource
	seen := make(map[string]bool)
	for _, node := range nodes {
		for _, name := range names {
			ref, err := node.Relationships[strings.TrimSpace(name)].One()
			if err != nil || ref == nil || seen[ref.Type+ref.ID] || ref.Type == model.UserResourceType {
				continue
			}
			if res, err := h.resources.Get(ref.Type, ref.ID); err == nil {
				seen[ref.Type+ref.ID] = true
				out = append(out, res)
			}
		}
	}
	return out
}

func canAccess(r *http.Request, node model.Resource) bool {
	if isAdmin(r.Context()) {
		return true
	}
	userID, _ := r.Context().Value(UserIDKey).(string)
	owner, err := node.Relationships[ownerRelationship].One()
	return err == nil && owner != nil && owner.ID == userID
}

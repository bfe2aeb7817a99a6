package handler

import (
	"errors"
	"net/http"
	"tailorpro/common"
	"tailorpro/logger"
	"tailorpro/model"
	"tailorpro/repository"
	"time"
)

type UserHandler struct {
	repo *repository.UserRepository
}

func NewUserHandler(repo *repository.UserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

// ListUsers godoc
// @Summary      List users
// @Description  Supports filter[name], filter[mail] and filter[drupal_internal__uid].
// @Tags         user
// @Produce      json
// @Param        filter[name]  query  string  false  "User name"
// @Success      200  {object}  model.Document[[]model.Resource]
// @Failure      401  {object}  model.ErrorDocument
// @Security     BearerAuth
// @Router       /jsonapi/user/user [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) *common.AppError {
	accounts := h.repo.List(filterParams(r))
	data := make([]model.Resource, 0, len(accounts))
	for _, account := range accounts {
		data = append(data, userResource(account))
	}
	writeDocument(w, http.StatusOK, model.Document[[]model.Resource]{Data: data})
	return nil
}

// Register godoc
// @Summary      Register a user
// @Description  Anonymous registration with name, mail and pass attributes.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        document  body  model.Document[model.Resource]  true  "user--user resource"
// @Success      201  {object}  model.Document[model.Resource]
// @Failure      422  {object}  model.ErrorDocument
// @Router       /jsonapi/user/user [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var doc model.Document[model.Resource]
	if appErr := common.ValidateAndDecode(r, &doc); appErr != nil {
		return appErr
	}
	if doc.Data.Type != model.UserResourceType {
		return common.NewAppError(http.StatusConflict, "Resource type does not match the endpoint.", nil)
	}

	var req struct {
		Name     string `validate:"required,min=3,max=60"`
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}
	req.Name, _ = doc.Data.Attributes["name"].(string)
	req.Email, _ = doc.Data.Attributes["mail"].(string)
	req.Password, _ = doc.Data.Attributes["pass"].(string)
	if appErr := common.Validate(req); appErr != nil {
		return appErr
	}

	account, err := h.repo.CreateUser(req.Name, req.Email, req.Password, nil)
	if errors.Is(err, repository.ErrUserExists) {
		return common.NewAppError(http.StatusUnprocessableEntity, "name: The username "+req.Name+" is already taken.", nil)
	}
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create user", err)
	}
	logger.Log.WithField("uid", account.UID).Info("User registered")

	writeDocument(w, http.StatusCreated, model.Document[model.Resource]{Data: userResource(account)})
	return nil
}

func userResource(a *model.Account) model.Resource {
	return model.Resource{
		Type: model.UserResourceType,
		ID:   a.ID,
		Attributes: map[string]any{
			"drupal_internal__uid": a.UID,
			"name":                 a.Name,
			"display_name":         a.Name,
			"mail":                 a.Email,
			"roles":                a.Roles,
			"status":               a.Status,
			"created":              a.CreatedAt.Format(time.RFC3339),
		},
	}
}

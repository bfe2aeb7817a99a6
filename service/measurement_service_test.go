package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"tailorpro/model"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(key)
	return redis.NewStringResult(args.String(0), args.Error(1))
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(key, value, expiration)
	return redis.NewStatusResult("OK", args.Error(0))
}

func (m *mockCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(keys)
	return redis.NewIntResult(int64(len(keys)), args.Error(0))
}

const (
	qameezTypeID   = "5f1d3c4b-2a19-4e8f-9c6d-7b0a1e2f3d4c"
	measurementID  = "a3b2c1d0-e9f8-4a7b-8c6d-5e4f3a2b1c0d"
	measurementDoc = `{
		"data": {
			"type": "node--measurement",
			"id": "a3b2c1d0-e9f8-4a7b-8c6d-5e4f3a2b1c0d",
			"attributes": {
				"title": "Eid qameez",
				"created": "2024-03-01T09:00:00+00:00",
				"changed": "2024-03-02T09:00:00+00:00",
				"field_qameez_length": 40.5,
				"field_qameez_chest": "38.00",
				"field_qameez_hip": null,
				"drupal_internal__nid": 7
			},
			"relationships": {
				"field_measurement_type": {"data": {"type": "taxonomy_term--measurement_type", "id": "5f1d3c4b-2a19-4e8f-9c6d-7b0a1e2f3d4c"}}
			}
		},
		"included": [{
			"type": "taxonomy_term--measurement_type",
			"id": "5f1d3c4b-2a19-4e8f-9c6d-7b0a1e2f3d4c",
			"attributes": {"name": "Shalwar Qameez", "drupal_internal__tid": 1, "description": {"value": "<p>Qameez</p>", "processed": "Qameez"}}
		}]
	}`
	typesDoc = `{"data":[
		{"type":"taxonomy_term--measurement_type","id":"5f1d3c4b-2a19-4e8f-9c6d-7b0a1e2f3d4c","attributes":{"name":"qameez","drupal_internal__tid":1,"description":{"value":"Qameez"}}},
		{"type":"taxonomy_term--measurement_type","id":"6a2e4d5c-3b2a-4f9e-8d7c-6b5a4e3d2c1b","attributes":{"name":"shalwar","drupal_internal__tid":2,"description":null}}
	]}`
)

func TestMeasurementService_ListMeasurementTypes(t *testing.T) {
	ctx := context.Background()

	t.Run("without cache", func(t *testing.T) {
		api := new(mockSender)
		api.On("Send", requestTo(http.MethodGet, measurementTypePath)).Return(jsonResponse(http.StatusOK, typesDoc), nil).Twice()
		svc := NewMeasurementService(api, nil, 0)

		for i := 0; i < 2; i++ {
			types, err := svc.ListMeasurementTypes(ctx)
			require.NoError(t, err)
			require.Len(t, types, 2)
			assert.Equal(t, model.MeasurementType{ID: qameezTypeID, Name: "qameez", Description: "Qameez", TID: 1}, types[0])
			assert.Equal(t, "", types[1].Description)
		}
		api.AssertExpectations(t)
		require.NoError(t, svc.InvalidateMeasurementTypes(ctx))
	})

	t.Run("cache miss fills the cache", func(t *testing.T) {
		api := new(mockSender)
		cache := new(mockCache)
		api.On("Send", requestTo(http.MethodGet, measurementTypePath)).Return(jsonResponse(http.StatusOK, typesDoc), nil).Once()
		cache.On("Get", measurementTypesKey).Return("", redis.Nil)
		cache.On("Set", measurementTypesKey, mock.Anything, time.Minute).Return(nil)
		svc := NewMeasurementService(api, cache, time.Minute)

		types, err := svc.ListMeasurementTypes(ctx)

		require.NoError(t, err)
		assert.Len(t, types, 2)
		cache.AssertExpectations(t)
		api.AssertExpectations(t)
	})

	t.Run("cache hit skips the server", func(t *testing.T) {
		api := new(mockSender)
		cache := new(mockCache)
		cached, _ := json.Marshal([]model.MeasurementType{{ID: qameezTypeID, Name: "qameez"}})
		cache.On("Get", measurementTypesKey).Return(string(cached), nil)
		svc := NewMeasurementService(api, cache, time.Minute)

		types, err := svc.ListMeasurementTypes(ctx)

		require.NoError(t, err)
		assert.Equal(t, []model.MeasurementType{{ID: qameezTypeID, Name: "qameez"}}, types)
		api.AssertNotCalled(t, "Send", mock.Anything)
	})

	t.Run("cache write failure is not fatal", func(t *testing.T) {
		api := new(mockSender)
		cache := new(mockCache)
		api.On("Send", mock.Anything).Return(jsonResponse(http.StatusOK, typesDoc), nil)
		cache.On("Get", measurementTypesKey).Return("", errors.New("connection refused"))
		cache.On("Set", measurementTypesKey, mock.Anything, defaultTypeCacheTTL).Return(errors.New("connection refused"))
		svc := NewMeasurementService(api, cache, 0)

		types, err := svc.ListMeasurementTypes(ctx)

		require.NoError(t, err)
		assert.Len(t, types, 2)
	})

	t.Run("invalidate", func(t *testing.T) {
		cache := new(mockCache)
		cache.On("Del", []string{measurementTypesKey}).Return(nil)
		svc := NewMeasurementService(new(mockSender), cache, 0)

		require.NoError(t, svc.InvalidateMeasurementTypes(ctx))
		cache.AssertExpectations(t)
	})
}

func TestMeasurementService_GetMeasurement(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the included type", func(t *testing.T) {
		api := new(mockSender)
		api.On("Send", mock.MatchedBy(func(r *Request) bool {
			return r.Path == measurementPath+"/"+measurementID && r.Query.Get("include") == model.MeasurementTypeRelationship
		})).Return(jsonResponse(http.StatusOK, measurementDoc), nil)
		svc := NewMeasurementService(api, nil, 0)

		m, err := svc.GetMeasurement(ctx, measurementID)

		require.NoError(t, err)
		assert.Equal(t, "Eid qameez", m.Title)
		assert.Equal(t, map[string]float64{"qameez_length": 40.5, "qameez_chest": 38}, m.Measurements)
		assert.Equal(t, model.MeasurementType{ID: qameezTypeID, Name: "Shalwar Qameez", Description: "Qameez", TID: 1}, m.MeasurementType)
		assert.Equal(t, "2024-03-02T09:00:00+00:00", m.Changed)
	})

	t.Run("invalid id", func(t *testing.T) {
		api := new(mockSender)
		svc := NewMeasurementService(api, nil, 0)

		_, err := svc.GetMeasurement(ctx, "../user/user")

		assert.ErrorIs(t, err, ErrInvalidID)
		api.AssertNotCalled(t, "Send", mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		api := new(mockSender)
		api.On("Send", mock.Anything).Return(jsonResponse(http.StatusNotFound, `{"errors":[{"status":"404","title":"Not Found"}]}`), nil)
		svc := NewMeasurementService(api, nil, 0)

		_, err := svc.GetMeasurement(ctx, measurementID)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})

	t.Run("session expired propagates", func(t *testing.T) {
		api := new(mockSender)
		api.On("Send", mock.Anything).Return(jsonResponse(http.StatusUnauthorized, ""),
			errors.Join(ErrSessionExpired, &APIError{StatusCode: http.StatusUnauthorized}))
		svc := NewMeasurementService(api, nil, 0)

		_, err := svc.GetMeasurement(ctx, measurementID)

		assert.ErrorIs(t, err, ErrSessionExpired)
	})
}

func TestMeasurementService_ListMeasurements(t *testing.T) {
	api := new(mockSender)
	list := `{"data":[{"type":"node--measurement","id":"` + measurementID + `","attributes":{"title":"No type","field_shirt_cuff":17}}]}`
	api.On("Send", requestTo(http.MethodGet, measurementPath)).Return(jsonResponse(http.StatusOK, list), nil)
	svc := NewMeasurementService(api, nil, 0)

	out, err := svc.ListMeasurements(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, map[string]float64{"shirt_cuff": 17}, out[0].Measurements)
	assert.Empty(t, out[0].MeasurementType.ID)
}

func TestMeasurementService_CreateMeasurement(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := new(mockSender)
		var sent model.Document[model.Resource]
		api.On("Send", mock.MatchedBy(func(r *Request) bool {
			return r.Method == http.MethodPost && r.Path == measurementPath && json.Unmarshal(r.Body, &sent) == nil
		})).Return(jsonResponse(http.StatusCreated, measurementDoc), nil)
		svc := NewMeasurementService(api, nil, 0)

		m, err := svc.CreateMeasurement(ctx, model.MeasurementFormData{
			Title:             "Eid qameez",
			MeasurementTypeID: qameezTypeID,
			Measurements:      map[string]float64{"qameez_length": 40.5, "qameez_chest": 38},
		})

		require.NoError(t, err)
		assert.Equal(t, measurementID, m.ID)
		assert.Equal(t, model.MeasurementResourceType, sent.Data.Type)
		assert.Equal(t, map[string]any{"title": "Eid qameez", "field_qameez_length": 40.5, "field_qameez_chest": float64(38)}, sent.Data.Attributes)
		ref, err := sent.Data.Relationships[model.MeasurementTypeRelationship].One()
		require.NoError(t, err)
		assert.Equal(t, &model.ResourceIdentifier{Type: model.MeasurementTypeResourceType, ID: qameezTypeID}, ref)
	})

	t.Run("unknown field", func(t *testing.T) {
		api := new(mockSender)
		svc := NewMeasurementService(api, nil, 0)

		_, err := svc.CreateMeasurement(ctx, model.MeasurementFormData{
			Title:             "Odd",
			MeasurementTypeID: qameezTypeID,
			Measurements:      map[string]float64{"wingspan": 1},
		})

		assert.ErrorIs(t, err, ErrUnknownMeasurementField)
		api.AssertNotCalled(t, "Send", mock.Anything)
	})

	t.Run("missing type", func(t *testing.T) {
		svc := NewMeasurementService(new(mockSender), nil, 0)

		_, err := svc.CreateMeasurement(ctx, model.MeasurementFormData{Title: "Odd"})

		var validationErr *ValidationError
		assert.True(t, errors.As(err, &validationErr))
	})
}

func TestMeasurementService_UpdateMeasurement(t *testing.T) {
	api := new(mockSender)
	var sent model.Document[model.Resource]
	api.On("Send", mock.MatchedBy(func(r *Request) bool {
		return r.Method == http.MethodPatch && r.Path == measurementPath+"/"+measurementID && json.Unmarshal(r.Body, &sent) == nil
	})).Return(jsonResponse(http.StatusOK, measurementDoc), nil)
	svc := NewMeasurementService(api, nil, 0)

	_, err := svc.UpdateMeasurement(context.Background(), measurementID, model.MeasurementPatch{
		Measurements: map[string]float64{"qameez_chest": 39},
	})

	require.NoError(t, err)
	assert.Equal(t, measurementID, sent.Data.ID)
	assert.Equal(t, map[string]any{"field_qameez_chest": float64(39)}, sent.Data.Attributes)
	assert.Empty(t, sent.Data.Relationships)
}

func TestMeasurementService_DeleteMeasurement(t *testing.T) {
	api := new(mockSender)
	api.On("Send", requestTo(http.MethodDelete, measurementPath+"/"+measurementID)).Return(jsonResponse(http.StatusNoContent, ""), nil)
	svc := NewMeasurementService(api, nil, 0)

	require.NoError(t, svc.DeleteMeasurement(context.Background(), measurementID))
	assert.ErrorIs(t, svc.DeleteMeasurement(context.Background(), "7"), ErrInvalidID)
	api.AssertNumberOfCalls(t, "Send", 1)
}

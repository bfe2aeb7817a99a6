package router

import (
	"net/http"
	"tailorpro/handler"
	"tailorpro/service"

	_ "tailorpro/docs"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Issuer       *service.TokenIssuer
	OAuth        *handler.OAuthHandler
	Users        *handler.UserHandler
	Measurements *handler.MeasurementHandler
}

func NewRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()
	auth := handler.AuthMiddleware(h.Issuer)

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	mux.Handle("POST /oauth/token", handler.ErrorHandlingMiddleware(h.OAuth.Token))

	mux.Handle("POST /jsonapi/user/user", handler.ErrorHandlingMiddleware(h.Users.Register))
	mux.Handle("GET /jsonapi/user/user", auth(handler.ErrorHandlingMiddleware(h.Users.ListUsers)))

	mux.Handle("GET /jsonapi/taxonomy_term/measurement_type", auth(handler.ErrorHandlingMiddleware(h.Measurements.ListTypes)))
	mux.Handle("POST /jsonapi/taxonomy_term/measurement_type", auth(handler.AdminMiddleware(handler.ErrorHandlingMiddleware(h.Measurements.CreateType))))

	mux.Handle("GET /jsonapi/node/measurement", auth(handler.ErrorHandlingMiddleware(h.Measurements.ListMeasurements)))
	mux.Handle("POST /jsonapi/node/measurement", auth(handler.ErrorHandlingMiddleware(h.Measurements.CreateMeasurement)))
	mux.Handle("GET /jsonapi/node/measurement/{id}", auth(handler.ErrorHandlingMiddleware(h.Measurements.GetMeasurement)))
	mux.Handle("PATCH /jsonapi/node/measurement/{id}", auth(handler.ErrorHandlingMiddleware(h.Measurements.UpdateMeasurement)))
	mux.Handle("DELETE /jsonapi/node/measurement/{id}", auth(handler.ErrorHandlingMiddleware(h.Measurements.DeleteMeasurement)))

	return mux
}

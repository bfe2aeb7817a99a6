package app

import (
	"context"
	"fmt"
	"net/http"
	"tailorpro/config"
	"tailorpro/db"
	"tailorpro/logger"
	"tailorpro/repository"
	"tailorpro/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Client bundles the API client and the services built on it.
type Client struct {
	Store        repository.ITokenStore
	API          *service.APIClient
	Auth         *service.AuthService
	Measurements *service.MeasurementService

	closers []func() error
}

// ClientOptions override parts of the wiring; the zero value uses AppConfig.
type ClientOptions struct {
	HTTPClient *http.Client
	Registerer prometheus.Registerer
	// OnSessionExpired runs after the session has been cleared, in addition
	// to the login redirect log entry.
	OnSessionExpired func(ctx context.Context)
}

// NewClient builds the client stack from AppConfig. The token store backend
// is chosen by token_store.driver; the redis driver also enables the
// measurement type cache.
func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	cfg := config.AppConfig
	c := &Client{}

	var cache service.ICacheClient
	switch cfg.TokenStore.Driver {
	case "memory":
		c.Store = repository.NewMemoryTokenStore()
	case "file", "":
		c.Store = repository.NewFileTokenStore(cfg.TokenStore.Path)
	case "redis":
		rdb, err := db.ConnectRedis(ctx)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, rdb.Close)
		c.Store = repository.NewRedisTokenStore(rdb, cfg.TokenStore.Prefix)
		cache = rdb
	case "postgres":
		database, err := db.Connect()
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, database.Close)
		if err := db.Migrate(database); err != nil {
			c.Close()
			return nil, err
		}
		c.Store = repository.NewSQLTokenStore(database, cfg.TokenStore.Profile)
	default:
		return nil, fmt.Errorf("unknown token store driver %q", cfg.TokenStore.Driver)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.API.Timeout}
	}
	loginURL := cfg.API.BaseURL + cfg.API.LoginURL

	oauth := service.NewOAuthClient(cfg.API.BaseURL, cfg.OAuth.ClientID, cfg.OAuth.ClientSecret, httpClient)
	c.API = service.NewAPIClient(cfg.API.BaseURL, c.Store, oauth,
		service.WithHTTPClient(httpClient),
		service.WithMetrics(service.NewMetrics(opts.Registerer)),
		service.WithSessionExpiredHandler(func(ctx context.Context) {
			logger.Log.WithFields(logrus.Fields{
				"redirect": loginURL,
			}).Warn("Session expired, redirecting to login")
			if opts.OnSessionExpired != nil {
				opts.OnSessionExpired(ctx)
			}
		}),
	)
	c.Auth = service.NewAuthService(c.API, oauth, c.Store)
	c.Measurements = service.NewMeasurementService(c.API, cache, cfg.Cache.TTL)

	logger.Log.WithFields(logrus.Fields{
		"base_url":    cfg.API.BaseURL,
		"token_store": cfg.TokenStore.Driver,
	}).Debug("Client initialized")
	return c, nil
}

// Close releases the connections opened for the token store.
func (c *Client) Close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims are the claims carried by access tokens minted by the stand-in server.
type AppClaims struct {
	UserID   string   `json:"uid"`
	ClientID string   `json:"client_id"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

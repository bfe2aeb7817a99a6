// file: model/request.go

package model

// LoginRequest holds the password-grant credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest defines the payload for creating a new user account.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required,min=3,max=60"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// MeasurementFormData is the payload for creating a measurement.
type MeasurementFormData struct {
	Title             string             `json:"title" validate:"required"`
	MeasurementTypeID string             `json:"measurement_type_id" validate:"required,uuid"`
	Measurements      map[string]float64 `json:"measurements"`
}

// MeasurementPatch is a partial update. Empty fields are left untouched.
type MeasurementPatch struct {
	Title             string             `json:"title,omitempty"`
	MeasurementTypeID string             `json:"measurement_type_id,omitempty" validate:"omitempty,uuid"`
	Measurements      map[string]float64 `json:"measurements,omitempty"`
}

// TokenRequest is the form body of POST /oauth/token.
type TokenRequest struct {
	GrantType    string `validate:"required,oneof=password refresh_token"`
	ClientID     string `validate:"required"`
	ClientSecret string
	Username     string `validate:"required_if=GrantType password"`
	Password     string `validate:"required_if=GrantType password"`
	RefreshToken string `validate:"required_if=GrantType refresh_token"`
}

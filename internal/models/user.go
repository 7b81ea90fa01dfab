package models

import (
	"regexp"
	"time"
)

const (
	UsernameMinLen = 3
	UsernameMaxLen = 50
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// User is the stored user record. PasswordHash stays internal and is never
// serialized.
type User struct {
	ID                int       `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	FullName          string    `json:"full_name"`
	Age               *int      `json:"age"`
	Gender            string    `json:"gender"`
	Location          string    `json:"location"`
	MaritalStatus     string    `json:"marital_status"`
	FavoriteCountries string    `json:"favorite_countries"`
	AvatarURL         string    `json:"avatar_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Response strips the user down to its public shape.
func (u *User) Response() UserResponse {
	return UserResponse{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		FullName:          u.FullName,
		Age:               u.Age,
		Gender:            u.Gender,
		Location:          u.Location,
		MaritalStatus:     u.MaritalStatus,
		FavoriteCountries: u.FavoriteCountries,
		AvatarURL:         u.AvatarURL,
	}
}

// UserResponse is the public user shape returned by the API.
type UserResponse struct {
	ID                int    `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	FullName          string `json:"full_name"`
	Age               *int   `json:"age"`
	Gender            string `json:"gender"`
	Location          string `json:"location"`
	MaritalStatus     string `json:"marital_status"`
	FavoriteCountries string `json:"favorite_countries"`
	AvatarURL         string `json:"avatar_url"`
}

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Username          string `json:"username" form:"username"`
	FullName          string `json:"full_name" form:"full_name"`
	Email             string `json:"email" form:"email"`
	Password          string `json:"password" form:"password"`
	Age               *int   `json:"age" form:"age"`
	Gender            string `json:"gender" form:"gender"`
	Location          string `json:"location" form:"location"`
	MaritalStatus     string `json:"marital_status" form:"marital_status"`
	FavoriteCountries string `json:"favorite_countries" form:"favorite_countries"`
}

// Validate checks required fields and formats before the request touches
// persistence.
func (r *RegisterRequest) Validate() error {
	if len(r.Username) < UsernameMinLen || len(r.Username) > UsernameMaxLen {
		return &ValidationError{Field: "username", Message: "must be between 3 and 50 characters"}
	}
	if r.FullName == "" {
		return &ValidationError{Field: "full_name", Message: "is required"}
	}
	if !emailPattern.MatchString(r.Email) {
		return &ValidationError{Field: "email", Message: "invalid email format"}
	}
	if r.Password == "" {
		return &ValidationError{Field: "password", Message: "is required"}
	}
	if r.Age != nil && (*r.Age < 0 || *r.Age > 150) {
		return &ValidationError{Field: "age", Message: "out of range"}
	}
	return nil
}

// LoginRequest carries credentials. The username field may hold either a
// username or an email address, matching the OAuth2 form convention the
// frontend uses.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// UpdateProfileRequest carries a partial profile update. Nil fields are left
// untouched in storage.
type UpdateProfileRequest struct {
	Username          *string `json:"username" form:"username"`
	FullName          *string `json:"full_name" form:"full_name"`
	Email             *string `json:"email" form:"email"`
	Password          *string `json:"password" form:"password"`
	Age               *int    `json:"age" form:"age"`
	Gender            *string `json:"gender" form:"gender"`
	Location          *string `json:"location" form:"location"`
	MaritalStatus     *string `json:"marital_status" form:"marital_status"`
	FavoriteCountries *string `json:"favorite_countries" form:"favorite_countries"`
	AvatarURL         *string `json:"avatar_url" form:"avatar_url"`
}

// Validate checks only the fields that are present.
func (r *UpdateProfileRequest) Validate() error {
	if r.Username != nil && (len(*r.Username) < UsernameMinLen || len(*r.Username) > UsernameMaxLen) {
		return &ValidationError{Field: "username", Message: "must be between 3 and 50 characters"}
	}
	if r.Email != nil && !emailPattern.MatchString(*r.Email) {
		return &ValidationError{Field: "email", Message: "invalid email format"}
	}
	if r.Age != nil && (*r.Age < 0 || *r.Age > 150) {
		return &ValidationError{Field: "age", Message: "out of range"}
	}
	return nil
}

// DemographicsRequest carries the demographic subset of a profile update.
type DemographicsRequest struct {
	Age               *int    `json:"age" form:"age"`
	Gender            *string `json:"gender" form:"gender"`
	Location          *string `json:"location" form:"location"`
	MaritalStatus     *string `json:"marital_status" form:"marital_status"`
	FavoriteCountries *string `json:"favorite_countries" form:"favorite_countries"`
}

// ProfileUpdate widens the demographics into a partial profile update.
func (r *DemographicsRequest) ProfileUpdate() *UpdateProfileRequest {
	return &UpdateProfileRequest{
		Age:               r.Age,
		Gender:            r.Gender,
		Location:          r.Location,
		MaritalStatus:     r.MaritalStatus,
		FavoriteCountries: r.FavoriteCountries,
	}
}

// Demographics is the demographic subset of the public user shape.
type Demographics struct {
	Age               *int   `json:"age"`
	Gender            string `json:"gender"`
	Location          string `json:"location"`
	MaritalStatus     string `json:"marital_status"`
	FavoriteCountries string `json:"favorite_countries"`
}

// Demographics extracts the demographic subset.
func (u *User) Demographics() Demographics {
	return Demographics{
		Age:               u.Age,
		Gender:            u.Gender,
		Location:          u.Location,
		MaritalStatus:     u.MaritalStatus,
		FavoriteCountries: u.FavoriteCountries,
	}
}

// Token is the authentication response: bearer credential plus the public
// shape of the authenticated user.
type Token struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// ValidEmail reports whether s matches the accepted email format.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

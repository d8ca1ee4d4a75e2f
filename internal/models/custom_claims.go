package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims represents the claims carried by our JWT access tokens
type AccessClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

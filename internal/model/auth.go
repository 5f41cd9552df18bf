package model

import "github.com/golang-jwt/jwt/v5"

// StaffClaims are the JWT claims for an authenticated staff account
type StaffClaims struct {
	StaffID string   `json:"staffId"`
	Role    UserRole `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for staff login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	Token   string `json:"token"`
	StaffID string `json:"staffId"`
}

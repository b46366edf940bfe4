package auth

import "errors"

// Token validation errors. The middleware maps these to 401 responses.
var (
	// ErrInvalidToken covers malformed tokens and signature mismatches.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token's lifetime has elapsed.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the nbf claim lies in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")
)

// Package testhelpers provides utilities for testing coopnet components.
package testhelpers

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TestTokenSecret is a signing secret long enough to pass config validation.
const TestTokenSecret = "test-secret-that-is-at-least-32-bytes-long"

// TestTokenIssuer matches the default auth issuer.
const TestTokenIssuer = "coopnet"

// GenerateTestToken signs an HS256 access token for userID with TestTokenSecret.
// The claim layout matches what the auth package issues.
func GenerateTestToken(userID int64, email string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   TestTokenIssuer,
		"sub":   strconv.FormatInt(userID, 10),
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
		"email": email,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestTokenSecret))
	if err != nil {
		panic(err)
	}
	return token
}

// GenerateTestTokenWithBearer returns a token with the "Bearer " prefix for the Authorization header.
func GenerateTestTokenWithBearer(userID int64, email string) string {
	return "Bearer " + GenerateTestToken(userID, email)
}

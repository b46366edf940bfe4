package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandlerRegister(t *testing.T) {
	t.Parallel()

	t.Run("registers a new user", func(t *testing.T) {
		t.Parallel()

		f := newAPIFixture(t)
		rec := f.do(t, http.MethodPost, "/api/1.0/user/reg", "", RegisterRequest{
			Email:    "new@example.com",
			Password: "password123",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		assert.Equal(t, "User registered successfully", env.Message)
	})

	t.Run("rejects a duplicate email with 409", func(t *testing.T) {
		t.Parallel()

		f := newAPIFixture(t)
		f.seedUser(t, "dup@example.com")

		rec := f.do(t, http.MethodPost, "/api/1.0/user/reg", "", RegisterRequest{
			Email:    "dup@example.com",
			Password: "password123",
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "Duplicate E-Mail.", env.Message)
	})

	t.Run("rejects a malformed email with 400", func(t *testing.T) {
		t.Parallel()

		f := newAPIFixture(t)
		rec := f.do(t, http.MethodPost, "/api/1.0/user/reg", "", RegisterRequest{
			Email:    "not-an-email",
			Password: "password123",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, decodeEnvelope(t, rec).Success)
	})

	t.Run("rejects a missing password with 400", func(t *testing.T) {
		t.Parallel()

		f := newAPIFixture(t)
		rec := f.do(t, http.MethodPost, "/api/1.0/user/reg", "", RegisterRequest{
			Email: "new@example.com",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a malformed body with 400", func(t *testing.T) {
		t.Parallel()

		f := newAPIFixture(t)
		rec := f.do(t, http.MethodPost, "/api/1.0/user/reg", "", "not an object")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUserHandlerLogin(t *testing.T) {
	t.Parallel()

	t.Run("returns a token for valid credentials", func(t *testing.T) {
		t.Parallel()

		f := newAPIFixture(t)
		f.seedUser(t, "user@example.com")

		rec := f.do(t, http.MethodPost, "/api/1.0/user/login", "", LoginRequest{
			Email:    "user@example.com",
			Password: "password123",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		assert.Equal(t, "Login successful", env.Message)

		var body TokenResponse
		require.NoError(t, json.Unmarshal(env.Data, &body))
		assert.NotEmpty(t, body.Token)
	})

	t.Run("answers 403 for an unknown email", func(t *testing.T) {
		t.Parallel()

		f := newAPIFixture(t)
		rec := f.do(t, http.MethodPost, "/api/1.0/user/login", "", LoginRequest{
			Email:    "ghost@example.com",
			Password: "password123",
		})

		assert.Equal(t, http.StatusForbidden, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "User not found.", env.Message)
	})

	t.Run("answers 403 for a wrong password", func(t *testing.T) {
		t.Parallel()

		f := newAPIFixture(t)
		f.seedUser(t, "user@example.com")

		rec := f.do(t, http.MethodPost, "/api/1.0/user/login", "", LoginRequest{
			Email:    "user@example.com",
			Password: "wrong-password",
		})

		assert.Equal(t, http.StatusForbidden, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "Incorrect password!", env.Message)
	})
}

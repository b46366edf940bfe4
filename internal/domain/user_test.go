package domain

import (
	"strings"
	"testing"
)

func TestNewUser(t *testing.T) {
	validEmail := "test@example.com"
	validPassword := "password123"

	user, err := NewUser(validEmail, validPassword)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID != 0 {
		t.Errorf("Expected zero ID before insert, got %d", user.ID)
	}

	if user.Email != validEmail {
		t.Errorf("Expected email %s, got %s", validEmail, user.Email)
	}

	if user.Password != validPassword {
		t.Errorf("Expected password %s, got %s", validPassword, user.Password)
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	// Test invalid email
	_, err = NewUser("", validPassword)
	if err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	_, err = NewUser("invalidemail", validPassword)
	if err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	longEmail := strings.Repeat("a", 45) + "@example.com"
	_, err = NewUser(longEmail, validPassword)
	if err != ErrEmailTooLong {
		t.Errorf("Expected error %v, got %v", ErrEmailTooLong, err)
	}

	// Test invalid password
	_, err = NewUser(validEmail, "")
	if err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}

	_, err = NewUser(validEmail, strings.Repeat("x", 73))
	if err != ErrPasswordTooLong {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:             1,
		Email:          "test@example.com",
		HashedPassword: "hashedpassword123",
	}

	// A user loaded from the database carries only the hash
	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Both password fields empty
	noCredentials := User{Email: "test@example.com"}
	if err := noCredentials.Validate(); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}

	// Plaintext password alone is enough pre-hashing
	preHash := User{Email: "test@example.com", Password: "secret"}
	if err := preHash.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestValidEmailFormat(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"a@b.co", true},
		{"user.name@sub.example.org", true},
		{"", false},
		{"plainaddress", false},
		{"@example.com", false},
		{"user@", false},
		{"user@example", false},
		{"user@.com", false},
	}

	for _, c := range cases {
		if got := validEmailFormat(c.email); got != c.valid {
			t.Errorf("validEmailFormat(%q) = %v, want %v", c.email, got, c.valid)
		}
	}
}

package mocks

import "errors"

// MockPasswordVerifier implements auth.PasswordVerifier for testing.
// The default behavior treats a hash of the form "mock-hash:<password>" as
// matching <password>, which pairs with MockUserStore's default Create.
type MockPasswordVerifier struct {
	CompareFn    func(hashedPassword, password string) error
	CompareError error
}

// NewMockPasswordVerifier creates a new mock verifier with defaults.
func NewMockPasswordVerifier() *MockPasswordVerifier {
	return &MockPasswordVerifier{}
}

// Compare implements the PasswordVerifier interface.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.CompareError != nil {
		return m.CompareError
	}
	if hashedPassword != "mock-hash:"+password {
		return errPasswordMismatch
	}
	return nil
}

var errPasswordMismatch = errors.New("password mismatch")

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"jo@x.com", true},
		{"a@b.co", true},
		{"jo.doe-1_x@shop.example.com", true},
		{"", false},
		{"abc", false},
		{"a@b", false},
		{"a@b.c", false},
	}

	for _, tt := range tests {
		err := ValidateEmail(tt.email)
		if tt.ok {
			assert.NoError(t, err, "email %q", tt.email)
		} else {
			assert.Error(t, err, "email %q", tt.email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("12345"))
	assert.NoError(t, ValidatePassword("secret1"))
}

func TestValidateName(t *testing.T) {
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("   "))
	assert.Error(t, ValidateName("J"))
	assert.NoError(t, ValidateName("Jo"))
}

func TestValidateOTPCode(t *testing.T) {
	assert.NoError(t, ValidateOTPCode("123456"))
	assert.Error(t, ValidateOTPCode("12345"))
	assert.Error(t, ValidateOTPCode("1234567"))
	assert.Error(t, ValidateOTPCode("12a456"))
}

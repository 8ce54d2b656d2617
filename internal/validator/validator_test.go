package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPhone(t *testing.T) {
	valid := []string{
		"+49 151 23456789",
		"0151-2345678",
		"(030) 123 4567",
		"030.1234567",
		"1234567",
	}
	for _, p := range valid {
		assert.True(t, ValidPhone(p), p)
	}

	invalid := []string{
		"",
		"123",
		"12345",
		"+49 151 2345 6789 0123 45",
		"49+1512345678",
		"call me maybe",
		"0151/2345678",
		"(030 1234567",
		"030) 1234567",
	}
	for _, p := range invalid {
		assert.False(t, ValidPhone(p), p)
	}
}

type quizForm struct {
	RouterSetup    string `json:"routerSetup" validate:"required,is-quiz-answer"`
	WPSExplanation string `json:"wpsExplanation" validate:"required,min=20"`
	Phone          string `json:"phone" validate:"omitempty,phone"`
	Status         string `json:"status" validate:"omitempty,is-contact-status"`
}

func TestValidate_MessagesUseJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(&quizForm{RouterSetup: "e", WPSExplanation: "too short", Phone: "123", Status: "closed"})
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)

	assert.Equal(t, "Must be at least 20 characters long", verr.Errors["wpsExplanation"])
	assert.Contains(t, verr.Errors, "routerSetup")
	assert.Equal(t, "Please enter a valid phone number", verr.Errors["phone"])
	assert.Equal(t, "Invalid status", verr.Errors["status"])
}

func TestValidate_OK(t *testing.T) {
	v := New()

	err := v.Validate(&quizForm{
		RouterSetup:    "b",
		WPSExplanation: "WPS pairs devices with a push button.",
		Phone:          "+49 151 23456789",
	})
	assert.NoError(t, err)
}

func TestVar(t *testing.T) {
	v := New()
	assert.NoError(t, v.Var("contacted", "is-contact-status"))
	assert.Error(t, v.Var("done", "is-contact-status"))
	assert.NoError(t, v.Var("approved", "is-verification-decision"))
	assert.Error(t, v.Var("pending", "is-verification-decision"))
}

package services

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Name            string `validate:"required,min=2,max=50,person_name"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	Password        string `validate:"required,min=8,has_upper,has_lower,has_digit,has_symbol"`
	Role            string `validate:"required,oneof=seeker employer"`
}

func TestValidationError(t *testing.T) {
	cases := []struct {
		name string
		form signupForm
		want error
	}{
		{"required wins", signupForm{Name: "A", Password: "Secret1!", ConfirmPassword: "Secret1!"}, ErrMissingFields},
		{"name length", signupForm{Name: "A", Password: "Secret1!", ConfirmPassword: "Secret1!", Role: "seeker"}, ErrNameTooShort},
		{"name characters", signupForm{Name: "Анна 2", Password: "Secret1!", ConfirmPassword: "Secret1!", Role: "seeker"}, ErrNameCharacters},
		{"mismatch", signupForm{Name: "Anna", Password: "Secret1!", ConfirmPassword: "Secret2!", Role: "seeker"}, ErrPasswordMismatch},
		{"digit", signupForm{Name: "Anna", Password: "Secrets!", ConfirmPassword: "Secrets!", Role: "seeker"}, ErrPasswordNoDigit},
		{"role", signupForm{Name: "Anna", Password: "Secret1!", ConfirmPassword: "Secret1!", Role: "admin"}, ErrInvalidRole},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.Struct(tc.form)
			require.Error(t, err)
			assert.ErrorIs(t, ValidationError(err, ErrMissingFields), tc.want)
		})
	}

	require.NoError(t, validate.Struct(signupForm{Name: "Анна-Мария", Password: "Secret1!", ConfirmPassword: "Secret1!", Role: "employer"}))
}

func TestValidationError_NonValidationFailure(t *testing.T) {
	assert.ErrorIs(t, ValidationError(errors.New("unexpected EOF"), ErrMissingFields), ErrInvalidInput)
}

func TestRegisterValidations(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterValidations(v))

	assert.NoError(t, v.Var("Secret1!", passwordRules))
	assert.Error(t, v.Var("Éabcdef1!", "has_upper"))
	assert.NoError(t, v.Var("anna@example.com", "email,email_domain"))
	assert.Error(t, v.Var("anna@example.c", "email_domain"))
	assert.Error(t, v.Var("李雷", "person_name"))
}

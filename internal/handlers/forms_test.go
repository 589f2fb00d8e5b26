package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/hireboard/hireboard/internal/errors"
	"github.com/hireboard/hireboard/internal/models"
	"github.com/hireboard/hireboard/internal/services"
	"github.com/hireboard/hireboard/internal/testutil"
)

func TestAuthHandler_RegisterBindingRules(t *testing.T) {
	valid := func() map[string]string {
		return map[string]string{
			"name":             "Anna Smith",
			"email":            "anna@example.com",
			"password":         "Secret1!",
			"confirm_password": "Secret1!",
			"role":             "seeker",
		}
	}

	cases := []struct {
		name   string
		mutate func(map[string]string)
		want   *apierrors.Error
	}{
		{"missing email", func(m map[string]string) { delete(m, "email") }, services.ErrMissingFields},
		{"malformed email", func(m map[string]string) { m["email"] = "anna@" }, services.ErrInvalidEmail},
		{"one letter tld", func(m map[string]string) { m["email"] = "anna@example.c" }, services.ErrInvalidEmail},
		{"short name", func(m map[string]string) { m["name"] = "A" }, services.ErrNameTooShort},
		{"han name", func(m map[string]string) { m["name"] = "李雷" }, services.ErrNameCharacters},
		{"mismatch before policy", func(m map[string]string) { m["password"], m["confirm_password"] = "weak", "other" }, services.ErrPasswordMismatch},
		{"short password", func(m map[string]string) { m["password"], m["confirm_password"] = "Se1!", "Se1!" }, services.ErrPasswordTooShort},
		{"accented upper only", func(m map[string]string) { m["password"], m["confirm_password"] = "Éabcdef1!", "Éabcdef1!" }, services.ErrPasswordNoUpper},
		{"no symbol", func(m map[string]string) { m["password"], m["confirm_password"] = "Secret12", "Secret12" }, services.ErrPasswordNoSymbol},
		{"admin role", func(m map[string]string) { m["role"] = "admin" }, services.ErrInvalidRole},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := setupAuthTestEnv(t)
			payload := valid()
			tc.mutate(payload)

			w := env.do(t, jsonRequest(t, http.MethodPost, "/register", payload))
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			var apiErr apierrors.APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
			assert.Equal(t, apierrors.ErrCodeInvalidInput, apiErr.Code)
			assert.Equal(t, tc.want.Message, apiErr.Message)

			var users int64
			env.db.Model(&models.User{}).Count(&users)
			assert.Zero(t, users)
		})
	}
}

func TestAuthHandler_LoginMissingFieldIsInvalidCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := testutil.NewUser(t, env.db, models.RoleSeeker)

	w := env.do(t, jsonRequest(t, http.MethodPost, "/login", map[string]string{"email": user.Email}))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, services.ErrInvalidCredentials.Message, apiErr.Message)
}

func TestOptionalInt_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		raw     string
		want    *int
		wantErr bool
	}{
		{raw: `42`, want: intPtr(42)},
		{raw: `-3`, want: intPtr(-3)},
		{raw: `"15"`, want: intPtr(15)},
		{raw: `""`},
		{raw: `null`},
		{raw: `9.7`, wantErr: true},
		{raw: `1e12`, wantErr: true},
		{raw: `"abc"`, wantErr: true},
		{raw: `true`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			var o OptionalInt
			err := json.Unmarshal([]byte(tc.raw), &o)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, o.Value)
		})
	}
}

func TestOptionalInt_FractionalSalaryIsRejected(t *testing.T) {
	var req vacancyRequest
	err := json.Unmarshal([]byte(`{"title":"Go","description":"d","requirements":"r","salary_min":9.7}`), &req)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func intPtr(n int) *int {
	return &n
}

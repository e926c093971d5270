package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupPayload struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	EmailAddress string `json:"emailAddress" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
}

func serveValidated(t *testing.T, body string) (*httptest.ResponseRecorder, string, bool) {
	t.Helper()

	var (
		seen   string
		called bool
	)
	handler := Validate[signupPayload](NewValidator())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		seen = string(raw)
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seen, called
}

func decodeErrors(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var resp struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Errors
}

func TestValidate_CollectsEveryViolationInOrder(t *testing.T) {
	t.Parallel()

	rec, _, called := serveValidated(t, `{}`)

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{
		`Please provide a value for "firstName"`,
		`Please provide a value for "lastName"`,
		`Please provide a value for "emailAddress"`,
		`Please provide a value for "password"`,
	}, decodeErrors(t, rec))
}

func TestValidate_EmptyBodyTreatedAsEmptyObject(t *testing.T) {
	t.Parallel()

	rec, _, called := serveValidated(t, "")

	assert.False(t, called)
	assert.Len(t, decodeErrors(t, rec), 4)
}

func TestValidate_EmailShape(t *testing.T) {
	t.Parallel()

	rec, _, called := serveValidated(t, `{"firstName":"A","lastName":"B","emailAddress":"not-an-email","password":"x"}`)

	assert.False(t, called)
	assert.Equal(t, []string{`Please provide a valid email address for "emailAddress"`}, decodeErrors(t, rec))
}

func TestValidate_PassesBodyUntouched(t *testing.T) {
	t.Parallel()

	body := `{"firstName":"A","lastName":"B","emailAddress":"a@b.com","password":"x","extra":true}`
	rec, seen, called := serveValidated(t, body)

	assert.True(t, called)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, body, seen)
}

func TestValidate_InvalidJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "syntax", body: `{"firstName":`, want: "Request body must be a valid JSON object"},
		{name: "array", body: `[1,2]`, want: "Request body must be a valid JSON object"},
		{name: "string", body: `"hello"`, want: "Request body must be a valid JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _, called := serveValidated(t, tt.body)
			assert.False(t, called)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, []string{tt.want}, decodeErrors(t, rec))
		})
	}
}

func TestValidate_WrongTypeStillReportsOtherFields(t *testing.T) {
	t.Parallel()

	rec, _, called := serveValidated(t, `{"firstName":123}`)

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{
		`Please provide a valid value for "firstName"`,
		`Please provide a value for "lastName"`,
		`Please provide a value for "emailAddress"`,
		`Please provide a value for "password"`,
	}, decodeErrors(t, rec))
}

func TestValidate_WrongTypeKeepsFieldOrder(t *testing.T) {
	t.Parallel()

	rec, _, called := serveValidated(t, `{"firstName":"A","lastName":"B","emailAddress":"nope","password":false}`)

	assert.False(t, called)
	assert.Equal(t, []string{
		`Please provide a valid email address for "emailAddress"`,
		`Please provide a valid value for "password"`,
	}, decodeErrors(t, rec))
}

func TestValidator_check(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	assert.Nil(t, v.check(&signupPayload{FirstName: "A", LastName: "B", EmailAddress: "a@b.com", Password: "x"}, nil))
	assert.Equal(t, []string{`Please provide a value for "lastName"`},
		v.check(&signupPayload{FirstName: "A", EmailAddress: "a@b.com", Password: "x"}, nil))
}

func TestValidate_BodyTooLarge(t *testing.T) {
	t.Parallel()

	handler := MaxBodySize(8)(Validate[signupPayload](NewValidator())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run")
	})))

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"firstName":"way too long"}`))
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

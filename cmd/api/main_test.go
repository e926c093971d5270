package main

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "user and password", raw: "postgres://app:s3cret@db:5432/courses", want: "postgres://app@db:5432/courses"},
		{name: "no credentials", raw: "postgres://db:5432/courses", want: "postgres://db:5432/courses"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, redactURL(tt.raw))
		})
	}
}

func TestSanitizeError(t *testing.T) {
	dsn := "postgres://app:s3cret@db:5432/courses"
	err := errors.New(`failed to connect to ` + dsn + ` (password=s3cret)`)

	got := sanitizeError(err, dsn)

	assert.NotContains(t, got, "s3cret")
	assert.Contains(t, got, "postgres://app@db:5432/courses")
	assert.Empty(t, sanitizeError(nil))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("bogus"))
}

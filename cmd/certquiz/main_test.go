package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setMemoryEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TELEGRAM_API_TOKEN", "")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("ARCHIVE_BACKEND", "none")
}

func TestRunMain_InvalidConfigExitsNonZero(t *testing.T) {
	setMemoryEnv(t)
	t.Setenv("JWT_SECRET", "")

	assert.Equal(t, 1, runMain())
}

func TestRunMain_ServerFailureExitsNonZero(t *testing.T) {
	setMemoryEnv(t)
	t.Setenv("HTTP_ADDR", "127.0.0.1:-1")

	assert.Equal(t, 1, runMain())
}

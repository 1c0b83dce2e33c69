package server

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionServiceIssueAndValidate(t *testing.T) {
	svc := NewSessionService("test-secret", time.Hour)

	token, id, err := svc.IssueToken()
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, uuid.Nil, id)

	parsed, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestSessionServiceRejectsEmptyToken(t *testing.T) {
	svc := NewSessionService("test-secret", time.Hour)

	_, err := svc.ValidateToken("")
	assert.Error(t, err)
}

func TestSessionServiceRejectsTamperedToken(t *testing.T) {
	svc := NewSessionService("test-secret", time.Hour)

	token, _, err := svc.IssueToken()
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestSessionServiceRejectsOtherSecret(t *testing.T) {
	svc := NewSessionService("test-secret", time.Hour)
	other := NewSessionService("other-secret", time.Hour)

	token, _, err := svc.IssueToken()
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestSessionServiceRandomSecretFallback(t *testing.T) {
	svc := NewSessionService("", 0)

	token, id, err := svc.IssueToken()
	require.NoError(t, err)

	parsed, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndParse(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", time.Hour)
	signed, issued, err := m.Issue("alice", RoleUser)
	require.NoError(t, err)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, issued.SessionID, claims.SessionID)
	assert.False(t, claims.IsAdmin())

	_, second, err := m.Issue("alice", RoleUser)
	require.NoError(t, err)
	assert.NotEqual(t, issued.SessionID, second.SessionID)
}

func TestManager_ParseRejects(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", time.Hour)
	signed, _, err := m.Issue("root", RoleAdmin)
	require.NoError(t, err)

	_, err = NewManager("other", time.Hour).Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewManager("secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, _, err := expired.Issue("alice", RoleUser)
	require.NoError(t, err)
	_, err = m.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package keychain

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	m := NewManagerWithRing(keyring.NewArrayKeyring(nil))

	_, err := m.LoadSessionCookies()
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.SaveSessionCookies([]byte(`[{"name":"apiKey"}]`)))
	require.NoError(t, m.SaveMemberSnapshot([]byte(`{"id":7}`)))

	cookies, err := m.LoadSessionCookies()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"apiKey"}]`, string(cookies))

	snap, err := m.LoadMemberSnapshot()
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7}`, string(snap))
}

func TestClearSession(t *testing.T) {
	m := NewManagerWithRing(keyring.NewArrayKeyring(nil))
	require.NoError(t, m.SaveSessionCookies([]byte("x")))

	require.NoError(t, m.ClearSession())
	require.NoError(t, m.ClearSession())

	_, err := m.LoadSessionCookies()
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.LoadMemberSnapshot()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmptyValueIsNotFound(t *testing.T) {
	ring := keyring.NewArrayKeyring([]keyring.Item{{Key: KeyMemberSnapshot, Data: nil}})
	m := NewManagerWithRing(ring)

	_, err := m.LoadMemberSnapshot()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAllowedBackendsNotEmpty(t *testing.T) {
	assert.NotEmpty(t, allowedBackends())
}

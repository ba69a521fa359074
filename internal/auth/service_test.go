package auth

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"testing"
	"time"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sss/cli/internal/keychain"
	"sss/cli/internal/member"
)

func newJar(t *testing.T) http.CookieJar {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return jar
}

func newStore() *keychain.Manager {
	return keychain.NewManagerWithRing(keyring.NewArrayKeyring(nil))
}

func TestCookiesSurviveAcrossJars(t *testing.T) {
	base, _ := url.Parse("http://api.example.com")
	store := newStore()

	first := newJar(t)
	first.SetCookies(base, []*http.Cookie{
		{Name: "apiKey", Value: "k1", Path: "/"},
		{Name: "accessToken", Value: "t1", Path: "/"},
	})
	require.NoError(t, SaveCookies(store, first, base))

	second := newJar(t)
	n, err := RestoreCookies(store, second, base)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got := map[string]string{}
	meURL, _ := url.Parse("http://api.example.com/api/v1/members/me")
	for _, c := range second.Cookies(meURL) {
		got[c.Name] = c.Value
	}
	assert.Equal(t, map[string]string{"apiKey": "k1", "accessToken": "t1"}, got)
}

func TestRestoreWithNothingStored(t *testing.T) {
	base, _ := url.Parse("http://api.example.com")
	n, err := RestoreCookies(newStore(), newJar(t), base)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRestoreRejectsGarbage(t *testing.T) {
	base, _ := url.Parse("http://api.example.com")
	store := newStore()
	require.NoError(t, store.SaveSessionCookies([]byte("not json")))

	_, err := RestoreCookies(store, newJar(t), base)
	assert.Error(t, err)
}

func TestServiceLifecycle(t *testing.T) {
	base, _ := url.Parse("http://api.example.com")
	store := newStore()
	jar := newJar(t)
	jar.SetCookies(base, []*http.Cookie{{Name: "apiKey", Value: "k1", Path: "/"}})

	svc := NewService(store, jar, base, nil)
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	ann := member.Dto{ID: 7, Name: "Ann", Authorities: []string{"ROLE_ADMIN"}}
	require.NoError(t, svc.Persist(ann))

	st, ok, err := svc.LastMember()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ann, st.Member)
	assert.Equal(t, fixed, st.SavedAt)

	restored := newJar(t)
	require.NoError(t, NewService(store, restored, base, nil).Restore())
	assert.Len(t, restored.Cookies(base), 1)

	require.NoError(t, svc.Forget())
	_, ok, err = svc.LastMember()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveCookiesEmptyJarClears(t *testing.T) {
	base, _ := url.Parse("http://api.example.com")
	store := newStore()
	require.NoError(t, store.SaveSessionCookies([]byte(`[{"name":"apiKey","value":"old"}]`)))

	require.NoError(t, SaveCookies(store, newJar(t), base))

	_, err := store.LoadSessionCookies()
	assert.ErrorIs(t, err, keychain.ErrNotFound)
}

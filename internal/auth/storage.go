package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"sss/cli/internal/keychain"
)

// Store is the secret storage used for session persistence.
// *keychain.Manager implements it.
type Store interface {
	SaveSessionCookies(data []byte) error
	LoadSessionCookies() ([]byte, error)
	SaveMemberSnapshot(data []byte) error
	LoadMemberSnapshot() ([]byte, error)
	ClearSession() error
}

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SaveCookies writes the cookies jar would send to base into store.
// An empty jar clears the stored cookies.
func SaveCookies(store Store, jar http.CookieJar, base *url.URL) error {
	cookies := jar.Cookies(base)
	if len(cookies) == 0 {
		return store.ClearSession()
	}
	out := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, storedCookie{Name: c.Name, Value: c.Value})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return store.SaveSessionCookies(b)
}

// RestoreCookies loads stored cookies into jar for base and returns how many
// were restored. Nothing stored is not an error.
func RestoreCookies(store Store, jar http.CookieJar, base *url.URL) (int, error) {
	data, err := store.LoadSessionCookies()
	if err != nil {
		if errors.Is(err, keychain.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return 0, fmt.Errorf("decode stored cookies: %w", err)
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		if c.Name == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	jar.SetCookies(base, cookies)
	return len(cookies), nil
}

package auth

import (
	"encoding/json"
	"errors"
	"time"

	"sss/cli/internal/keychain"
	"sss/cli/internal/member"
)

// State is the last member the CLI saw logged in. It is for display only;
// the identity API decides whether the session is still valid.
type State struct {
	Member  member.Dto `json:"member"`
	SavedAt time.Time  `json:"saved_at"`
}

// SaveState stores the member snapshot.
func SaveState(store Store, d member.Dto, now time.Time) error {
	b, err := json.Marshal(State{Member: d, SavedAt: now.UTC()})
	if err != nil {
		return err
	}
	return store.SaveMemberSnapshot(b)
}

// LoadState returns the stored snapshot. ok is false when nothing is stored.
func LoadState(store Store) (s State, ok bool, err error) {
	data, err := store.LoadMemberSnapshot()
	if err != nil {
		if errors.Is(err, keychain.ErrNotFound) {
			return s, false, nil
		}
		return s, false, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, false, err
	}
	return s, true, nil
}

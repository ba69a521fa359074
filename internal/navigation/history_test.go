package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sss/cli/internal/reactive"
)

func TestNavigate(t *testing.T) {
	tests := []struct {
		name        string
		steps       []string
		replaceLast bool
		wantEntries []string
	}{
		{name: "push", steps: []string{"/a", "/b"}, wantEntries: []string{"/", "/a", "/b"}},
		{name: "replace last", steps: []string{"/a", "/b"}, replaceLast: true, wantEntries: []string{"/", "/b"}},
		{name: "relative path gets leading slash", steps: []string{"members"}, wantEntries: []string{"/", "/members"}},
		{name: "same-origin absolute url", steps: []string{"https://front.example.com/adm/users?page=2"}, wantEntries: []string{"/", "/adm/users?page=2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(reactive.NewRuntime(), "https://front.example.com/")
			for i, s := range tt.steps {
				h.Navigate(s, Options{Replace: tt.replaceLast && i == len(tt.steps)-1})
			}
			assert.Equal(t, tt.wantEntries, h.Entries())
			assert.Equal(t, tt.wantEntries[len(tt.wantEntries)-1], h.Current())
		})
	}
}

func TestReplacedEntryIsSkippedByBack(t *testing.T) {
	h := NewHistory(reactive.NewRuntime(), "")
	h.Navigate("/login", Options{})
	h.Navigate("/home", Options{Replace: true})

	require.NoError(t, h.Back())
	assert.Equal(t, "/", h.Current())
	assert.ErrorIs(t, h.Back(), ErrNoHistory)
}

func TestCurrentURL(t *testing.T) {
	h := NewHistory(reactive.NewRuntime(), "https://front.example.com")
	h.Navigate("/posts/3?x=1", Options{})
	assert.Equal(t, "https://front.example.com/posts/3?x=1", h.CurrentURL())
	assert.Equal(t, "/posts/3", h.Path())

	h.Navigate("https://other.example.com/x", Options{})
	assert.Equal(t, "https://other.example.com/x", h.CurrentURL())

	bare := NewHistory(reactive.NewRuntime(), "")
	assert.Equal(t, "/", bare.CurrentURL())
}

func TestCurrentIsReactive(t *testing.T) {
	rt := reactive.NewRuntime()
	h := NewHistory(rt, "")

	var seen []string
	rt.Effect(func() { seen = append(seen, h.Current()) })

	h.Navigate("/a", Options{})
	h.Navigate("/b", Options{Replace: true})
	require.NoError(t, h.Back())

	assert.Equal(t, []string{"/", "/a", "/b", "/"}, seen)
}

func TestCurrentURLIsNotTracked(t *testing.T) {
	rt := reactive.NewRuntime()
	h := NewHistory(rt, "https://front.example.com")

	runs := 0
	rt.Effect(func() {
		_ = h.CurrentURL()
		runs++
	})

	h.Navigate("/a", Options{})
	assert.Equal(t, 1, runs)
}

func TestOnNavigate(t *testing.T) {
	h := NewHistory(reactive.NewRuntime(), "")

	type call struct {
		from, to string
		replaced bool
	}
	var calls []call
	h.OnNavigate(func(from, to string, replaced bool) {
		calls = append(calls, call{from, to, replaced})
	})

	h.Navigate("/a", Options{})
	h.Navigate("/b", Options{Replace: true})

	assert.Equal(t, []call{{"/", "/a", false}, {"/a", "/b", true}}, calls)
}

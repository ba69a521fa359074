// Package member holds the reactive record of the current session's member.
//
// Every field is its own reactive.Signal, so an effect that only reads Name
// is not re-run when Authorities change. Populate and Clear write all fields
// inside a single batch, which means effects never observe a record that is
// half authenticated.
package member

import (
	"slices"
	"sync"

	"sss/cli/internal/reactive"
)

// AnonymousID is the reserved id of the anonymous record.
const AnonymousID int64 = 0

// Dto is the member payload exchanged with the identity API.
type Dto struct {
	ID            int64    `json:"id"`
	CreateDate    string   `json:"createDate"`
	ModifyDate    string   `json:"modifyDate"`
	Name          string   `json:"name"`
	ProfileImgURL string   `json:"profileImgUrl"`
	Authorities   []string `json:"authorities"`
}

// Member is the reactive identity record. Create it with New.
type Member struct {
	rt *reactive.Runtime

	// mu makes Populate/Clear exclusive with View and Snapshot so
	// goroutines that read several fields see one consistent record.
	mu sync.RWMutex

	id            *reactive.Signal[int64]
	name          *reactive.Signal[string]
	profileImgURL *reactive.Signal[string]
	createDate    *reactive.Signal[string]
	modifyDate    *reactive.Signal[string]
	authorities   *reactive.Signal[[]string]
}

// New creates an anonymous member bound to rt.
func New(rt *reactive.Runtime) *Member {
	return &Member{
		rt:            rt,
		id:            reactive.NewSignal(rt, AnonymousID),
		name:          reactive.NewSignal(rt, ""),
		profileImgURL: reactive.NewSignal(rt, ""),
		createDate:    reactive.NewSignal(rt, ""),
		modifyDate:    reactive.NewSignal(rt, ""),
		authorities:   reactive.NewSignal(rt, []string{}, reactive.WithEqual(slices.Equal[[]string])),
	}
}

func (m *Member) ID() int64        { return m.id.Get() }
func (m *Member) SetID(v int64)    { m.id.Set(v) }
func (m *Member) Name() string     { return m.name.Get() }
func (m *Member) SetName(v string) { m.name.Set(v) }

func (m *Member) ProfileImgURL() string     { return m.profileImgURL.Get() }
func (m *Member) SetProfileImgURL(v string) { m.profileImgURL.Set(v) }
func (m *Member) CreateDate() string        { return m.createDate.Get() }
func (m *Member) SetCreateDate(v string)    { m.createDate.Set(v) }
func (m *Member) ModifyDate() string        { return m.modifyDate.Get() }
func (m *Member) SetModifyDate(v string)    { m.modifyDate.Set(v) }

// Authorities returns a copy of the role markers; never nil.
func (m *Member) Authorities() []string {
	return slices.Clone(m.authorities.Get())
}

// SetAuthorities stores a copy of v. A nil slice is stored as empty.
func (m *Member) SetAuthorities(v []string) {
	m.authorities.Set(normalize(v))
}

// IsAnonymous reports whether the record holds the anonymous sentinel id.
func (m *Member) IsAnonymous() bool {
	return m.ID() == AnonymousID
}

// Populate overwrites every field from d.
func (m *Member) Populate(d Dto) {
	m.rt.Batch(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.id.Set(d.ID)
		m.name.Set(d.Name)
		m.profileImgURL.Set(d.ProfileImgURL)
		m.createDate.Set(d.CreateDate)
		m.modifyDate.Set(d.ModifyDate)
		m.authorities.Set(normalize(d.Authorities))
	})
}

// Clear resets every field to the anonymous defaults.
func (m *Member) Clear() {
	m.Populate(Dto{ID: AnonymousID})
}

// View runs fn while writers are excluded, so all reads inside fn come from
// the same record. fn must not call View or Snapshot.
func (m *Member) View(fn func(m *Member)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn(m)
}

// Snapshot returns a consistent copy of all fields.
func (m *Member) Snapshot() Dto {
	var d Dto
	m.View(func(m *Member) {
		d = Dto{
			ID:            m.ID(),
			CreateDate:    m.CreateDate(),
			ModifyDate:    m.ModifyDate(),
			Name:          m.Name(),
			ProfileImgURL: m.ProfileImgURL(),
			Authorities:   m.Authorities(),
		}
	})
	return d
}

func normalize(v []string) []string {
	if v == nil {
		return []string{}
	}
	return slices.Clone(v)
}

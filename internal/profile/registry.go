// Package profile holds the in-memory registry of spending profiles.
// Profiles are process-lifetime state; they are not persisted.
package profile

import (
	"sync"

	"paytrack/internal/core"
)

type Registry struct {
	mu       sync.Mutex
	profiles []core.Profile
}

// NewRegistry returns a registry seeded with the two initial profiles: a
// default personal profile and a business profile, both in RON.
func NewRegistry() *Registry {
	return &Registry{
		profiles: []core.Profile{
			{ID: "personal", Name: "Personal", Type: core.ProfilePersonal, Currency: "RON", IsDefault: true},
			{ID: "business", Name: "My Firm", Type: core.ProfileBusiness, Currency: "RON"},
		},
	}
}

// All returns a copy of the registered profiles in insertion order.
func (r *Registry) All() []core.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.Profile, len(r.profiles))
	copy(out, r.profiles)
	return out
}

func (r *Registry) Get(id string) (core.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return core.Profile{}, core.ErrNotFound
}

// Default returns the profile carrying the default flag, falling back to the
// first profile when none is marked.
func (r *Registry) Default() core.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.IsDefault {
			return p
		}
	}
	return r.profiles[0]
}

// Add registers a new profile, assigning its id. Marking the new profile as
// default unsets the flag on every other profile.
func (r *Registry) Add(p core.Profile) core.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = core.TimestampID()
	if p.IsDefault {
		r.unsetDefaultsLocked()
	}
	r.profiles = append(r.profiles, p)
	return p
}

// Update replaces the profile matching p.ID. Marking it as default unsets the
// flag on all others.
func (r *Registry) Update(p core.Profile) (core.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i := range r.profiles {
		if r.profiles[i].ID == p.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return core.Profile{}, core.ErrNotFound
	}
	if p.IsDefault {
		r.unsetDefaultsLocked()
	}
	r.profiles[idx] = p
	return p, nil
}

// Delete removes the profile with the given id. The last remaining profile
// cannot be deleted; removing the default promotes the first remaining
// profile.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.profiles) <= 1 {
		return core.ErrLastProfile
	}

	idx := -1
	for i := range r.profiles {
		if r.profiles[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return core.ErrNotFound
	}

	wasDefault := r.profiles[idx].IsDefault
	r.profiles = append(r.profiles[:idx], r.profiles[idx+1:]...)
	if wasDefault {
		r.profiles[0].IsDefault = true
	}
	return nil
}

func (r *Registry) unsetDefaultsLocked() {
	for i := range r.profiles {
		r.profiles[i].IsDefault = false
	}
}

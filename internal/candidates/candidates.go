package candidates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoProfilesMatched is returned when a profile id filter selects nothing
// from the catalog.
var ErrNoProfilesMatched = errors.New("no profiles matched the given ids")

// Profile describes one demographic variant of the candidate document. The
// rendered CV differs between profiles only in the name/address-coded fields
// below; everything else comes from the shared template.
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	LinkedIn    string `json:"linkedin"`
	GitHub      string `json:"github"`
	Description string `json:"description"`
}

// Profiles is an ordered catalog of profile variants.
type Profiles struct {
	Items []*Profile
}

func (p *Profiles) Len() int {
	return len(p.Items)
}

// IDs returns the profile ids in catalog order.
func (p *Profiles) IDs() []string {
	ids := make([]string, 0, len(p.Items))
	for _, profile := range p.Items {
		ids = append(ids, profile.ID)
	}
	return ids
}

func (p *Profiles) FindByID(id string) *Profile {
	for _, profile := range p.Items {
		if profile.ID == id {
			return profile
		}
	}
	return nil
}

// Filter returns the subset of profiles with the given ids, preserving
// catalog order. An empty id list returns the catalog unchanged.
func (p *Profiles) Filter(ids []string) (*Profiles, error) {
	if len(ids) == 0 {
		return p, nil
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[strings.TrimSpace(id)] = true
	}

	selected := make([]*Profile, 0, len(ids))
	for _, profile := range p.Items {
		if wanted[profile.ID] {
			selected = append(selected, profile)
		}
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoProfilesMatched, strings.Join(ids, ", "))
	}

	return &Profiles{Items: selected}, nil
}

// First returns a catalog with at most n leading profiles.
func (p *Profiles) First(n int) *Profiles {
	if n <= 0 || n >= len(p.Items) {
		return p
	}
	return &Profiles{Items: p.Items[:n]}
}

package models

import (
	"encoding/json"
	"fmt"
)

// Cookie is a single browser cookie as recorded in a storage state file
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite,omitempty"`
}

// NameValue is a localStorage entry
type NameValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// OriginState holds the localStorage entries captured for one origin
type OriginState struct {
	Origin       string      `json:"origin"`
	LocalStorage []NameValue `json:"localStorage"`
}

// StorageState is the authenticated browser state persisted between test runs.
// The JSON layout matches what Playwright reads via the storageState context option.
type StorageState struct {
	Cookies []Cookie      `json:"cookies"`
	Origins []OriginState `json:"origins"`
}

// ParseStorageState decodes a storage state document
func ParseStorageState(data []byte) (*StorageState, error) {
	var state StorageState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse storage state: %w", err)
	}
	return &state, nil
}

// Usable reports whether the state carries anything a browser context can restore
func (s *StorageState) Usable() bool {
	if s == nil {
		return false
	}
	return len(s.Cookies) > 0 || len(s.Origins) > 0
}

// CookieNamed returns the first cookie with the given name
func (s *StorageState) CookieNamed(name string) (Cookie, bool) {
	if s == nil {
		return Cookie{}, false
	}
	for _, c := range s.Cookies {
		if c.Name == name {
			return c, true
		}
	}
	return Cookie{}, false
}

// Marshal encodes the state with indentation, the way it is written to disk
func (s *StorageState) Marshal() ([]byte, error) {
	state := *s
	// keep empty lists as [] rather than null, browsers reject null
	if state.Cookies == nil {
		state.Cookies = []Cookie{}
	}
	if state.Origins == nil {
		state.Origins = []OriginState{}
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode storage state: %w", err)
	}
	return data, nil
}

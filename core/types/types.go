// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions and
// small lookup helpers.
package types

import (
	"encoding/json"
	"sort"
)

// SizeTier is the discrete engagement size derived from total effort
type SizeTier string

const (
	SizeS SizeTier = "S"
	SizeM SizeTier = "M"
	SizeL SizeTier = "L"
)

// AllTiers returns the tiers from smallest to largest
func AllTiers() []SizeTier {
	return []SizeTier{SizeS, SizeM, SizeL}
}

// String returns the string representation of the tier
func (s SizeTier) String() string {
	return string(s)
}

// IsValid checks if the tier is one of S, M or L
func (s SizeTier) IsValid() bool {
	switch s {
	case SizeS, SizeM, SizeL:
		return true
	default:
		return false
	}
}

// Requirement dimensions and the levels that carry fixed bonus hours
const (
	SecurityStandard  = "standard"
	SecurityEnhanced  = "enhanced"
	SecurityZeroTrust = "zeroTrust"

	AvailabilityStandard = "standard"
	AvailabilityHigh     = "high"
	AvailabilityCritical = "critical"

	DisasterRecoveryNone     = "none"
	DisasterRecoveryBasic    = "basic"
	DisasterRecoveryStandard = "standard"
	DisasterRecoveryFull     = "full"
)

// IDSet is an unordered set of identifiers (scope areas, compliance factors)
type IDSet map[string]struct{}

// NewIDSet builds a set from the given ids
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id
func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

// Remove deletes id
func (s IDSet) Remove(id string) {
	delete(s, id)
}

// Clone returns an independent copy
func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Sorted returns the ids in lexical order
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Equal reports whether both sets hold the same ids
func (s IDSet) Equal(other IDSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as a sorted array
func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of ids
func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}

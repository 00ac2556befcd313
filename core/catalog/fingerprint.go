package catalog

import (
	"service-estimator/core/determinism"
	"service-estimator/core/types"
)

// Fingerprint returns a short content hash of the catalogue. Two estimates
// with the same fingerprint were computed from identical rules.
func Fingerprint(cat *types.Catalog) string {
	h, err := determinism.Fingerprint(cat)
	if err != nil {
		return ""
	}
	return h.Short()
}

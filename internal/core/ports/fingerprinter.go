package ports

import "go.trai.ch/tend/internal/core/domain"

// Fingerprinter summarizes the state of a file.
//
//go:generate mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Fingerprint returns domain.Absent() for a path that does not exist.
	// Any other failure is returned as an error.
	Fingerprint(path string, mode domain.FingerprintMode) (domain.Fingerprint, error)
}

package ports

import (
	"context"
	"regexp"
)

// FileScanner lists files for dynamic dependency sets.
//
//go:generate mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type FileScanner interface {
	// Scan lists regular files under root, excluding any path that matches a skip pattern.
	// The result is sorted lexicographically.
	Scan(ctx context.Context, root string, skip []*regexp.Regexp) ([]string, error)
}

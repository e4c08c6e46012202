// Package fs provides file system adapters for fingerprinting, scanning and globbing files.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"iter"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"go.trai.ch/tend/internal/core/domain"
	"go.trai.ch/tend/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileScanner = (*Walker)(nil)

// Walker lists files below a directory.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file under root, skipping any file or directory whose
// slash-separated path matches one of the skip patterns. A skipped directory is not descended.
// Walk errors are yielded with an empty path and end the iteration.
func (w *Walker) WalkFiles(root string, skip []*regexp.Regexp) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stopped := false
		err := filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if path != root && skipped(path, skip) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}

			if !yield(path, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil && !stopped {
			yield("", err)
		}
	}
}

func skipped(path string, skip []*regexp.Regexp) bool {
	slashed := filepath.ToSlash(path)
	for _, re := range skip {
		if re.MatchString(slashed) {
			return true
		}
	}
	return false
}

// Scan lists the files under root that match no skip pattern, sorted lexicographically.
func (w *Walker) Scan(ctx context.Context, root string, skip []*regexp.Regexp) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, domain.Annotate(domain.ErrScanRootNotFound, "path", root)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to stat scan root"), "path", root)
	}
	if !info.IsDir() {
		return nil, zerr.With(zerr.New("scan root is not a directory"), "path", root)
	}

	var files []string
	for path, err := range w.WalkFiles(root, skip) {
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to scan directory"), "path", root)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		files = append(files, path)
	}

	slices.Sort(files)
	return files, nil
}

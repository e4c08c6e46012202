package ports

// InputResolver expands glob patterns into concrete file paths.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type InputResolver interface {
	// ResolveInputs expands patterns relative to root into a sorted, deduplicated list of paths.
	ResolveInputs(patterns []string, root string) ([]string, error)
}

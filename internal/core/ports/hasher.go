package ports

import "github.com/warpack/warpack/internal/core/domain"

// Hasher defines the interface for computing content digests of staged files.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// FileDigest computes the content digest of a single file.
	FileDigest(path string) (string, error)

	// TreeDigests walks the tree rooted at root and returns a manifest
	// mapping each file's slash-separated relative path to its digest.
	TreeDigests(root string) (domain.Manifest, error)
}

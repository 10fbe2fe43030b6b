package ports

import "github.com/warpack/warpack/internal/core/domain"

// SourceScanner enumerates project source files for planning.
//
//go:generate mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type SourceScanner interface {
	// ScanTree walks the directory tree rooted at root and returns every
	// file and directory beneath it, including root itself, in lexical
	// order. It returns domain.ErrSourceMissing when root does not exist.
	ScanTree(root string) ([]domain.SourceEntry, error)

	// Glob matches a doublestar pattern relative to root and returns the
	// matching entries in lexical order.
	Glob(root, pattern string) ([]domain.SourceEntry, error)
}

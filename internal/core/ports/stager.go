package ports

// Stager performs the filesystem writes that build up the staging tree.
// Both operations are idempotent and report whether work was done, so the
// runner can distinguish fresh work from cache hits.
//
//go:generate mockgen -source=stager.go -destination=mocks/mock_stager.go -package=mocks
type Stager interface {
	// EnsureDir creates the directory (and missing parents) if it does
	// not exist. It reports true when the directory was created.
	EnsureDir(path string) (bool, error)

	// CopyFile copies src to dst unless dst already exists and is no
	// older than src. It reports true when the file was copied.
	CopyFile(src, dst string) (bool, error)
}

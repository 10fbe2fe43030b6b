package ports

import "context"

//go:generate mockgen -source=progress.go -destination=mocks/mock_progress.go -package=mocks

// ProgressRenderer presents the recorded task stream to the user. It
// decouples recording from presentation, so the same stream can drive
// either the interactive display or linear CI logs.
type ProgressRenderer interface {
	// Start begins rendering. Asynchronous renderers launch their
	// display loop here.
	Start(ctx context.Context) error

	// Stop signals the renderer to finish up once the stream ends. It
	// must be safe to call after the stream has already ended.
	Stop() error

	// Wait blocks until rendering has fully terminated.
	Wait() error
}

// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/warpack/warpack/internal/adapters/config"
	_ "github.com/warpack/warpack/internal/adapters/descriptor"
	_ "github.com/warpack/warpack/internal/adapters/fs"
	_ "github.com/warpack/warpack/internal/adapters/logger"
	_ "github.com/warpack/warpack/internal/adapters/pkgindex"
	_ "github.com/warpack/warpack/internal/adapters/shell"
	_ "github.com/warpack/warpack/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "github.com/warpack/warpack/internal/app"
	_ "github.com/warpack/warpack/internal/engine/planner"
	_ "github.com/warpack/warpack/internal/engine/runner"
)

// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pakt/internal/adapters/analytics"
	_ "go.trai.ch/pakt/internal/adapters/link"
	_ "go.trai.ch/pakt/internal/adapters/logger"
	_ "go.trai.ch/pakt/internal/adapters/manifest"
	_ "go.trai.ch/pakt/internal/adapters/registry"
	_ "go.trai.ch/pakt/internal/adapters/semver"
	_ "go.trai.ch/pakt/internal/adapters/store"
	// Register app and engine nodes.
	_ "go.trai.ch/pakt/internal/app"
	_ "go.trai.ch/pakt/internal/engine/resolver"
)

// Package testinfra starts the containers used by integration tests.
//
// Files that use it carry the integration build tag and run with
//
//	go test -tags integration ./...
//
// Tests are skipped when no Docker daemon is reachable.
package testinfra

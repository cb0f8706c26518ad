// Package pkg provides the core libraries for Sandboxer.
//
// # Overview
//
// Sandboxer turns a documented UI example into a runnable CodeSandbox
// project. For every example rendered in docs view it resolves the npm
// packages the example imports, rewrites annotated imports, assembles a
// four-file project and encodes it into a define URL behind an "Open in
// CodeSandbox" button. The pkg directory is organized into three areas:
//
//  1. Domain logic: [imports], [deps], [codesandbox], [story]
//  2. Orchestration: [pipeline], [button]
//  3. Infrastructure: [cache], [config], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The data flow of a single export:
//
//	story.Context (id, name, view mode, fullSource, exportToCodeSandbox)
//	         ↓
//	    [imports] package (annotations, specifiers, rewrite)
//	         ↓
//	    [deps] package (base mapping + inferred versions)
//	         ↓
//	    [codesandbox] package (files + compressed parameters)
//	         ↓
//	    define URL → [button] anchor
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/sandboxer/pkg/pipeline"
//	    "github.com/matzehuels/sandboxer/pkg/story"
//	)
//
//	c, _ := story.Load("stories/box.yaml")
//	res, _ := pipeline.Export(*c, pipeline.Options{})
//	if res.OK() {
//	    fmt.Println(res.URL)
//	} else {
//	    fmt.Println(res.Failure)
//	}
//
// # Main Packages
//
// ## Domain Logic
//
// [imports] - Scans example source for codesandbox-dependency annotations
// and import specifiers, and rewrites annotated imports to the published
// package name.
//
// [deps] - Builds the dependency mapping: the host supplied base wins, then
// annotations, then versions inferred from pins or "latest". Also reads and
// writes package.json.
//
// [codesandbox] - Project assembly (example.tsx, index.tsx, index.html,
// package.json), LZ-string parameter encoding and define URLs.
//
// [story] - The per-example rendering context, loadable from JSON or YAML.
//
// ## Orchestration
//
// [pipeline] - Export runs the ordered checks and assembly for one story.
// Runner adds caching, observability hooks and bounded parallelism.
//
// [button] - The anchor shown next to each example, in its success or
// error state.
//
// ## Infrastructure
//
// [cache] - Cache backends for export results: FileCache for the CLI,
// RedisCache for the HTTP API, NullCache to disable caching.
//
// [config] - TOML configuration (host, pins, defaults, cache, server).
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks for export, cache and HTTP events.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
//	go test ./...                 # All tests
//	go test ./pkg/deps/...        # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [imports]: https://pkg.go.dev/github.com/matzehuels/sandboxer/pkg/imports
// [deps]: https://pkg.go.dev/github.com/matzehuels/sandboxer/pkg/deps
// [codesandbox]: https://pkg.go.dev/github.com/matzehuels/sandboxer/pkg/codesandbox
// [story]: https://pkg.go.dev/github.com/matzehuels/sandboxer/pkg/story
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sandboxer/pkg/pipeline
// [button]: https://pkg.go.dev/github.com/matzehuels/sandboxer/pkg/button
// [cache]: https://pkg.go.dev/github.com/matzehuels/sandboxer/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/sandboxer/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/sandboxer/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/sandboxer/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/sandboxer/pkg/buildinfo
package pkg

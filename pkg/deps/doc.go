// Package deps resolves the npm dependencies of a documentation example.
//
// # Overview
//
// A sandbox project needs a package.json listing every package the example
// imports. The example itself carries no manifest, so the mapping is built
// from three sources, in priority order:
//
//  1. A required base mapping supplied by the host (e.g. react, react-dom)
//  2. codesandbox-dependency annotation comments in the source
//  3. Import statements found in the rewritten source
//
// # Resolving
//
//	m, err := deps.Resolve(src, deps.Map{"react": "^17.0.0"}, deps.Options{})
//
// Inferred packages get a pinned version when they match a [Pin] prefix
// (by default "@fluentui/react-" → "^9.0.0-beta") and "latest" otherwise.
// Imports under [ReservedPrefix] ("react/") are framework sub-paths and are
// never inferred; additional prefixes come from configuration through
// [Options.ExtraReservedPrefixes].
//
// Resolution never contacts a registry: versions are either supplied or
// inferred from fixed rules.
//
// # Manifests
//
// [Manifest] is the generated package.json. [PackageJSON] reads an existing
// package.json so a project's own manifest can serve as the base mapping.
package deps

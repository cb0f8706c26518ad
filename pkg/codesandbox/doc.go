// Package codesandbox builds CodeSandbox define URLs.
//
// A [Project] holds the four files of a minimal standalone sandbox: the
// example itself, an HTML shell with a single root element, an entry file
// rendered from host boilerplate, and a package.json. [Parameters] encodes
// the files the way the define API expects (LZ-string base64, URL-safe) and
// [DefineURL] combines them with the file to preview:
//
//	https://codesandbox.io/api/v1/sandboxes/define?parameters=<p>&query=file%3D%2Fexample.tsx
//
// [DecodeParameters] and [ParseDefineURL] reverse the encoding, which makes
// generated links inspectable.
package codesandbox

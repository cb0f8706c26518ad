// Package imports extracts dependency information from example source text.
//
// Examples are written in a single ES-module import syntax family:
//
//	import { useState } from 'react';
//	import Box from '@fluentui/react-box';
//
// Relative imports cannot be expressed in a standalone sandbox, so authors
// annotate them with the package that provides the same module:
//
//	import { Helper } from './helper'; // codesandbox-dependency: my-helpers ^1.0.0
//
// # Scanner
//
// All parsing goes through the [Scanner] interface. [RegexScanner] is a
// line-oriented heuristic, not a parser; it can be replaced by a lexer-based
// implementation without touching dependency resolution.
//
// [Scanner.Rewrite] turns every annotated import into a plain import of the
// annotated package and drops the comment, so the two calls below always
// agree:
//
//	anns := s.Annotations(src) // what was recognized
//	out := s.Rewrite(src)      // every recognized annotation is gone
package imports

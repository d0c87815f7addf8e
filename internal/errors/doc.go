// Package errors provides structured, coded errors for livetree.
//
// Every failure the engine can surface has a registered code (e.g. "E001")
// that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Error Categories
//
//   - tree: malformed virtual trees (invalid node kinds, root mismatches)
//   - driver: application driver misuse
//   - config: configuration loading and validation
//   - journal: message journal storage
//   - snapshot: rendered snapshot sinks
//   - preview: live preview transport
//
// # Usage
//
//	err := errors.New("E001").
//	    WithDetail("got int").
//	    WithSuggestion("Pass a tag name or a vdom.ComponentFunc")
//
//	fmt.Print(err.Format())
//	// Output:
//	// error E001 [tree]: Invalid node kind
//	//   got int
//	//   hint: Pass a tag name or a vdom.ComponentFunc
//	//   docs: https://livetree.dev/docs/errors/E001
//
// Errors compare by code with the standard library:
//
//	if errors.Is(err, lterrors.New("E001")) { ... }
package errors

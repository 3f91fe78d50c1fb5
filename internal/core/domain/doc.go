// Package domain defines the core business entities for ShopScout.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Product: A catalogue record as stored in the index
//   - Passage: A retrieved unit of context, structured or raw
//   - Listing: The position -> product relation parsed from an answer
//   - Turn: The state of one question/answer exchange
//   - Review: A single customer review
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

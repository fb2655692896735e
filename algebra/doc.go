// Package algebra analyzes finite algebraic structures given as a Cayley
// (operation) table over an ordered element set.
//
// A structure is a pair (S, T): S is an ordered sequence of distinct labels
// and T is an n×n table where T[i][j] is the label of S[i]∘S[j]. The package
// answers structural questions about ∘ — commutativity (with counterexample
// extraction), associativity, existence of a two-sided identity, and
// two-sided inverses per element.
//
// All functions are pure and stateless: inputs are never mutated, no state
// survives a call, and any call is safe to run concurrently with any other.
// Malformed dimensions fail fast with *ShapeError; a table entry outside S
// fails the functions that must look entries up (IsAssociative,
// FindInverses) with *NotInSetError. "No identity" and "no inverse" are
// ordinary results, not errors.
package algebra

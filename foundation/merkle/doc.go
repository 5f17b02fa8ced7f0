// Package merkle provides a deterministic binary merkle tree used to teach
// how hashing commits to a set of values. The tree is built level by level
// from an ordered set of labels and can be compared against another tree,
// replayed one level at a time and used to prove a label is part of a root.
//
// The hash function is a non-cryptographic FNV-1a fold. Trees are immutable
// once built and all functions in this package are pure, so values can be
// shared between goroutines without coordination.
package merkle

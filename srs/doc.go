// Package srs builds, stores and loads structured reference strings: the
// public sequences of group elements that polynomials are committed
// against.
//
// An [SRS] is constructed once, typically at process start, and then
// shared read-only by every commitment key built from it.
//
// Two layouts are supported. [Plain] holds only base points.
// [EndomorphismPaired] interleaves every base point with its image under
// the group's GLV endomorphism. Consumers that need the base points must
// skip the odd indices; [SRS.Base] and [SRS.Len] do that.
package srs

package ihm

import (
	"iter"
	"slices"
)

// Unique yields the elements of seq, skipping any that are == to one already
// yielded. For pointers this is identity: distinct objects that happen to be
// equal by value are all yielded. First occurrence wins.
func Unique[T comparable](seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		seen := make(map[T]struct{})
		for v := range seq {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			if !yield(v) {
				return
			}
		}
	}
}

// UniqueFunc yields the elements of seq whose key has not been seen yet.
func UniqueFunc[T any, K comparable](seq iter.Seq[T], key func(T) K) iter.Seq[T] {
	return func(yield func(T) bool) {
		seen := make(map[K]struct{})
		for v := range seq {
			k := key(v)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			if !yield(v) {
				return
			}
		}
	}
}

// AppendOnce appends v to s unless s already holds it. Readers use it so
// that repeated input rows do not duplicate list entries.
func AppendOnce[S ~[]T, T comparable](s S, v T) S {
	if slices.Contains(s, v) {
		return s
	}
	return append(s, v)
}

func chain[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for v := range seq {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// present yields the non-zero results of pick over seq.
func present[T any, R comparable](seq iter.Seq[T], pick func(T) R) iter.Seq[R] {
	return func(yield func(R) bool) {
		var zero R
		for v := range seq {
			if r := pick(v); r != zero {
				if !yield(r) {
					return
				}
			}
		}
	}
}

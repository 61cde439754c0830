// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

// =============================================================================
// FETCH STATE
// =============================================================================

// FetchStatus is the lifecycle of one remote resource.
type FetchStatus int

const (
	FetchIdle FetchStatus = iota
	FetchLoading
	FetchLoaded
	FetchError
)

// String returns the lowercase status name.
func (s FetchStatus) String() string {
	switch s {
	case FetchIdle:
		return "idle"
	case FetchLoading:
		return "loading"
	case FetchLoaded:
		return "loaded"
	case FetchError:
		return "error"
	default:
		return "unknown"
	}
}

// Fetch tracks a remote value of type T. Each Start issues a new sequence
// token; Resolve only accepts the result carrying the latest token, so a
// slow response to an older request can never overwrite a newer one.
//
// The zero value is idle and ready to use.
type Fetch[T any] struct {
	status FetchStatus
	seq    uint64
	value  T
	err    error
}

// Start moves to loading and returns the token the result must carry.
// The previous value stays readable until the new result lands.
func (f *Fetch[T]) Start() uint64 {
	f.seq++
	f.status = FetchLoading
	f.err = nil
	return f.seq
}

// Resolve records the result of the request identified by seq. It reports
// false and changes nothing when seq is stale.
func (f *Fetch[T]) Resolve(seq uint64, value T, err error) bool {
	if seq != f.seq || f.status != FetchLoading {
		return false
	}
	if err != nil {
		f.status = FetchError
		f.err = err
		return true
	}
	f.status = FetchLoaded
	f.value = value
	return true
}

// Set replaces the current value in place, for local edits such as removing
// a deleted row. It applies while loaded and while a refetch is in flight,
// and is a no-op when idle or failed.
func (f *Fetch[T]) Set(value T) {
	if f.status == FetchLoaded || f.status == FetchLoading {
		f.value = value
	}
}

// Status returns the current status.
func (f *Fetch[T]) Status() FetchStatus { return f.status }

// Value returns the last loaded value.
func (f *Fetch[T]) Value() T { return f.value }

// Err returns the error of the last failed fetch.
func (f *Fetch[T]) Err() error { return f.err }

// Seq returns the token of the latest Start.
func (f *Fetch[T]) Seq() uint64 { return f.seq }

func (f *Fetch[T]) IsIdle() bool    { return f.status == FetchIdle }
func (f *Fetch[T]) IsLoading() bool { return f.status == FetchLoading }
func (f *Fetch[T]) IsLoaded() bool  { return f.status == FetchLoaded }
func (f *Fetch[T]) IsError() bool   { return f.status == FetchError }

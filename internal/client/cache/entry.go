package cache

import "time"

// Status is the fetch state of an entry.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Entry is a snapshot of one cached query.
//
// Data stays set across refetches and failed refetches once a fetch has
// succeeded (HasData); it is shared with the cache and must be treated as
// read-only. Stale is true between an invalidation and the completion of
// the refetch it triggered.
type Entry[V any] struct {
	Key       Key
	Status    Status
	Data      V
	HasData   bool
	Err       error
	UpdatedAt time.Time
	Stale     bool
}

func (e Entry[V]) IsLoading() bool { return e.Status == StatusLoading }

func (e Entry[V]) IsError() bool { return e.Status == StatusError }

// Settled reports whether the entry holds the outcome of its latest fetch.
func (e Entry[V]) Settled() bool {
	return e.Status == StatusSuccess || e.Status == StatusError
}

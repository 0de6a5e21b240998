package services

import "fmt"

// MutationKind names the write a Mutation performs.
type MutationKind string

const (
	MutationCreate MutationKind = "create"
	MutationUpdate MutationKind = "update"
	MutationRemove MutationKind = "remove"
)

// MutationState is the lifecycle of one mutation attempt:
// idle, then pending, then success or error. Mutations are never retried.
type MutationState int

const (
	MutationIdle MutationState = iota
	MutationPending
	MutationSuccess
	MutationError
)

func (s MutationState) String() string {
	switch s {
	case MutationIdle:
		return "idle"
	case MutationPending:
		return "pending"
	case MutationSuccess:
		return "success"
	case MutationError:
		return "error"
	default:
		return fmt.Sprintf("MutationState(%d)", int(s))
	}
}

// Mutation describes a write and where it is in its lifecycle. ID is zero
// for a create until it succeeds.
type Mutation struct {
	Kind  MutationKind
	ID    int64
	State MutationState
	Err   error
}

// MutationListener observes every state change of every mutation.
type MutationListener func(Mutation)

package views

import (
	"errors"

	"github.com/dmitrijs2005/userdesk/internal/client/cache"
	"github.com/dmitrijs2005/userdesk/internal/client/client"
)

// QueryState is the read-only view of one cached query.
//
// IsLoading is set only while nothing has been loaded yet; a background
// refetch over existing data sets IsFetching instead so the data stays
// on screen.
type QueryState[V any] struct {
	Data       V
	HasData    bool
	IsLoading  bool
	IsFetching bool
	IsError    bool
	Err        error
}

// Project maps a cache entry to its QueryState.
func Project[V any](e cache.Entry[V]) QueryState[V] {
	return QueryState[V]{
		Data:       e.Data,
		HasData:    e.HasData,
		IsLoading:  (e.Status == cache.StatusLoading || e.Status == cache.StatusIdle) && !e.HasData,
		IsFetching: e.Status == cache.StatusLoading,
		IsError:    e.Status == cache.StatusError,
		Err:        e.Err,
	}
}

// ErrorMessage is the text shown for err: the server's message for API
// failures, the error string otherwise.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var te *client.TransportError
	if errors.As(err, &te) && te.Message != "" {
		return te.Message
	}
	return err.Error()
}

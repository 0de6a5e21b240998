// Package views turns cache snapshots into text for the console.
//
// It holds no state of its own beyond the rows last handed to a Table:
// QueryState projects an entry into the loading/error/data view model, a
// Table renders ordered columns, and row actions are forwarded to a
// RowActions implementation owned by the caller.
package views

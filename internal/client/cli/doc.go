// Package cli provides the interactive userdesk console.
//
// App wires configuration, the HTTP API client and the user service, keeps
// a long-lived subscription to the user list so it stays fresh after every
// write, and runs a REPL:
//
//	help            show available commands
//	list | l        show the user table
//	show <id>       show one user
//	add             create a user
//	edit <id>       edit a user
//	delete <id>     delete a user
//	refresh         refetch the user list
//	exit | quit     leave the program
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or ctx is canceled.
package cli

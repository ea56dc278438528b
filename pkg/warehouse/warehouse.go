// Package warehouse defines the session contract the loader consumes.
//
// A run acquires one connection, one cursor on that connection, executes
// statements through the cursor and commits through the connection.
// Both handles are released when the run ends, whatever the outcome.
package warehouse

import "context"

// Warehouse opens sessions to the data warehouse.
type Warehouse interface {
	// Connect acquires a dedicated connection.
	Connect(ctx context.Context) (Conn, error)
}

// Conn is a live connection owned by a single run.
type Conn interface {
	// Cursor acquires a cursor scoped to the connection.
	Cursor(ctx context.Context) (Cursor, error)

	// Commit makes the work done since the previous commit durable.
	Commit(ctx context.Context) error

	// Close discards uncommitted work and releases the connection.
	Close() error
}

// Cursor executes statements on its connection.
type Cursor interface {
	// Execute runs one statement. The statement becomes part of the
	// connection's open transaction, which is started when needed.
	Execute(ctx context.Context, sql string) error

	// Close releases the cursor.
	Close() error
}

package iowarehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gnames/dwhetl/pkg/warehouse"
)

// session is a dedicated connection with at most one open transaction.
// A transaction starts with the first statement after a commit, the way
// DB-API drivers behave.
type session struct {
	conn    *sql.Conn
	tx      *sql.Tx
	release func()
	closed  bool
}

// Cursor returns a cursor bound to the session.
func (s *session) Cursor(_ context.Context) (warehouse.Cursor, error) {
	if s.closed {
		return nil, NotConnectedError()
	}
	return &cursor{sess: s}, nil
}

// Commit commits the open transaction. Without one it does nothing.
func (s *session) Commit(_ context.Context) error {
	if s.closed {
		return NotConnectedError()
	}
	if s.tx == nil {
		return nil
	}

	tx := s.tx
	s.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cannot commit transaction: %w", err)
	}
	return nil
}

// Close rolls back uncommitted work and releases the connection.
// Calling Close more than once is safe.
func (s *session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.tx != nil {
		err := s.tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			errs = append(errs, err)
		}
		s.tx = nil
	}

	if err := s.conn.Close(); err != nil {
		errs = append(errs, err)
	}
	s.release()

	if err := errors.Join(errs...); err != nil {
		return CloseError(err)
	}
	return nil
}

func (s *session) exec(ctx context.Context, query string) error {
	if s.closed {
		return NotConnectedError()
	}

	if s.tx == nil {
		tx, err := s.conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("cannot begin transaction: %w", err)
		}
		s.tx = tx
	}

	if _, err := s.tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("cannot execute statement: %w", err)
	}
	return nil
}

type cursor struct {
	sess   *session
	closed bool
}

// Execute runs the statement inside the session transaction.
func (c *cursor) Execute(ctx context.Context, query string) error {
	if c.closed {
		return CursorClosedError()
	}
	return c.sess.exec(ctx, query)
}

// Close marks the cursor as unusable. The connection stays open.
func (c *cursor) Close() error {
	c.closed = true
	return nil
}

package iowarehouse_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gnames/dwhetl/internal/iowarehouse"
	"github.com/gnames/dwhetl/pkg/errcode"
	"github.com/gnames/dwhetl/pkg/warehouse"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSession struct {
	conn warehouse.Conn
	cur  warehouse.Cursor
}

func newMock(t *testing.T) (sqlmock.Sqlmock, func() *testSession) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	open := func() *testSession {
		ctx := context.Background()
		wh := iowarehouse.NewFromDB(db)
		conn, err := wh.Connect(ctx)
		require.NoError(t, err)
		cur, err := conn.Cursor(ctx)
		require.NoError(t, err)
		return &testSession{conn: conn, cur: cur}
	}
	return mock, open
}

func TestSessionCommitsEachStatement(t *testing.T) {
	ctx := context.Background()
	mock, open := newMock(t)

	queries := []string{
		"COPY staging_events FROM 's3://bucket/log_data'",
		"INSERT INTO users SELECT DISTINCT user_id FROM staging_events",
	}
	for _, q := range queries {
		mock.ExpectBegin()
		mock.ExpectExec(q).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	s := open()
	for _, q := range queries {
		require.NoError(t, s.cur.Execute(ctx, q))
		require.NoError(t, s.conn.Commit(ctx))
	}
	require.NoError(t, s.cur.Close())
	require.NoError(t, s.conn.Close())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionCommitWithoutWork(t *testing.T) {
	ctx := context.Background()
	mock, open := newMock(t)

	s := open()
	assert.NoError(t, s.conn.Commit(ctx))
	assert.NoError(t, s.conn.Commit(ctx))
	require.NoError(t, s.conn.Close())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionCloseRollsBack(t *testing.T) {
	ctx := context.Background()
	mock, open := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM songs").
		WillReturnResult(sqlmock.NewResult(0, 10))
	mock.ExpectRollback()

	s := open()
	require.NoError(t, s.cur.Execute(ctx, "DELETE FROM songs"))
	require.NoError(t, s.conn.Close())
	// second Close does nothing
	require.NoError(t, s.conn.Close())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionExecuteError(t *testing.T) {
	ctx := context.Background()
	mock, open := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO time SELECT 1").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	s := open()
	err := s.cur.Execute(ctx, "INSERT INTO time SELECT 1")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	require.NoError(t, s.conn.Close())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionCommitError(t *testing.T) {
	ctx := context.Background()
	mock, open := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO artists SELECT 1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(assert.AnError)

	s := open()
	require.NoError(t, s.cur.Execute(ctx, "INSERT INTO artists SELECT 1"))
	err := s.conn.Commit(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	require.NoError(t, s.conn.Close())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionUseAfterClose(t *testing.T) {
	ctx := context.Background()
	_, open := newMock(t)

	s := open()
	require.NoError(t, s.cur.Close())
	err := s.cur.Execute(ctx, "SELECT 1")
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBCursorClosedError, gnErr.Code)

	require.NoError(t, s.conn.Close())

	_, err = s.conn.Cursor(ctx)
	require.Error(t, err)
	gnErr, ok = err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)

	err = s.conn.Commit(ctx)
	require.Error(t, err)
}

package services

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
)

// A minimal database/sql driver whose transactions are no-ops. It lets the
// transaction-orchestrating services run end to end against the repository
// fakes; any attempt to actually prepare a statement fails loudly.

type txStubDriver struct{}

func (txStubDriver) Open(string) (driver.Conn, error) { return txStubConn{}, nil }

type txStubConn struct{}

func (txStubConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("statements are not supported")
}
func (txStubConn) Close() error              { return nil }
func (txStubConn) Begin() (driver.Tx, error) { return txStubTx{}, nil }

type txStubTx struct{}

func (txStubTx) Commit() error   { return nil }
func (txStubTx) Rollback() error { return nil }

func init() {
	sql.Register("txstub", txStubDriver{})
}

func newStubDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("txstub", "")
	if err != nil {
		t.Fatalf("open stub db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

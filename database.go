// Copyright 2013 The Go-SQLite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmsqlite

import (
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/MarufSarker/mmsqlite/sqlite3"
)

// Flags accepted by Open. Zero means OpenReadWrite|OpenCreate.
const (
	OpenReadOnly  = sqlite3.OPEN_READONLY
	OpenReadWrite = sqlite3.OPEN_READWRITE
	OpenCreate    = sqlite3.OPEN_CREATE
	OpenURI       = sqlite3.OPEN_URI
	OpenMemory    = sqlite3.OPEN_MEMORY
	OpenNoMutex   = sqlite3.OPEN_NOMUTEX
	OpenFullMutex = sqlite3.OPEN_FULLMUTEX
)

// Database owns a single connection and hands it out to the statements it
// creates. All statements must be finalized before Close.
type Database struct {
	conn        *sqlite3.Conn
	log         lgr.L
	logging     bool
	busyTimeout time.Duration
}

// Option configures a Database.
type Option func(db *Database)

// WithLogger sets the logger passed on to statements. Default is lgr.Std.
func WithLogger(l lgr.L) Option {
	return func(db *Database) {
		if l == nil {
			l = lgr.NoOp
		}
		db.log = l
	}
}

// WithLogging sets the initial logging toggle.
func WithLogging(on bool) Option {
	return func(db *Database) { db.logging = on }
}

// WithBusyTimeout makes the connection retry locked tables for up to d.
func WithBusyTimeout(d time.Duration) Option {
	return func(db *Database) { db.busyTimeout = d }
}

// New returns a database that is not open yet.
func New(opts ...Option) *Database {
	db := &Database{log: lgr.Std}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Open opens the database at path, see Database.Open.
func Open(path string, flags int, opts ...Option) (*Database, error) {
	db := New(opts...)
	if err := db.Open(path, flags); err != nil {
		return nil, err
	}
	return db, nil
}

// Open connects to path, which can be a file name, a "file:" URI when OpenURI
// is set, or ":memory:". Opening a database that is already open fails with
// ErrConnection.
func (db *Database) Open(path string, flags int) error {
	if db.conn != nil {
		return opErrf(ErrConnection, "open", "database is already open")
	}
	conn, err := sqlite3.Open(path, flags)
	if err != nil {
		if db.logging {
			db.log.Logf("[WARN] can't open database %s, %v", path, err)
		}
		return opErr(ErrConnection, "open", err)
	}
	if db.busyTimeout > 0 {
		conn.BusyTimeout(db.busyTimeout)
	}
	db.conn = conn
	if db.logging {
		db.log.Logf("[DEBUG] opened database %s, sqlite %s", path, sqlite3.Version())
	}
	return nil
}

// Close closes the connection. It is safe to call on a closed database. If
// statements are still prepared, the connection is released once the last of
// them is finalized and the returned error wraps a BUSY engine error.
func (db *Database) Close() error {
	if db.conn == nil {
		return nil
	}
	conn := db.conn
	db.conn = nil
	if err := conn.Close(); err != nil {
		return opErr(ErrConnection, "close", err)
	}
	if db.logging {
		db.log.Logf("[DEBUG] closed database")
	}
	return nil
}

// Opened reports whether the database is open.
func (db *Database) Opened() bool { return db.conn.Valid() }

// Conn returns the underlying connection, nil when closed.
func (db *Database) Conn() *sqlite3.Conn { return db.conn }

// SetLogging turns logging on or off for statements created afterwards.
func (db *Database) SetLogging(on bool) { db.logging = on }

// Logging reports whether logging is enabled.
func (db *Database) Logging() bool { return db.logging }

// Statement returns a new statement on this database carrying its logger and
// logging toggle.
func (db *Database) Statement() *Statement {
	s := NewStatement(db.conn)
	s.SetLogger(db.log)
	s.SetLogging(db.logging)
	return s
}

// Execute runs sql with the parameters in row and returns all result rows.
func (db *Database) Execute(sql string, row *Row) ([]*Row, error) {
	if !db.Opened() {
		return nil, opErr(ErrConnection, "execute", nil)
	}
	return db.Statement().Execute(sql, row)
}

// LastInsertID returns the rowid of the most recent successful INSERT.
func (db *Database) LastInsertID() int64 { return db.conn.LastInsertId() }

// Changes returns the number of rows modified by the most recent INSERT,
// UPDATE or DELETE.
func (db *Database) Changes() int { return db.conn.RowsAffected() }

// TotalChanges returns the number of rows modified since the database was
// opened.
func (db *Database) TotalChanges() int { return db.conn.TotalRowsAffected() }

// AutoCommit reports whether the connection is outside of an explicit
// transaction.
func (db *Database) AutoCommit() bool { return db.conn.AutoCommit() }

// BusyTimeout changes the busy timeout of an open connection.
func (db *Database) BusyTimeout(d time.Duration) {
	db.busyTimeout = d
	db.conn.BusyTimeout(d)
}

// Limit changes a run-time limit, see sqlite3.Conn.Limit.
func (db *Database) Limit(id, value int) int { return db.conn.Limit(id, value) }

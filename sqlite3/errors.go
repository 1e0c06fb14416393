// Copyright 2013 The Go-SQLite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sqlite3

import (
	"errors"
	"fmt"

	"modernc.org/libc"
	lib "modernc.org/sqlite/lib"
)

// Result codes returned by the SQLite library.
// [http://www.sqlite.org/c3ref/c_abort.html]
const (
	OK         = lib.SQLITE_OK
	ERROR      = lib.SQLITE_ERROR
	INTERNAL   = lib.SQLITE_INTERNAL
	PERM       = lib.SQLITE_PERM
	ABORT      = lib.SQLITE_ABORT
	BUSY       = lib.SQLITE_BUSY
	LOCKED     = lib.SQLITE_LOCKED
	NOMEM      = lib.SQLITE_NOMEM
	READONLY   = lib.SQLITE_READONLY
	INTERRUPT  = lib.SQLITE_INTERRUPT
	IOERR      = lib.SQLITE_IOERR
	CORRUPT    = lib.SQLITE_CORRUPT
	NOTFOUND   = lib.SQLITE_NOTFOUND
	FULL       = lib.SQLITE_FULL
	CANTOPEN   = lib.SQLITE_CANTOPEN
	PROTOCOL   = lib.SQLITE_PROTOCOL
	EMPTY      = lib.SQLITE_EMPTY
	SCHEMA     = lib.SQLITE_SCHEMA
	TOOBIG     = lib.SQLITE_TOOBIG
	CONSTRAINT = lib.SQLITE_CONSTRAINT
	MISMATCH   = lib.SQLITE_MISMATCH
	MISUSE     = lib.SQLITE_MISUSE
	NOLFS      = lib.SQLITE_NOLFS
	AUTH       = lib.SQLITE_AUTH
	FORMAT     = lib.SQLITE_FORMAT
	RANGE      = lib.SQLITE_RANGE
	NOTADB     = lib.SQLITE_NOTADB
	ROW        = lib.SQLITE_ROW
	DONE       = lib.SQLITE_DONE
)

// Fundamental data types (storage classes) of column values.
// [http://www.sqlite.org/c3ref/c_blob.html]
const (
	INTEGER = lib.SQLITE_INTEGER
	FLOAT   = lib.SQLITE_FLOAT
	TEXT    = lib.SQLITE_TEXT
	BLOB    = lib.SQLITE_BLOB
	NULL    = lib.SQLITE_NULL
)

// Flags accepted by Open.
// [http://www.sqlite.org/c3ref/c_open_autoproxy.html]
const (
	OPEN_READONLY  = lib.SQLITE_OPEN_READONLY
	OPEN_READWRITE = lib.SQLITE_OPEN_READWRITE
	OPEN_CREATE    = lib.SQLITE_OPEN_CREATE
	OPEN_URI       = lib.SQLITE_OPEN_URI
	OPEN_MEMORY    = lib.SQLITE_OPEN_MEMORY
	OPEN_NOMUTEX   = lib.SQLITE_OPEN_NOMUTEX
	OPEN_FULLMUTEX = lib.SQLITE_OPEN_FULLMUTEX
)

// Run-time limit categories accepted by Conn.Limit.
// [http://www.sqlite.org/c3ref/c_limit_attached.html]
const (
	LIMIT_LENGTH          = lib.SQLITE_LIMIT_LENGTH
	LIMIT_SQL_LENGTH      = lib.SQLITE_LIMIT_SQL_LENGTH
	LIMIT_COLUMN          = lib.SQLITE_LIMIT_COLUMN
	LIMIT_VARIABLE_NUMBER = lib.SQLITE_LIMIT_VARIABLE_NUMBER
)

// ErrBadConn is returned when an operation is attempted on a closed connection.
var ErrBadConn = &Error{rc: MISUSE, ext: MISUSE, msg: "closed or invalid connection"}

// ErrBadStmt is returned when an operation is attempted on a finalized or
// otherwise invalid prepared statement.
var ErrBadStmt = &Error{rc: MISUSE, ext: MISUSE, msg: "closed or invalid statement"}

// Error is returned for all SQLite API result codes other than OK, ROW, and
// DONE. It carries the primary and extended result codes along with the
// message reported by the library at the time of the failure.
type Error struct {
	rc  int
	ext int
	msg string
}

// NewError creates a new Error instance using the specified result code and
// error message.
func NewError(rc int, msg string) *Error {
	return &Error{rc: rc, ext: rc, msg: msg}
}

// Code returns the primary SQLite result code.
func (err *Error) Code() int {
	return err.rc & 0xff
}

// ExtendedCode returns the extended result code. It is equal to the primary
// code when the library did not report anything more specific.
func (err *Error) ExtendedCode() int {
	return err.ext
}

// Message returns the error message reported by SQLite.
func (err *Error) Message() string {
	return err.msg
}

// Error implements the error interface.
func (err *Error) Error() string {
	return fmt.Sprintf("sqlite3: %s [%d]", err.msg, err.ext)
}

// ErrCode returns the primary result code carried by err, OK for a nil error,
// and ERROR for errors that did not originate from this package.
func ErrCode(err error) int {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code()
	}
	return ERROR
}

// libErr reports the error state of connection db after a call returned rc.
// The message and extended code are taken from the connection when available,
// otherwise from sqlite3_errstr.
func libErr(rc int32, c *Conn) error {
	if rc == OK || rc == ROW || rc == DONE {
		return nil
	}
	err := &Error{rc: int(rc), ext: int(rc)}
	if c != nil && c.db != 0 {
		if ext := int(lib.Xsqlite3_extended_errcode(c.tls, c.db)); ext&0xff == int(rc)&0xff {
			err.ext = ext
		}
		err.msg = libc.GoString(lib.Xsqlite3_errmsg(c.tls, c.db))
	}
	if err.msg == "" {
		err.msg = errstr(c, rc)
	}
	return err
}

// pkgErr reports an error originating in this package.
func pkgErr(rc int, format string, v ...any) error {
	return &Error{rc: rc, ext: rc, msg: fmt.Sprintf(format, v...)}
}

// errstr returns the English description of result code rc.
func errstr(c *Conn, rc int32) string {
	tls := (*libc.TLS)(nil)
	if c != nil {
		tls = c.tls
	}
	if tls == nil {
		tls = libc.NewTLS()
		defer tls.Close()
	}
	return libc.GoString(lib.Xsqlite3_errstr(tls, rc))
}

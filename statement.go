// Copyright 2013 The Go-SQLite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmsqlite

import (
	"errors"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/MarufSarker/mmsqlite/sqlite3"
)

// Statement drives one prepared statement at a time on a borrowed connection.
// It owns the prepared statement and must be finalized before the connection
// is closed. A Statement is not safe for concurrent use.
type Statement struct {
	conn *sqlite3.Conn
	stmt *sqlite3.Stmt
	log  lgr.L

	logging    bool
	hasRow     bool
	stepLogged bool
}

// NewStatement returns an empty statement for conn. Log output goes to lgr.Std
// once logging is enabled with SetLogging.
func NewStatement(conn *sqlite3.Conn) *Statement {
	return &Statement{conn: conn, log: lgr.Std}
}

// SetLogger replaces the logger. A nil logger discards all output.
func (s *Statement) SetLogger(l lgr.L) {
	if l == nil {
		l = lgr.NoOp
	}
	s.log = l
}

// SetLogging turns reporting of failed SQL, engine errors and expanded SQL on
// or off.
func (s *Statement) SetLogging(on bool) { s.logging = on }

// Logging reports whether logging is enabled.
func (s *Statement) Logging() bool { return s.logging }

// Prepared reports whether s holds a prepared statement that can be bound and
// stepped. Preparing text made only of whitespace or comments leaves s
// unprepared without an error.
func (s *Statement) Prepared() bool { return s.stmt.Valid() }

// HasRow reports whether the last Step produced a row.
func (s *Statement) HasRow() bool { return s.hasRow }

// SQL returns the text of the prepared statement.
func (s *Statement) SQL() string {
	if !s.Prepared() {
		return ""
	}
	return s.stmt.String()
}

// ExpandedSQL returns the text of the prepared statement with bound
// parameters replaced by their literal values.
func (s *Statement) ExpandedSQL() string {
	if !s.Prepared() {
		return ""
	}
	return s.stmt.ExpandedSQL()
}

// Prepare compiles the first statement in sql, replacing the statement held by
// s, if any, on success. Text after the first statement is ignored.
func (s *Statement) Prepare(sql string) error {
	if !s.conn.Valid() {
		return opErr(ErrConnection, "prepare", nil)
	}
	stmt, err := s.conn.Prepare(sql)
	if err != nil {
		if s.logging {
			s.log.Logf("[WARN] failed sql: %s", sql)
		}
		s.logError(err)
		return opErr(ErrPrepare, "prepare", err)
	}
	s.Finalize()
	s.stmt = stmt
	if s.logging && strings.TrimSpace(stmt.Tail) != "" {
		s.log.Logf("[DEBUG] ignored sql after first statement: %s", strings.TrimSpace(stmt.Tail))
	}
	return nil
}

// Bind binds the columns of row to the prepared statement, see Row.Bind. A nil
// row binds nothing.
func (s *Statement) Bind(row *Row) error {
	if !s.Prepared() {
		return opErr(ErrNotInitialized, "bind", nil)
	}
	if err := row.Bind(s.stmt); err != nil {
		s.logError(err)
		return err
	}
	return nil
}

// ClearBindings sets all parameters back to NULL. It does nothing when s is
// not prepared.
func (s *Statement) ClearBindings() error {
	if !s.Prepared() {
		return nil
	}
	if err := s.stmt.ClearBindings(); err != nil {
		s.logError(err)
		return opErr(ErrBind, "clear bindings", err)
	}
	return nil
}

// Step advances the statement and reports whether a row is available. The
// expanded SQL is logged before the first step after Prepare, Reset, or the
// end of the previous run.
func (s *Statement) Step() (bool, error) {
	if !s.Prepared() {
		return false, opErr(ErrNotInitialized, "step", nil)
	}
	if s.logging && !s.stepLogged {
		s.log.Logf("[INFO] expanded sql: %s", s.stmt.ExpandedSQL())
		s.stepLogged = true
	}
	row, err := s.stmt.Step()
	if err != nil {
		s.hasRow = false
		s.logError(err)
		return false, opErr(ErrStep, "step", err)
	}
	s.hasRow = row
	if !row {
		s.stepLogged = false
	}
	return row, nil
}

// Reset rewinds the statement so that it can be stepped again. Bindings are
// kept.
func (s *Statement) Reset() error {
	if !s.Prepared() {
		return opErr(ErrNotInitialized, "reset", nil)
	}
	s.hasRow = false
	s.stepLogged = false
	if err := s.stmt.Reset(); err != nil {
		s.logError(err)
		return opErr(ErrReset, "reset", err)
	}
	return nil
}

// Finalize releases the prepared statement. It is safe to call at any time and
// more than once.
func (s *Statement) Finalize() {
	if s.stmt != nil {
		// the result only repeats the outcome of the last step
		_ = s.stmt.Close()
		s.stmt = nil
	}
	s.hasRow = false
	s.stepLogged = false
}

// Row returns the columns of the current result row. SQL NULL becomes a
// KindNone column with an empty value, BLOB values are returned as TEXT.
// Column names are taken as reported by the engine and are not validated.
func (s *Statement) Row() (*Row, error) {
	if !s.Prepared() {
		return nil, opErr(ErrNotInitialized, "row", nil)
	}
	n := s.stmt.ColumnCount()
	row := &Row{cols: make(map[string]Column, n)}
	for i := 0; i < n; i++ {
		name, ok := s.stmt.ColumnName(i)
		if !ok {
			return nil, opErrf(ErrRead, "row", "no name for column %d", i)
		}

		var c Column
		switch typ := s.stmt.ColumnType(i); typ {
		case sqlite3.INTEGER:
			c = Int(s.stmt.ColumnInt64(i))
		case sqlite3.FLOAT:
			c = Float(s.stmt.ColumnDouble(i))
		case sqlite3.TEXT, sqlite3.BLOB:
			text, ok := s.stmt.ColumnText(i)
			if !ok {
				return nil, opErrf(ErrRead, "row", "no text for column %q", name)
			}
			c = Text(text)
		case sqlite3.NULL:
			c = Column{kind: KindNone}
		default:
			return nil, opErrf(ErrType, "row", "column %q has storage class %d", name, typ)
		}
		row.set(name, c)
	}
	return row, nil
}

// Execute prepares sql, binds row, and collects every result row. The
// statement is finalized before Execute returns, whatever the outcome.
func (s *Statement) Execute(sql string, row *Row) ([]*Row, error) {
	defer s.Finalize()

	if err := s.Prepare(sql); err != nil {
		return nil, err
	}
	if err := s.Bind(row); err != nil {
		return nil, err
	}
	rows := []*Row{}
	for {
		ok, err := s.Step()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		r, err := s.Row()
		if err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// logError reports an engine failure wrapped anywhere inside err.
func (s *Statement) logError(err error) {
	if !s.logging {
		return
	}
	var e *sqlite3.Error
	if !errors.As(err, &e) {
		return
	}
	s.log.Logf("[WARN] sqlite error, code [%d] extended code [%d] message [%s]", e.Code(), e.ExtendedCode(), e.Message())
}

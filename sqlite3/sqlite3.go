// Copyright 2013 The Go-SQLite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sqlite3

import (
	"sync"
	"time"
	"unsafe"

	"modernc.org/libc"
	"modernc.org/libc/sys/types"
	lib "modernc.org/sqlite/lib"
)

const ptrSize = types.Size_t(unsafe.Sizeof(uintptr(0)))

// initerr is used to indicate a fatal initialization error, which disables this
// package, but allows the rest of the program to continue running.
var (
	initOnce sync.Once
	initerr  error
)

// initlib calls sqlite3_initialize once per process.
// [http://www.sqlite.org/c3ref/initialize.html]
func initlib(tls *libc.TLS) error {
	initOnce.Do(func() {
		if rc := lib.Xsqlite3_initialize(tls); rc != OK {
			initerr = libErr(rc, nil)
		}
	})
	return initerr
}

// Version returns the SQLite version as a string in the format "X.Y.Z".
// [http://www.sqlite.org/c3ref/libversion.html]
func Version() string {
	return lib.SQLITE_VERSION
}

// VersionNum returns the SQLite version as an integer in the format X*1000000 +
// Y*1000 + Z.
func VersionNum() int {
	return lib.SQLITE_VERSION_NUMBER
}

// Conn is a connection handle. A Conn and all statements prepared on it share a
// single thread-local state and must not be used concurrently.
// [http://www.sqlite.org/c3ref/sqlite3.html]
type Conn struct {
	tls *libc.TLS
	db  uintptr
}

// Open creates a new connection to a SQLite database. The name can be 1) a path
// to a file, 2) a URI using the syntax described at http://www.sqlite.org/uri.html
// (requires OPEN_URI), or 3) the string ":memory:", which creates a temporary
// in-memory database. Flags of 0 mean OPEN_READWRITE|OPEN_CREATE.
// [http://www.sqlite.org/c3ref/open.html]
func Open(name string, flags int) (*Conn, error) {
	if flags == 0 {
		flags = OPEN_READWRITE | OPEN_CREATE
	}
	tls := libc.NewTLS()
	if err := initlib(tls); err != nil {
		tls.Close()
		return nil, err
	}

	cname, err := libc.CString(name)
	if err != nil {
		tls.Close()
		return nil, pkgErr(NOMEM, "cannot allocate database name: %v", err)
	}
	pdb := libc.Xmalloc(tls, ptrSize)
	if pdb == 0 {
		libc.Xfree(tls, cname)
		tls.Close()
		return nil, pkgErr(NOMEM, "out of memory")
	}
	rc := lib.Xsqlite3_open_v2(tls, cname, pdb, int32(flags), 0)
	db := *(*uintptr)(unsafe.Pointer(pdb))
	libc.Xfree(tls, pdb)
	libc.Xfree(tls, cname)

	c := &Conn{tls: tls, db: db}
	if rc != OK {
		// sqlite3_open_v2 may still return a handle just so the error can be
		// extracted from it.
		err := libErr(rc, c)
		if db != 0 {
			lib.Xsqlite3_close(tls, db)
		}
		tls.Close()
		return nil, err
	}
	lib.Xsqlite3_extended_result_codes(tls, db, 1)
	return c, nil
}

// Close releases all resources associated with the connection. If any prepared
// statements are still active, the connection becomes an unusable "zombie" and
// is closed after all remaining statements are finalized. A BUSY error code is
// returned in that case, which usually indicates a statement that was not
// properly released.
// [http://www.sqlite.org/c3ref/close.html]
func (c *Conn) Close() error {
	if db := c.db; db != 0 {
		tls := c.tls
		*c = Conn{}
		if rc := lib.Xsqlite3_close(tls, db); rc != OK {
			err := libErr(rc, &Conn{tls: tls, db: db})
			if rc == BUSY {
				// Live statements still reference tls, so it stays allocated.
				lib.Xsqlite3_close_v2(tls, db)
			}
			return err
		}
		tls.Close()
	}
	return nil
}

// Valid returns true if the connection is open.
func (c *Conn) Valid() bool {
	return c != nil && c.db != 0
}

// Prepare compiles the first statement in sql. Any remaining text after the
// first statement is saved in Stmt.Tail.
// [http://www.sqlite.org/c3ref/prepare.html]
func (c *Conn) Prepare(sql string) (*Stmt, error) {
	if !c.Valid() {
		return nil, ErrBadConn
	}
	return newStmt(c, sql)
}

// Exec executes one or more statements in sql by a single call to
// sqlite3_exec. Result rows, if any, are discarded.
// [http://www.sqlite.org/c3ref/exec.html]
func (c *Conn) Exec(sql string) error {
	if !c.Valid() {
		return ErrBadConn
	}
	csql, err := libc.CString(sql)
	if err != nil {
		return pkgErr(NOMEM, "cannot allocate sql text: %v", err)
	}
	defer libc.Xfree(c.tls, csql)
	if rc := lib.Xsqlite3_exec(c.tls, c.db, csql, 0, 0, 0); rc != OK {
		return libErr(rc, c)
	}
	return nil
}

// ErrCode returns the primary result code of the most recent failed API call
// on this connection.
// [http://www.sqlite.org/c3ref/errcode.html]
func (c *Conn) ErrCode() int {
	if !c.Valid() {
		return MISUSE
	}
	// extended result codes are enabled, so errcode is not masked by the library
	return int(lib.Xsqlite3_errcode(c.tls, c.db)) & 0xff
}

// ExtendedErrCode returns the extended result code of the most recent failed
// API call on this connection.
// [http://www.sqlite.org/c3ref/errcode.html]
func (c *Conn) ExtendedErrCode() int {
	if !c.Valid() {
		return MISUSE
	}
	return int(lib.Xsqlite3_extended_errcode(c.tls, c.db))
}

// ErrMsg returns the English-language text describing the most recent error.
// [http://www.sqlite.org/c3ref/errcode.html]
func (c *Conn) ErrMsg() string {
	if !c.Valid() {
		return ErrBadConn.msg
	}
	return libc.GoString(lib.Xsqlite3_errmsg(c.tls, c.db))
}

// AutoCommit returns true if the database connection is in auto-commit mode
// (i.e. outside of an explicit transaction started by BEGIN).
// [http://www.sqlite.org/c3ref/get_autocommit.html]
func (c *Conn) AutoCommit() bool {
	if !c.Valid() {
		return false
	}
	return lib.Xsqlite3_get_autocommit(c.tls, c.db) != 0
}

// LastInsertId returns the ROWID of the most recent successful INSERT
// statement.
// [http://www.sqlite.org/c3ref/last_insert_rowid.html]
func (c *Conn) LastInsertId() int64 {
	if !c.Valid() {
		return 0
	}
	return lib.Xsqlite3_last_insert_rowid(c.tls, c.db)
}

// RowsAffected returns the number of rows that were changed, inserted, or
// deleted by the most recent statement. Auxiliary changes caused by triggers or
// foreign key actions are not included.
// [http://www.sqlite.org/c3ref/changes.html]
func (c *Conn) RowsAffected() int {
	if !c.Valid() {
		return 0
	}
	return int(lib.Xsqlite3_changes(c.tls, c.db))
}

// TotalRowsAffected returns the number of rows that were changed, inserted, or
// deleted since the database was opened.
// [http://www.sqlite.org/c3ref/total_changes.html]
func (c *Conn) TotalRowsAffected() int {
	if !c.Valid() {
		return 0
	}
	return int(lib.Xsqlite3_total_changes(c.tls, c.db))
}

// BusyTimeout enables the built-in busy handler, which retries the table
// locking operation for the specified duration before aborting. The busy
// handler is disabled if d is negative or zero.
// [http://www.sqlite.org/c3ref/busy_timeout.html]
func (c *Conn) BusyTimeout(d time.Duration) {
	if c.Valid() {
		lib.Xsqlite3_busy_timeout(c.tls, c.db, int32(d/time.Millisecond))
	}
}

// Limit changes a per-connection resource usage or performance limit, specified
// by one of the LIMIT constants, returning its previous value. If the new value
// is negative, the limit is left unchanged and its current value is returned.
// [http://www.sqlite.org/c3ref/limit.html]
func (c *Conn) Limit(id, value int) (prev int) {
	if c.Valid() {
		prev = int(lib.Xsqlite3_limit(c.tls, c.db, int32(id), int32(value)))
	}
	return
}

// Stmt is a prepared statement handle. It keeps a reference to the connection
// that created it, but does not own it: every Stmt must be closed before its
// connection.
// [http://www.sqlite.org/c3ref/stmt.html]
type Stmt struct {
	Tail string // Uncompiled portion of the SQL string passed to Conn.Prepare

	conn *Conn
	tls  *libc.TLS
	stmt uintptr

	text    string // SQL text used to create this statement (minus the Tail)
	nVars   int    // Number of bound parameters (or maximum ?NNN value)
	haveRow bool   // Flag indicating row availability
}

// newStmt creates a new prepared statement.
func newStmt(c *Conn, sql string) (*Stmt, error) {
	csql, err := libc.CString(sql)
	if err != nil {
		return nil, pkgErr(NOMEM, "cannot allocate sql text: %v", err)
	}
	defer libc.Xfree(c.tls, csql)

	pp := libc.Xmalloc(c.tls, 2*ptrSize)
	if pp == 0 {
		return nil, pkgErr(NOMEM, "out of memory")
	}
	defer libc.Xfree(c.tls, pp)
	pstmt, ptail := pp, pp+uintptr(ptrSize)

	if rc := lib.Xsqlite3_prepare_v2(c.tls, c.db, csql, -1, pstmt, ptail); rc != OK {
		return nil, libErr(rc, c)
	}

	// stmt will be 0 if sql contained only comments or whitespace. s.Tail may
	// be useful to the caller, so s is still returned without an error.
	s := &Stmt{conn: c, tls: c.tls, stmt: *(*uintptr)(unsafe.Pointer(pstmt))}
	if s.stmt != 0 {
		s.nVars = int(lib.Xsqlite3_bind_parameter_count(c.tls, s.stmt))
	}
	if tail := *(*uintptr)(unsafe.Pointer(ptail)); tail != 0 {
		if off := int(tail - csql); off >= 0 && off < len(sql) {
			s.Tail = sql[off:]
		}
	}
	return s, nil
}

// Close releases all resources associated with the prepared statement. This
// method can be called at any point in the statement's life cycle. The returned
// error reflects the most recent evaluation of the statement, not a failure to
// release it.
// [http://www.sqlite.org/c3ref/finalize.html]
func (s *Stmt) Close() error {
	if stmt := s.stmt; stmt != 0 {
		// Tail, conn, and text keep their current values
		s.stmt = 0
		s.nVars = 0
		s.haveRow = false
		if rc := lib.Xsqlite3_finalize(s.tls, stmt); rc != OK {
			return libErr(rc, s.conn)
		}
	}
	return nil
}

// Conn returns the connection that that created this prepared statement.
func (s *Stmt) Conn() *Conn {
	return s.conn
}

// Valid returns true if the prepared statement can be executed. A new prepared
// statement may not be valid if the SQL string contained nothing but comments
// or whitespace.
func (s *Stmt) Valid() bool {
	return s != nil && s.stmt != 0
}

// Busy returns true if the prepared statement is in the middle of execution
// with a row available.
func (s *Stmt) Busy() bool {
	return s.haveRow
}

// ReadOnly returns true if the prepared statement makes no direct changes to
// the content of the database file.
// [http://www.sqlite.org/c3ref/stmt_readonly.html]
func (s *Stmt) ReadOnly() bool {
	return s.stmt == 0 || lib.Xsqlite3_stmt_readonly(s.tls, s.stmt) != 0
}

// String implements fmt.Stringer by returning the SQL text that was used to
// create this prepared statement.
// [http://www.sqlite.org/c3ref/sql.html]
func (s *Stmt) String() string {
	if s.text == "" && s.stmt != 0 {
		if text := lib.Xsqlite3_sql(s.tls, s.stmt); text != 0 {
			s.text = libc.GoString(text)
		}
	}
	return s.text
}

// ExpandedSQL returns the SQL text of the prepared statement with bound
// parameters replaced by their literal values.
// [http://www.sqlite.org/c3ref/expanded_sql.html]
func (s *Stmt) ExpandedSQL() string {
	if s.stmt == 0 {
		return ""
	}
	p := lib.Xsqlite3_expanded_sql(s.tls, s.stmt)
	if p == 0 {
		return ""
	}
	defer lib.Xsqlite3_free(s.tls, p)
	return libc.GoString(p)
}

// NumParams returns the number of bound parameters in the prepared statement.
// [http://www.sqlite.org/c3ref/bind_parameter_count.html]
func (s *Stmt) NumParams() int {
	return s.nVars
}

// Params returns the names of bound parameters in the prepared statement,
// including their prefix character. Unnamed parameters are reported as "".
// [http://www.sqlite.org/c3ref/bind_parameter_name.html]
func (s *Stmt) Params() []string {
	if s.nVars == 0 {
		return nil
	}
	names := make([]string, s.nVars)
	for i := range names {
		if name := lib.Xsqlite3_bind_parameter_name(s.tls, s.stmt, int32(i+1)); name != 0 {
			names[i] = libc.GoString(name)
		}
	}
	return names
}

// ParamIndex returns the index of the parameter with the given name, including
// its prefix (e.g. ":id"). Zero is returned if there is no such parameter.
// [http://www.sqlite.org/c3ref/bind_parameter_index.html]
func (s *Stmt) ParamIndex(name string) int {
	if s.stmt == 0 || s.nVars == 0 {
		return 0
	}
	cname, err := libc.CString(name)
	if err != nil {
		return 0
	}
	defer libc.Xfree(s.tls, cname)
	return int(lib.Xsqlite3_bind_parameter_index(s.tls, s.stmt, cname))
}

// BindInt64 binds v to parameter i (starting at 1).
// [http://www.sqlite.org/c3ref/bind_blob.html]
func (s *Stmt) BindInt64(i int, v int64) error {
	if s.stmt == 0 {
		return ErrBadStmt
	}
	return libErr(lib.Xsqlite3_bind_int64(s.tls, s.stmt, int32(i), v), s.conn)
}

// BindDouble binds v to parameter i (starting at 1).
// [http://www.sqlite.org/c3ref/bind_blob.html]
func (s *Stmt) BindDouble(i int, v float64) error {
	if s.stmt == 0 {
		return ErrBadStmt
	}
	return libErr(lib.Xsqlite3_bind_double(s.tls, s.stmt, int32(i), v), s.conn)
}

// BindText binds v to parameter i (starting at 1) as a UTF-8 text value.
// SQLite makes an internal copy, so v does not have to outlive the call.
// [http://www.sqlite.org/c3ref/bind_blob.html]
func (s *Stmt) BindText(i int, v string) error {
	if s.stmt == 0 {
		return ErrBadStmt
	}
	p, err := libc.CString(v)
	if err != nil {
		return pkgErr(NOMEM, "cannot allocate text for parameter %d: %v", i, err)
	}
	defer libc.Xfree(s.tls, p)
	rc := lib.Xsqlite3_bind_text(s.tls, s.stmt, int32(i), p, int32(len(v)), lib.SQLITE_TRANSIENT)
	return libErr(rc, s.conn)
}

// BindNull binds NULL to parameter i (starting at 1).
// [http://www.sqlite.org/c3ref/bind_blob.html]
func (s *Stmt) BindNull(i int) error {
	if s.stmt == 0 {
		return ErrBadStmt
	}
	return libErr(lib.Xsqlite3_bind_null(s.tls, s.stmt, int32(i)), s.conn)
}

// ClearBindings resets all bound parameters to NULL.
// [http://www.sqlite.org/c3ref/clear_bindings.html]
func (s *Stmt) ClearBindings() error {
	if s.stmt == 0 {
		return ErrBadStmt
	}
	return libErr(lib.Xsqlite3_clear_bindings(s.tls, s.stmt), s.conn)
}

// Step evaluates the next step in the statement's program. It returns true if
// a row is available, false when the statement ran to completion, and an error
// for any other result. Unlike Reset, a failed step leaves the statement as the
// library left it.
// [http://www.sqlite.org/c3ref/step.html]
func (s *Stmt) Step() (bool, error) {
	if s.stmt == 0 {
		return false, ErrBadStmt
	}
	switch rc := lib.Xsqlite3_step(s.tls, s.stmt); rc {
	case ROW:
		s.haveRow = true
	case DONE, OK:
		s.haveRow = false
	default:
		s.haveRow = false
		return false, libErr(rc, s.conn)
	}
	return s.haveRow, nil
}

// Reset returns the prepared statement to its initial state, ready to be
// re-executed. Bound parameter values are retained.
// [http://www.sqlite.org/c3ref/reset.html]
func (s *Stmt) Reset() error {
	if s.stmt == 0 {
		return ErrBadStmt
	}
	s.haveRow = false
	return libErr(lib.Xsqlite3_reset(s.tls, s.stmt), s.conn)
}

// ColumnCount returns the number of columns produced by the prepared statement.
// [http://www.sqlite.org/c3ref/column_count.html]
func (s *Stmt) ColumnCount() int {
	if s.stmt == 0 {
		return 0
	}
	return int(lib.Xsqlite3_column_count(s.tls, s.stmt))
}

// ColumnName returns the name of column i (starting at 0). The second result is
// false if the library returned a NULL pointer.
// [http://www.sqlite.org/c3ref/column_name.html]
func (s *Stmt) ColumnName(i int) (string, bool) {
	if s.stmt == 0 {
		return "", false
	}
	p := lib.Xsqlite3_column_name(s.tls, s.stmt, int32(i))
	if p == 0 {
		return "", false
	}
	return libc.GoString(p), true
}

// ColumnType returns the data type code of column i in the current row (one of
// INTEGER, FLOAT, TEXT, BLOB, or NULL). The value becomes undefined after a
// type conversion, so it must be read before any other column accessor.
// [http://www.sqlite.org/c3ref/column_blob.html]
func (s *Stmt) ColumnType(i int) int {
	if s.stmt == 0 {
		return NULL
	}
	return int(lib.Xsqlite3_column_type(s.tls, s.stmt, int32(i)))
}

// ColumnInt64 returns the value of column i as a 64-bit integer.
// [http://www.sqlite.org/c3ref/column_blob.html]
func (s *Stmt) ColumnInt64(i int) int64 {
	if s.stmt == 0 {
		return 0
	}
	return lib.Xsqlite3_column_int64(s.tls, s.stmt, int32(i))
}

// ColumnDouble returns the value of column i as a float64.
// [http://www.sqlite.org/c3ref/column_blob.html]
func (s *Stmt) ColumnDouble(i int) float64 {
	if s.stmt == 0 {
		return 0
	}
	return lib.Xsqlite3_column_double(s.tls, s.stmt, int32(i))
}

// ColumnText returns a Go copy of column i as text. The second result is false
// if the library returned a NULL buffer.
// [http://www.sqlite.org/c3ref/column_blob.html]
func (s *Stmt) ColumnText(i int) (string, bool) {
	if s.stmt == 0 {
		return "", false
	}
	p := lib.Xsqlite3_column_text(s.tls, s.stmt, int32(i))
	if p == 0 {
		return "", false
	}
	n := int(lib.Xsqlite3_column_bytes(s.tls, s.stmt, int32(i)))
	return goStrN(p, n), true
}

// goStrN copies n bytes of C memory at p into a new Go string.
func goStrN(p uintptr, n int) string {
	if n <= 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
}

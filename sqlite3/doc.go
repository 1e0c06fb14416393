// Copyright 2013 The Go-SQLite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sqlite3 provides a thin interface to the SQLite version 3 C API.

Each exported method maps to one library call (or a short, fixed sequence of
them), and result codes other than OK, ROW, and DONE are reported as *Error
values carrying the primary and extended result codes. Higher-level concerns
such as value conversion, identifier checks, and logging belong to the caller.

Installation

The package calls the SQLite amalgamation transpiled to Go by modernc.org/sqlite,
so no C toolchain is needed to build it and no shared library has to be present
at run time. Version and VersionNum report the version of the embedded library.

Concurrency

A connection and all statements prepared on it share the same thread-local
state and may NOT be used concurrently from multiple goroutines without external
locking. Separate connections may be used concurrently, even if they access the
same database file:

	// ERROR (without any extra synchronization)
	c, _ := sqlite3.Open("./sqlite.db", 0)
	go use(c)
	go use(c)

	// OK
	c1, _ := sqlite3.Open("./sqlite.db", 0)
	c2, _ := sqlite3.Open("./sqlite.db", 0)
	go use(c1)
	go use(c2)

Resources

Connections and statements hold memory allocated outside of the Go heap and are
not released by the garbage collector. Every Stmt must be closed before the Conn
that created it. Closing a connection with live statements returns a BUSY error
and defers the release of the connection until the last statement is closed.

Statements

A typical statement life cycle, with the error-handling code omitted for
brevity:

	c, _ := sqlite3.Open(":memory:", 0)
	c.Exec("CREATE TABLE x(a, b)")

	s, _ := c.Prepare("INSERT INTO x VALUES(:a, :b)")
	s.BindInt64(s.ParamIndex(":a"), 1)
	s.BindText(s.ParamIndex(":b"), "demo")
	s.Step()
	s.Close()

	s, _ = c.Prepare("SELECT a, b FROM x")
	for row, err := s.Step(); row && err == nil; row, err = s.Step() {
		a := s.ColumnInt64(0)
		b, _ := s.ColumnText(1)
		fmt.Println(a, b)
	}
	s.Close()
	c.Close()

Step does not reset the statement after an error or after reaching DONE; call
Reset before evaluating the statement again.
*/
package sqlite3

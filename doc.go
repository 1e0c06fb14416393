// Copyright 2013 The Go-SQLite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package mmsqlite binds named, typed values into SQLite prepared statements and
turns result rows back into typed values.

Values

A Column holds one value tagged INTEGER, REAL, TEXT, or NONE (SQL NULL).
Numbers are stored in canonical string form, and converting them back with
ParseInt or ParseFloat only succeeds when the string prints back unchanged, so
"007" or "3.140000" are rejected rather than silently normalized.

A Row maps names to columns. Every name supplied by the caller must be a plain
identifier (a letter followed by letters, digits, or underscores) or the
literal COUNT(*), see ValidateIdentifier. Binding a row fills the ":name"
parameter of each column, where name is the column's own parameter name or,
when it has none, its key in the row. Parameters missing from the SQL text are
skipped.

Statements

	db, _ := mmsqlite.Open(":memory:", 0)
	defer db.Close()

	db.Execute("CREATE TABLE t(id INTEGER, name TEXT)", nil)

	row := mmsqlite.NewRow()
	row.Append("id", mmsqlite.Int(1))
	row.Append("name", mmsqlite.Text("one"))
	db.Execute("INSERT INTO t VALUES(:id, :name)", row)

	rows, _ := db.Execute("SELECT name FROM t WHERE id = :id", row)
	for _, r := range rows {
		name, _ := r.Get("name")
		fmt.Println(name.Value())
	}

Database.Execute and Statement.Execute always finalize the prepared statement.
The step-by-step API (Prepare, Bind, Step, Row, Reset, Finalize) leaves cleanup
to the caller.

Errors

Every error matches one of ErrConnection, ErrIdentifier, ErrType, ErrPrepare,
ErrBind, ErrNotInitialized, ErrStep, ErrReset, ErrValueFormat, or ErrRead with
errors.Is. Engine failures also unwrap to *sqlite3.Error.
*/
package mmsqlite

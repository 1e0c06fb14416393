// Copyright 2013 The Go-SQLite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmsqlite_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarufSarker/mmsqlite"
	"github.com/MarufSarker/mmsqlite/sqlite3"
)

func TestDatabaseOpenClose(t *testing.T) {
	db := mmsqlite.New()
	assert.False(t, db.Opened())
	assert.Nil(t, db.Conn())

	_, err := db.Execute("SELECT 1", nil)
	assert.True(t, errors.Is(err, mmsqlite.ErrConnection), "unexpected error %v", err)
	err = db.Statement().Prepare("SELECT 1")
	assert.True(t, errors.Is(err, mmsqlite.ErrConnection), "unexpected error %v", err)

	require.NoError(t, db.Open(":memory:", 0))
	assert.True(t, db.Opened())
	assert.NotNil(t, db.Conn())

	err = db.Open(":memory:", 0)
	assert.True(t, errors.Is(err, mmsqlite.ErrConnection), "unexpected error %v", err)
	assert.True(t, db.Opened(), "failed re-open keeps the connection")

	require.NoError(t, db.Close())
	assert.False(t, db.Opened())
	require.NoError(t, db.Close())

	_, err = db.Execute("SELECT 1", nil)
	assert.True(t, errors.Is(err, mmsqlite.ErrConnection), "unexpected error %v", err)

	// can be opened again after close
	require.NoError(t, db.Open(":memory:", 0))
	require.NoError(t, db.Close())
}

func TestDatabaseOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "db.sqlite")
	db, err := mmsqlite.Open(path, mmsqlite.OpenReadWrite)
	require.Error(t, err)
	assert.Nil(t, db)
	assert.True(t, errors.Is(err, mmsqlite.ErrConnection), "unexpected error %v", err)
	assert.Equal(t, sqlite3.CANTOPEN, sqlite3.ErrCode(err))
}

func TestDatabaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := mmsqlite.Open(path, mmsqlite.OpenReadWrite|mmsqlite.OpenCreate, mmsqlite.WithBusyTimeout(time.Second))
	require.NoError(t, err)
	mustExec(t, db, "CREATE TABLE kv(k TEXT PRIMARY KEY, v)")
	_, err = db.Execute("INSERT INTO kv VALUES(:k, :v)", row(t, "k", mmsqlite.Text("pi"), "v", mmsqlite.Float(3.14)))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// read-only reopen sees the data and refuses writes
	db, err = mmsqlite.Open(path, mmsqlite.OpenReadOnly)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Execute("SELECT v FROM kv WHERE k = :k", row(t, "k", mmsqlite.Text("pi")))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	v, _ := rows[0].Get("v")
	assert.Equal(t, mmsqlite.KindReal, v.Kind())
	assert.Equal(t, "3.14", v.Value())

	_, err = db.Execute("DELETE FROM kv", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mmsqlite.ErrStep), "unexpected error %v", err)
	assert.Equal(t, sqlite3.READONLY, sqlite3.ErrCode(err))
}

func TestDatabaseInfo(t *testing.T) {
	db := openDB(t)
	mustExec(t, db, "CREATE TABLE t(x)")
	assert.True(t, db.AutoCommit())

	mustExec(t, db, "BEGIN")
	assert.False(t, db.AutoCommit())
	mustExec(t, db, "INSERT INTO t VALUES(1), (2), (3)")
	mustExec(t, db, "COMMIT")
	assert.True(t, db.AutoCommit())
	assert.Equal(t, int64(3), db.LastInsertID())

	mustExec(t, db, "UPDATE t SET x = x + 1 WHERE x > 1")
	assert.Equal(t, 2, db.Changes())
	assert.Equal(t, 5, db.TotalChanges())

	db.BusyTimeout(10 * time.Millisecond)
	prev := db.Limit(sqlite3.LIMIT_VARIABLE_NUMBER, 1)
	assert.Positive(t, prev)
	_, err := db.Execute("SELECT :a, :b", nil)
	assert.True(t, errors.Is(err, mmsqlite.ErrPrepare), "unexpected error %v", err)
}

func TestDatabaseCloseBusy(t *testing.T) {
	db, err := mmsqlite.Open(":memory:", 0)
	require.NoError(t, err)

	s := db.Statement()
	require.NoError(t, s.Prepare("SELECT 1"))

	err = db.Close()
	require.Error(t, err)
	assert.True(t, errors.Is(err, mmsqlite.ErrConnection), "unexpected error %v", err)
	assert.Equal(t, sqlite3.BUSY, sqlite3.ErrCode(err))
	assert.False(t, db.Opened())

	s.Finalize()
}

func TestVersion(t *testing.T) {
	assert.Equal(t, mmsqlite.Version{Major: 1, Minor: 0, Patch: 0}, mmsqlite.CurrentVersion())
	assert.Equal(t, "1.0.0", mmsqlite.VersionString)
	assert.True(t, strings.HasPrefix(mmsqlite.EngineVersion(), "3."), mmsqlite.EngineVersion())
}

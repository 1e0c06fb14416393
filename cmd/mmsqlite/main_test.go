// Copyright 2013 The Go-SQLite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarufSarker/mmsqlite"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func Test_main(t *testing.T) {
	code := -1
	exitFunc = func(c int) { code = c }
	defer func() { exitFunc = os.Exit }()

	t.Run("select", func(t *testing.T) {
		code = -1
		os.Args = []string{"mmsqlite", "--db=:memory:", "-p", "x:42", "SELECT :x AS v"}
		out := captureStdout(t, main)
		assert.Equal(t, -1, code, "exit not called")
		assert.Contains(t, out, "[1] v=42\n")
		assert.Contains(t, out, "1 row(s)\n")
	})

	t.Run("failed statement", func(t *testing.T) {
		code = -1
		os.Args = []string{"mmsqlite", "SELEC 1"}
		captureStdout(t, main)
		assert.Equal(t, 1, code)
	})

	t.Run("version", func(t *testing.T) {
		code = -1
		os.Args = []string{"mmsqlite", "--version"}
		out := captureStdout(t, main)
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "mmsqlite "+mmsqlite.VersionString)
	})

	t.Run("bad flag", func(t *testing.T) {
		code = -1
		os.Args = []string{"mmsqlite", "--no-such-flag"}
		captureStdout(t, main)
		assert.Equal(t, 1, code)
	})
}

func Test_run(t *testing.T) {
	opts := options{
		Params: map[string]string{"a": "1", "b": "2.5", "c": "x"},
		Text:   map[string]string{"d": "007"},
	}
	opts.PositionalArgs.SQL = []string{
		"CREATE TABLE t(a, b, c, d)",
		"INSERT INTO t VALUES(:a, :b, :c, :d)",
		"SELECT typeof(a) AS ta, typeof(b) AS tb, typeof(c) AS tc, d FROM t",
		"SELECT a FROM t WHERE a > 100",
	}

	var out bytes.Buffer
	require.NoError(t, run(&out, opts))
	assert.Equal(t, "0 row(s) affected\n"+
		"1 row(s) affected\n"+
		"[1] d=007 ta=integer tb=real tc=text\n"+
		"1 row(s)\n"+
		"0 row(s) affected\n", out.String())
}

func Test_runKeepGoing(t *testing.T) {
	opts := options{}
	opts.PositionalArgs.SQL = []string{"SELEC 1", "SELECT 2 AS two", "SELECT * FROM missing"}

	var out bytes.Buffer
	err := run(&out, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement 1 failed")
	assert.NotContains(t, out.String(), "two=2")

	opts.KeepGoing = true
	out.Reset()
	err = run(&out, opts)
	require.Error(t, err)
	assert.Contains(t, out.String(), "[1] two=2\n")
	assert.Contains(t, err.Error(), "2 errors occurred")
	assert.Contains(t, err.Error(), "statement 1 failed")
	assert.Contains(t, err.Error(), "statement 3 failed")
	assert.True(t, errors.Is(err, mmsqlite.ErrPrepare))
}

func Test_runWithConfig(t *testing.T) {
	dir := t.TempDir()
	dbFile := filepath.Join(dir, "test.db")
	confFile := filepath.Join(dir, "conf.yml")
	conf := "database: " + dbFile + "\n" +
		"busy_timeout: 1s\n" +
		"init:\n" +
		"  - CREATE TABLE IF NOT EXISTS kv(k TEXT PRIMARY KEY, v)\n" +
		"  - INSERT OR REPLACE INTO kv VALUES('one', 1)\n"
	require.NoError(t, os.WriteFile(confFile, []byte(conf), 0o600))

	opts := options{Config: confFile, Text: map[string]string{"k": "one"}}
	opts.PositionalArgs.SQL = []string{"SELECT v FROM kv WHERE k = :k"}

	var out bytes.Buffer
	require.NoError(t, run(&out, opts))
	assert.Equal(t, "[1] v=1\n1 row(s)\n", out.String())

	// init alone is enough
	opts.PositionalArgs.SQL = nil
	out.Reset()
	require.NoError(t, run(&out, opts))
	assert.Empty(t, out.String())

	// read-only from the command line wins over the config
	opts.ReadOnly = true
	opts.PositionalArgs.SQL = []string{"SELECT 1"}
	err := run(&out, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init statement")
	assert.Contains(t, err.Error(), "readonly")
}

func Test_runErrors(t *testing.T) {
	var out bytes.Buffer

	err := run(&out, options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to execute")

	opts := options{Params: map[string]string{"1bad": "x"}}
	opts.PositionalArgs.SQL = []string{"SELECT 1"}
	err = run(&out, opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mmsqlite.ErrIdentifier))

	opts = options{DB: filepath.Join(t.TempDir(), "missing", "x.db"), ReadOnly: true}
	opts.PositionalArgs.SQL = []string{"SELECT 1"}
	err = run(&out, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't open database")

	opts = options{Config: filepath.Join(t.TempDir(), "missing.yml")}
	err = run(&out, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't load config")
}

func Test_makeSettings(t *testing.T) {
	st, err := makeSettings(options{})
	require.NoError(t, err)
	assert.Equal(t, ":memory:", st.path)
	assert.Equal(t, mmsqlite.OpenReadWrite|mmsqlite.OpenCreate, st.flags)
	assert.Equal(t, time.Duration(0), st.timeout)
	assert.False(t, st.logging)

	st, err = makeSettings(options{DB: "x.db", ReadOnly: true, BusyTimeout: time.Second, LogSQL: true})
	require.NoError(t, err)
	assert.Equal(t, "x.db", st.path)
	assert.Equal(t, mmsqlite.OpenReadOnly, st.flags)
	assert.Equal(t, time.Second, st.timeout)
	assert.True(t, st.logging)
}

func Test_inferColumn(t *testing.T) {
	tbl := []struct {
		in    string
		kind  mmsqlite.Kind
		value string
	}{
		{"42", mmsqlite.KindInteger, "42"},
		{"-7", mmsqlite.KindInteger, "-7"},
		{"2.5", mmsqlite.KindReal, "2.5"},
		{"1e+21", mmsqlite.KindReal, "1e+21"},
		{"007", mmsqlite.KindText, "007"},
		{"1.0", mmsqlite.KindText, "1.0"},
		{"NaN", mmsqlite.KindText, "NaN"},
		{"+Inf", mmsqlite.KindText, "+Inf"},
		{"hello", mmsqlite.KindText, "hello"},
		{"", mmsqlite.KindText, ""},
	}
	for _, tt := range tbl {
		t.Run(tt.in, func(t *testing.T) {
			c := inferColumn(tt.in)
			assert.Equal(t, tt.kind, c.Kind())
			assert.Equal(t, tt.value, c.Value())
		})
	}
}

func Test_paramsRow(t *testing.T) {
	row, err := paramsRow(map[string]string{"a": "1", "b": "2"}, map[string]string{"b": "two"})
	require.NoError(t, err)
	assert.Equal(t, "a=1 b=two", row.String())

	_, err = paramsRow(map[string]string{"a b": "1"}, map[string]string{"": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")
}

// captureStdout captures everything written to stdout within the function fn
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	defer func() { os.Stdout = old }()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

// Copyright 2013 The Go-SQLite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmsqlite_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarufSarker/mmsqlite"
)

func TestColumnConstructors(t *testing.T) {
	tbl := []struct {
		name  string
		col   mmsqlite.Column
		value string
		kind  mmsqlite.Kind
	}{
		{"int", mmsqlite.Int(-7), "-7", mmsqlite.KindInteger},
		{"float", mmsqlite.Float(2.5), "2.5", mmsqlite.KindReal},
		{"text", mmsqlite.Text("hello"), "hello", mmsqlite.KindText},
		{"empty text", mmsqlite.Text(""), "", mmsqlite.KindText},
		{"zero", mmsqlite.Column{}, "", mmsqlite.KindNone},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.value, tt.col.Value())
			assert.Equal(t, tt.kind, tt.col.Kind())
			assert.Equal(t, "", tt.col.Parameter())
			assert.Equal(t, tt.kind == mmsqlite.KindNone, tt.col.IsNull())
		})
	}
}

func TestNewColumn(t *testing.T) {
	c, err := mmsqlite.NewColumn("12", mmsqlite.KindInteger, "id")
	require.NoError(t, err)
	assert.Equal(t, "12", c.Value())
	assert.Equal(t, mmsqlite.KindInteger, c.Kind())
	assert.Equal(t, "id", c.Parameter())

	c, err = mmsqlite.NewColumn("x", mmsqlite.KindText, "")
	require.NoError(t, err)
	assert.Equal(t, "", c.Parameter())

	// numbers are checked on use, not on construction
	c, err = mmsqlite.NewColumn("007", mmsqlite.KindInteger, "")
	require.NoError(t, err)
	_, err = c.Int()
	assert.True(t, errors.Is(err, mmsqlite.ErrValueFormat))

	_, err = mmsqlite.NewColumn("", mmsqlite.KindNone, "")
	assert.True(t, errors.Is(err, mmsqlite.ErrType), "unexpected error %v", err)
	_, err = mmsqlite.NewColumn("1", mmsqlite.Kind(42), "")
	assert.True(t, errors.Is(err, mmsqlite.ErrType), "unexpected error %v", err)
	_, err = mmsqlite.NewColumn("1", mmsqlite.KindInteger, "1bad")
	assert.True(t, errors.Is(err, mmsqlite.ErrIdentifier), "unexpected error %v", err)
}

func TestColumnMutators(t *testing.T) {
	c := mmsqlite.Text("a")

	c.SetInt(5)
	assert.Equal(t, "5", c.Value())
	assert.Equal(t, mmsqlite.KindInteger, c.Kind())

	c.SetFloat(0.25)
	assert.Equal(t, "0.25", c.Value())
	assert.Equal(t, mmsqlite.KindReal, c.Kind())

	c.SetText("b")
	assert.Equal(t, "b", c.Value())
	assert.Equal(t, mmsqlite.KindText, c.Kind())

	require.NoError(t, c.SetValue("9", mmsqlite.KindInteger))
	assert.Equal(t, "9", c.Value())
	assert.Equal(t, mmsqlite.KindInteger, c.Kind())

	// a rejected kind leaves the pair untouched
	err := c.SetValue("", mmsqlite.KindNone)
	assert.True(t, errors.Is(err, mmsqlite.ErrType))
	assert.Equal(t, "9", c.Value())
	assert.Equal(t, mmsqlite.KindInteger, c.Kind())

	require.NoError(t, c.SetParam("p1"))
	assert.Equal(t, "p1", c.Parameter())
	assert.True(t, errors.Is(c.SetParam(""), mmsqlite.ErrIdentifier))
	assert.True(t, errors.Is(c.SetParam("p-2"), mmsqlite.ErrIdentifier))
	assert.Equal(t, "p1", c.Parameter())
}

func TestColumnNamed(t *testing.T) {
	c := mmsqlite.Int(1)
	n, err := c.Named("x")
	require.NoError(t, err)
	assert.Equal(t, "x", n.Parameter())
	assert.Equal(t, "", c.Parameter(), "original is not modified")

	_, err = c.Named("x y")
	assert.True(t, errors.Is(err, mmsqlite.ErrIdentifier))
}

func TestColumnConversions(t *testing.T) {
	v, err := mmsqlite.Int(42).Int()
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	f, err := mmsqlite.Float(0.5).Float()
	require.NoError(t, err)
	assert.Equal(t, 0.5, f)

	_, err = mmsqlite.Text("abc").Int()
	assert.True(t, errors.Is(err, mmsqlite.ErrValueFormat))
	_, err = mmsqlite.Text("3.140000").Float()
	assert.True(t, errors.Is(err, mmsqlite.ErrValueFormat))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "NONE", mmsqlite.KindNone.String())
	assert.Equal(t, "INTEGER", mmsqlite.KindInteger.String())
	assert.Equal(t, "REAL", mmsqlite.KindReal.String())
	assert.Equal(t, "TEXT", mmsqlite.KindText.String())
	assert.Equal(t, "Kind(9)", mmsqlite.Kind(9).String())
}

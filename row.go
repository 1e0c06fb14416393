// Copyright 2013 The Go-SQLite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmsqlite

import (
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/MarufSarker/mmsqlite/sqlite3"
)

// Row is a set of named columns. Names are unique, a later Append replaces the
// earlier column, and iteration through Names is in lexicographic order.
// The zero value is an empty row ready to use.
type Row struct {
	cols map[string]Column
}

// NewRow returns an empty row.
func NewRow() *Row {
	return &Row{cols: map[string]Column{}}
}

// RowOf returns a row holding a single column.
func RowOf(name string, c Column) (*Row, error) {
	r := NewRow()
	if err := r.Append(name, c); err != nil {
		return nil, err
	}
	return r, nil
}

// RowFromMap returns a row holding all columns of m. Every invalid name is
// reported, not just the first one.
func RowFromMap(m map[string]Column) (*Row, error) {
	r := &Row{cols: make(map[string]Column, len(m))}
	var errs *multierror.Error
	for name, c := range m {
		if err := ValidateIdentifier(name); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		r.cols[name] = c
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return r, nil
}

// Append validates name and stores c under it.
func (r *Row) Append(name string, c Column) error {
	if err := ValidateIdentifier(name); err != nil {
		return err
	}
	r.set(name, c)
	return nil
}

func (r *Row) set(name string, c Column) {
	if r.cols == nil {
		r.cols = map[string]Column{}
	}
	r.cols[name] = c
}

// Columns returns a copy of the name to column mapping.
func (r *Row) Columns() map[string]Column {
	m := make(map[string]Column, r.Len())
	if r != nil {
		for k, v := range r.cols {
			m[k] = v
		}
	}
	return m
}

// Get returns the column stored under name.
func (r *Row) Get(name string) (Column, bool) {
	if r == nil {
		return Column{}, false
	}
	c, ok := r.cols[name]
	return c, ok
}

// Len returns the number of columns.
func (r *Row) Len() int {
	if r == nil {
		return 0
	}
	return len(r.cols)
}

// Names returns the column names in lexicographic order.
func (r *Row) Names() []string {
	if r.Len() == 0 {
		return nil
	}
	names := make([]string, 0, len(r.cols))
	for k := range r.cols {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Bind binds every column of r to s. A column without its own parameter name
// is bound to the parameter named after its key, so {"x": Int(42)} fills ":x".
// Binding stops at the first failure.
func (r *Row) Bind(s *sqlite3.Stmt) error {
	for _, name := range r.Names() {
		c := r.cols[name]
		param := c.param
		if param == "" {
			param = name
		}
		if err := c.bind(s, param); err != nil {
			return err
		}
	}
	return nil
}

// String formats the row as space separated name=value pairs.
func (r *Row) String() string {
	var b strings.Builder
	for i, name := range r.Names() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(name)
		b.WriteByte('=')
		if c := r.cols[name]; c.IsNull() {
			b.WriteString("NULL")
		} else {
			b.WriteString(c.value)
		}
	}
	return b.String()
}

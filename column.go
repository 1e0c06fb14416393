// Copyright 2013 The Go-SQLite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmsqlite

import (
	"github.com/MarufSarker/mmsqlite/sqlite3"
)

// Kind is the type tag of a Column value.
type Kind int

// Value kinds. KindNone is the zero value and marks SQL NULL in result rows.
const (
	KindNone Kind = iota
	KindInteger
	KindReal
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "NONE"
	case KindInteger:
		return "INTEGER"
	case KindReal:
		return "REAL"
	case KindText:
		return "TEXT"
	}
	return "Kind(" + FormatInt(int64(k)) + ")"
}

// Column is a typed scalar value with an optional bind parameter name. Numbers
// are kept in their canonical string form, see FormatInt and FormatFloat.
type Column struct {
	value string
	kind  Kind
	param string
}

// Int returns an INTEGER column.
func Int(v int64) Column {
	return Column{value: FormatInt(v), kind: KindInteger}
}

// Float returns a REAL column.
func Float(v float64) Column {
	return Column{value: FormatFloat(v), kind: KindReal}
}

// Text returns a TEXT column.
func Text(v string) Column {
	return Column{value: v, kind: KindText}
}

// NewColumn creates a column from a raw value and its kind. Only KindInteger,
// KindReal and KindText are accepted. An empty param leaves the column unbound.
// Numeric values are not checked here; a non-canonical value fails when the
// column is bound or converted.
func NewColumn(value string, kind Kind, param string) (Column, error) {
	var c Column
	if err := c.SetValue(value, kind); err != nil {
		return Column{}, err
	}
	if param != "" {
		if err := c.SetParam(param); err != nil {
			return Column{}, err
		}
	}
	return c, nil
}

// Named returns a copy of c bound to parameter name.
func (c Column) Named(name string) (Column, error) {
	if err := c.SetParam(name); err != nil {
		return Column{}, err
	}
	return c, nil
}

// Value returns the stored value in its string form. It is empty for NULL.
func (c Column) Value() string { return c.value }

// Kind returns the type tag of the stored value.
func (c Column) Kind() Kind { return c.kind }

// Parameter returns the bind parameter name without the ':' prefix.
func (c Column) Parameter() string { return c.param }

// IsNull reports whether c holds an SQL NULL.
func (c Column) IsNull() bool { return c.kind == KindNone }

// String implements fmt.Stringer.
func (c Column) String() string { return c.value }

// SetInt replaces the value with an integer.
func (c *Column) SetInt(v int64) {
	c.value, c.kind = FormatInt(v), KindInteger
}

// SetFloat replaces the value with a real number.
func (c *Column) SetFloat(v float64) {
	c.value, c.kind = FormatFloat(v), KindReal
}

// SetText replaces the value with text.
func (c *Column) SetText(v string) {
	c.value, c.kind = v, KindText
}

// SetValue replaces the value and its kind together. The column is left
// unchanged if kind is not one of KindInteger, KindReal or KindText.
func (c *Column) SetValue(value string, kind Kind) error {
	switch kind {
	case KindInteger, KindReal, KindText:
		c.value, c.kind = value, kind
		return nil
	}
	return opErrf(ErrType, "set value", "kind %s", kind)
}

// SetParam sets the bind parameter name after validating it.
func (c *Column) SetParam(name string) error {
	if err := ValidateIdentifier(name); err != nil {
		return err
	}
	c.param = name
	return nil
}

// Int converts the value to an integer.
func (c Column) Int() (int64, error) {
	return ParseInt(c.value)
}

// Float converts the value to a real number.
func (c Column) Float() (float64, error) {
	return ParseFloat(c.value)
}

// Bind binds the value to the ":name" parameter of s, where name is the
// column's parameter. Columns without a parameter, and parameters that s does
// not reference, are skipped.
func (c Column) Bind(s *sqlite3.Stmt) error {
	return c.bind(s, c.param)
}

func (c Column) bind(s *sqlite3.Stmt, name string) error {
	if name == "" {
		return nil
	}
	if !s.Valid() {
		return opErrf(ErrNotInitialized, "bind", "parameter %q", name)
	}
	i := s.ParamIndex(":" + name)
	if i <= 0 {
		return nil
	}

	var err error
	switch c.kind {
	case KindInteger:
		v, perr := ParseInt(c.value)
		if perr != nil {
			return perr
		}
		err = s.BindInt64(i, v)
	case KindReal:
		v, perr := ParseFloat(c.value)
		if perr != nil {
			return perr
		}
		err = s.BindDouble(i, v)
	case KindText:
		err = s.BindText(i, c.value)
	case KindNone:
		err = s.BindNull(i)
	default:
		return opErrf(ErrType, "bind", "parameter %q has kind %s", name, c.kind)
	}
	if err != nil {
		return opErrf(ErrBind, "bind", "parameter %q: %w", name, err)
	}
	return nil
}

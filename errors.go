// Copyright 2013 The Go-SQLite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmsqlite

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// them with errors.Is.
var (
	ErrConnection     = errors.New("no usable connection")
	ErrIdentifier     = errors.New("invalid identifier")
	ErrType           = errors.New("unsupported value type")
	ErrPrepare        = errors.New("prepare failed")
	ErrBind           = errors.New("bind failed")
	ErrNotInitialized = errors.New("statement is not initialized")
	ErrStep           = errors.New("step failed")
	ErrReset          = errors.New("reset failed")
	ErrValueFormat    = errors.New("value is not in canonical form")
	ErrRead           = errors.New("read failed")
)

// Error describes a failed operation. Kind is one of the Err* values above,
// Err is the underlying cause, usually a *sqlite3.Error, and may be nil.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("mmsqlite: %s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("mmsqlite: %s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func opErr(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func opErrf(kind error, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

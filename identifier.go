// Copyright 2013 The Go-SQLite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmsqlite

// CountAll is the one name accepted by ValidateIdentifier outside of the
// identifier grammar, so that the result of "SELECT COUNT(*) FROM t" can be
// addressed by its default column name.
const CountAll = "COUNT(*)"

// ValidateIdentifier checks that name can be used as a row key or a bind
// parameter name. A valid identifier is non-empty, starts with an ASCII letter
// and continues with ASCII letters, digits, or underscores. Keywords are not
// rejected.
func ValidateIdentifier(name string) error {
	if name == "" {
		return opErrf(ErrIdentifier, "validate", "empty name")
	}
	if name == CountAll {
		return nil
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case isLetter(c):
		case i > 0 && (isDigit(c) || c == '_'):
		default:
			return opErrf(ErrIdentifier, "validate", "name %q has invalid character at offset %d", name, i)
		}
	}
	return nil
}

func isLetter(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }
func isDigit(c byte) bool  { return '0' <= c && c <= '9' }

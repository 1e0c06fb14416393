// Copyright 2013 The Go-SQLite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmsqlite

import "strconv"

// FormatInt returns the canonical string form of v.
func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// ParseInt converts the canonical string form of an integer back to its value.
// Strings that do not print back exactly as given, such as "007", "+5", or
// "1.0", are rejected with ErrValueFormat.
func ParseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, opErrf(ErrValueFormat, "parse integer", "%q: %w", s, err)
	}
	if FormatInt(v) != s {
		return 0, opErrf(ErrValueFormat, "parse integer", "%q is not canonical, expected %q", s, FormatInt(v))
	}
	return v, nil
}

// FormatFloat returns the canonical string form of v: the shortest decimal or
// exponent representation that parses back to the same float64.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ParseFloat converts the canonical string form of a real number back to its
// value. Strings that do not print back exactly as given, such as "3.140000"
// or "1e2", are rejected with ErrValueFormat.
func ParseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, opErrf(ErrValueFormat, "parse real", "%q: %w", s, err)
	}
	if FormatFloat(v) != s {
		return 0, opErrf(ErrValueFormat, "parse real", "%q is not canonical, expected %q", s, FormatFloat(v))
	}
	return v, nil
}

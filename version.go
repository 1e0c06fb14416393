// Copyright 2013 The Go-SQLite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmsqlite

import (
	"fmt"

	"github.com/MarufSarker/mmsqlite/sqlite3"
)

// Package version.
const (
	VersionMajor = 1
	VersionMinor = 0
	VersionPatch = 0
)

// VersionString is the package version in "major.minor.patch" form.
var VersionString = CurrentVersion().String()

// Version is a semantic version number.
type Version struct {
	Major, Minor, Patch int
}

// CurrentVersion returns the package version.
func CurrentVersion() Version {
	return Version{Major: VersionMajor, Minor: VersionMinor, Patch: VersionPatch}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// EngineVersion returns the version of the embedded SQLite library.
func EngineVersion() string {
	return sqlite3.Version()
}

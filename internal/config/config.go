// Copyright 2013 The Go-SQLite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the mmsqlite command configuration from a yaml or toml
// file.
package config

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/MarufSarker/mmsqlite"
)

// Config defines how the database is opened and what runs right after.
type Config struct {
	Database    string   `yaml:"database" toml:"database"`
	ReadOnly    bool     `yaml:"read_only" toml:"read_only"`
	Create      *bool    `yaml:"create" toml:"create"`             // create the file if missing, default true
	Logging     bool     `yaml:"logging" toml:"logging"`           // log failed and expanded sql
	BusyTimeout string   `yaml:"busy_timeout" toml:"busy_timeout"` // duration, e.g. "5s"
	Init        []string `yaml:"init" toml:"init,multiline"`       // statements executed after open
}

// Load reads and validates the config file fname. The format is picked by the
// file extension, files without one are treated as yaml.
func Load(fname string) (*Config, error) {
	log.Printf("[DEBUG] request to load config %q", fname)
	data, err := os.ReadFile(fname) // nolint
	if err != nil {
		return nil, fmt.Errorf("can't read config %s: %w", fname, err)
	}

	res := &Config{}
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".yml", ".yaml", "":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true) // strict mode, fail on unknown fields
		if err = dec.Decode(res); err != nil {
			return nil, fmt.Errorf("can't unmarshal yaml config %s: %w", fname, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err = dec.Decode(res); err != nil {
			return nil, fmt.Errorf("can't unmarshal toml config %s: %w", fname, err)
		}
	default:
		return nil, fmt.Errorf("unknown config format %s", fname)
	}

	if err = res.Validate(); err != nil {
		return nil, fmt.Errorf("config %s is invalid: %w", fname, err)
	}
	log.Printf("[INFO] config loaded from %s, database %q, %d init statements", fname, res.Database, len(res.Init))
	return res, nil
}

// Validate reports every problem found in the config.
func (c *Config) Validate() error {
	errs := new(multierror.Error)
	if c.ReadOnly && c.Create != nil && *c.Create {
		errs = multierror.Append(errs, fmt.Errorf("read_only and create can't be set together"))
	}
	if _, err := c.Timeout(); err != nil {
		errs = multierror.Append(errs, err)
	}
	for i, sql := range c.Init {
		if strings.TrimSpace(sql) == "" {
			errs = multierror.Append(errs, fmt.Errorf("init statement %d is empty", i))
		}
	}
	return errs.ErrorOrNil()
}

// Timeout returns the parsed busy timeout, zero if not set.
func (c *Config) Timeout() (time.Duration, error) {
	if c.BusyTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.BusyTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid busy_timeout %q: %w", c.BusyTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative busy_timeout %q", c.BusyTimeout)
	}
	return d, nil
}

// Flags returns the open flags matching the config.
func (c *Config) Flags() int {
	if c.ReadOnly {
		return mmsqlite.OpenReadOnly
	}
	if c.Create != nil && !*c.Create {
		return mmsqlite.OpenReadWrite
	}
	return mmsqlite.OpenReadWrite | mmsqlite.OpenCreate
}

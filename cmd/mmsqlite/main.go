// Copyright 2013 The Go-SQLite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/hashicorp/go-multierror"
	"github.com/jessevdk/go-flags"
	"golang.org/x/term"

	"github.com/MarufSarker/mmsqlite"
	"github.com/MarufSarker/mmsqlite/internal/config"
)

type options struct {
	PositionalArgs struct {
		SQL []string `positional-arg-name:"sql" description:"statements to execute, one per argument"`
	} `positional-args:"yes" positional-optional:"yes"`

	DB          string            `short:"d" long:"db" env:"MMSQLITE_DB" description:"database file, file: URI or :memory:"`
	Config      string            `short:"c" long:"config" env:"MMSQLITE_CONFIG" description:"config file, yaml or toml"`
	ReadOnly    bool              `long:"read-only" description:"open the database read-only"`
	BusyTimeout time.Duration     `long:"busy-timeout" env:"MMSQLITE_BUSY_TIMEOUT" description:"how long to wait for a locked database"`
	Params      map[string]string `short:"p" long:"param" description:"named parameter as name:value, integer and real values are detected"`
	Text        map[string]string `short:"t" long:"text" description:"named text parameter as name:value"`
	KeepGoing   bool              `short:"k" long:"keep-going" description:"continue after a failed statement"`
	LogSQL      bool              `long:"log-sql" env:"MMSQLITE_LOG_SQL" description:"log failed and expanded sql"`
	NoColor     bool              `long:"no-color" description:"disable colored output"`

	Version bool `long:"version" description:"show version"`
	Dbg     bool `long:"dbg" description:"debug mode"`
}

// settings is the result of merging the config file with the command line.
type settings struct {
	path    string
	flags   int
	timeout time.Duration
	logging bool
	init    []string
}

var revision = "latest"

var exitFunc = os.Exit

func main() {
	var opts options
	p := flags.NewParser(&opts, flags.PrintErrors|flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.Parse(); err != nil {
		exitFunc(1) // can be redefined in tests
		return
	}
	if opts.Version {
		fmt.Printf("mmsqlite %s (%s), sqlite %s\n", mmsqlite.VersionString, revision, mmsqlite.EngineVersion())
		exitFunc(0)
		return
	}
	setupLog(opts.Dbg)
	if opts.NoColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	if err := run(os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "failed, %v\n", err)
		exitFunc(1)
	}
}

func run(out io.Writer, opts options) error {
	st, err := makeSettings(opts)
	if err != nil {
		return err
	}
	if len(opts.PositionalArgs.SQL) == 0 && len(st.init) == 0 {
		return fmt.Errorf("nothing to execute, pass sql as arguments")
	}
	params, err := paramsRow(opts.Params, opts.Text)
	if err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}

	db, err := mmsqlite.Open(st.path, st.flags, mmsqlite.WithLogging(st.logging), mmsqlite.WithBusyTimeout(st.timeout))
	if err != nil {
		return fmt.Errorf("can't open database %s: %w", st.path, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("[WARN] can't close database %s, %v", st.path, err)
		}
	}()
	log.Printf("[DEBUG] database %s opened, flags %#x", st.path, st.flags)

	for i, sql := range st.init {
		if _, err := db.Execute(sql, nil); err != nil {
			return fmt.Errorf("init statement %d failed: %w", i+1, err)
		}
		log.Printf("[DEBUG] init statement %d done", i+1)
	}

	errs := new(multierror.Error)
	for i, sql := range opts.PositionalArgs.SQL {
		before := db.TotalChanges()
		rows, err := db.Execute(sql, params)
		if err != nil {
			err = fmt.Errorf("statement %d failed: %w", i+1, err)
			if !opts.KeepGoing {
				return err
			}
			log.Printf("[WARN] %v", err)
			errs = multierror.Append(errs, err)
			continue
		}
		printRows(out, rows, db.TotalChanges()-before)
	}
	return errs.ErrorOrNil()
}

// makeSettings loads the config file, if any, and applies the command line on
// top of it.
func makeSettings(opts options) (settings, error) {
	conf := &config.Config{}
	if opts.Config != "" {
		var err error
		if conf, err = config.Load(opts.Config); err != nil {
			return settings{}, fmt.Errorf("can't load config: %w", err)
		}
	}
	timeout, err := conf.Timeout()
	if err != nil {
		return settings{}, err
	}

	res := settings{
		path:    conf.Database,
		timeout: timeout,
		logging: conf.Logging || opts.LogSQL,
		init:    conf.Init,
	}
	if opts.DB != "" {
		res.path = opts.DB
	}
	if res.path == "" {
		res.path = ":memory:"
	}
	if opts.ReadOnly {
		conf.ReadOnly = true
	}
	res.flags = conf.Flags()
	if opts.BusyTimeout > 0 {
		res.timeout = opts.BusyTimeout
	}
	return res, nil
}

// paramsRow builds the row bound to every statement. Text parameters win over
// inferred ones with the same name.
func paramsRow(params, text map[string]string) (*mmsqlite.Row, error) {
	row := mmsqlite.NewRow()
	errs := new(multierror.Error)
	for name, v := range params {
		if err := row.Append(name, inferColumn(v)); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	for name, v := range text {
		if err := row.Append(name, mmsqlite.Text(v)); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return row, nil
}

// inferColumn picks INTEGER or REAL for values in canonical numeric form and
// TEXT for everything else.
func inferColumn(v string) mmsqlite.Column {
	if n, err := mmsqlite.ParseInt(v); err == nil {
		return mmsqlite.Int(n)
	}
	if f, err := mmsqlite.ParseFloat(v); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return mmsqlite.Float(f)
	}
	return mmsqlite.Text(v)
}

func printRows(out io.Writer, rows []*mmsqlite.Row, changed int) {
	if len(rows) == 0 {
		fmt.Fprintf(out, "%d row(s) affected\n", changed)
		return
	}
	header := color.New(color.FgCyan).SprintfFunc()
	for i, r := range rows {
		fmt.Fprintf(out, "%s %s\n", header("[%d]", i+1), r)
	}
	fmt.Fprintf(out, "%d row(s)\n", len(rows))
}

func setupLog(dbg bool) {
	logOpts := []lgr.Option{lgr.Out(os.Stderr), lgr.Err(os.Stderr), lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Out(os.Stderr), lgr.Err(os.Stderr), lgr.Debug, lgr.CallerFile, lgr.CallerFunc,
			lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

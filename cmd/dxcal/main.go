/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Command dxcal does hour-resolution calendar arithmetic on packed
// YYYYMMDDHH timestamps.
//
//	dxcal add --from 2021013100 --months 1          # 2021022800
//	dxcal between --from 2021010100 --to 2021010203 # 1d3h 27
//	dxcal for --from 2021010100 --hours 3           # 00, 01, 02
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cloudeng.io/logging/ctxlog"
	"dirpx.dev/dxcal/dxcore/config"
	"dirpx.dev/dxcal/dxcore/model"
	"dirpx.dev/dxcal/dxcore/model/calendar"
	"dirpx.dev/dxcal/dxcore/model/stamp"
	"github.com/urfave/cli"
)

type metadata struct {
	ctx     context.Context
	config  config.Config
	cal     stamp.Calendar
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero"

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w, e io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "dxcal"
	app.Usage = "hour-resolution calendar arithmetic on YYYYMMDDHH timestamps"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e
	app.Metadata = map[string]interface{}{}

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config, c",
			Value:  "",
			Usage:  " read configuration from YAML `FILE`",
			EnvVar: "DXCAL_CONFIG",
		},
		cli.StringFlag{
			Name:  "format, f",
			Value: "",
			Usage: " output `FORMAT` [text|json|yaml]",
		},
		cli.StringFlag{
			Name:  "overflow, o",
			Value: "",
			Usage: " day-of-month `POLICY` for month arithmetic [clamp|normalize]",
		},
		cli.StringFlag{
			Name:  "log-level, l",
			Value: "",
			Usage: " minimum log `LEVEL` [debug|info|warn|error]",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " log at debug level",
		},
	}
	app.Commands = commands()

	app.Before = func(c *cli.Context) error {
		cfg, err := config.Load(c.GlobalString("config"))
		if err != nil {
			return err
		}
		if err := applyFlags(c, &cfg); err != nil {
			return err
		}

		verbose := c.GlobalBool("verbose")
		if verbose {
			cfg.Log.Level = slog.LevelDebug
		}

		ctx := newLogger(context.Background(), c.App.ErrWriter, cfg.Log)
		ctxlog.Logger(ctx).Debug("configuration", "config", model.SafeString(&cfg, verbose))

		c.App.Metadata["config"] = &metadata{
			ctx:     ctx,
			config:  cfg,
			cal:     stamp.NewCalendar(calendar.Clock{Overflow: cfg.Overflow}),
			verbose: verbose,
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	return app
}

// applyFlags overrides cfg with the global flags given on the command line.
func applyFlags(c *cli.Context, cfg *config.Config) error {
	if s := c.GlobalString("format"); s != "" {
		f, err := config.ParseFormat(s)
		if err != nil {
			return err
		}
		cfg.Format = f
	}
	if s := c.GlobalString("overflow"); s != "" {
		o, err := calendar.ParseOverflow(s)
		if err != nil {
			return err
		}
		cfg.Overflow = o
	}
	if s := c.GlobalString("log-level"); s != "" {
		if err := cfg.Log.Level.UnmarshalText([]byte(s)); err != nil {
			return fmt.Errorf("log-level: %w", err)
		}
	}
	return nil
}

func newLogger(ctx context.Context, w io.Writer, lc config.LogConfig) context.Context {
	opts := &slog.HandlerOptions{Level: lc.Level}
	if lc.Format == config.LogFormatJSON {
		return ctxlog.NewJSONLogger(ctx, w, opts)
	}
	return ctxlog.Context(ctx, slog.New(slog.NewTextHandler(w, opts)))
}

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

package main

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"cloudeng.io/logging/ctxlog"
	"dirpx.dev/dxcal/dxcore/model/stamp"
	"github.com/urfave/cli"
)

var (
	fromFlag = cli.StringFlag{
		Name:  "from, t",
		Value: "",
		Usage: "*start `TIMESTAMP` (YYYYMMDDHH)",
	}
	matchFlag = cli.StringFlag{
		Name:  "match",
		Value: "",
		Usage: " keep only hours at which the cron `EXPR` is due",
	}
	toFlag = cli.StringFlag{
		Name:  "to, e",
		Value: "",
		Usage: "*end `TIMESTAMP` (YYYYMMDDHH)",
	}
	offsetFlags = []cli.Flag{
		cli.IntFlag{Name: "years, y", Usage: " offset by `N` years"},
		cli.IntFlag{Name: "months, m", Usage: " offset by `N` months"},
		cli.IntFlag{Name: "days, d", Usage: " offset by `N` days"},
		cli.IntFlag{Name: "hours, H", Usage: " offset by `N` hours"},
	}
)

func commands() []cli.Command {
	return []cli.Command{
		{
			Name:      "parse",
			Usage:     "check packed timestamps and show the instants they name",
			ArgsUsage: "TIMESTAMP...",
			Action:    run("parse", runParse),
		},
		{
			Name:      "add",
			Usage:     "move a timestamp forward by an offset",
			ArgsUsage: "\n   (* = required)",
			Flags:     append([]cli.Flag{fromFlag}, offsetFlags...),
			Action:    run("add", runAdd),
		},
		{
			Name:      "sub",
			Usage:     "move a timestamp backward by an offset",
			ArgsUsage: "\n   (* = required)",
			Flags:     append([]cli.Flag{fromFlag}, offsetFlags...),
			Action:    run("sub", runSub),
		},
		{
			Name:      "between",
			Usage:     "show the calendar offset and elapsed hours between two timestamps",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{fromFlag, toFlag},
			Action:    run("between", runBetween),
		},
		{
			Name:      "compare",
			Usage:     "print -1, 0 or 1 as the first timestamp is before, equal to or after the second",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{fromFlag, toFlag},
			Action:    run("compare", runCompare),
		},
		{
			Name:      "until",
			Usage:     "list every hour from one timestamp to another, both included",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				fromFlag,
				toFlag,
				matchFlag,
				cli.BoolFlag{
					Name:  "int, n",
					Usage: " print the packed values as integers",
				},
			},
			Action: run("until", runUntil),
		},
		{
			Name:      "for",
			Usage:     "list every hour from a timestamp across an offset",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				fromFlag,
				matchFlag,
				cli.BoolFlag{
					Name:  "include-last, i",
					Usage: " include the end timestamp",
				},
				cli.BoolFlag{
					Name:  "int, n",
					Usage: " print the packed values as integers",
				},
			}, offsetFlags...),
			Action: run("for", runFor),
		},
		{
			Name:   "config",
			Usage:  "print the effective configuration",
			Action: run("config", runConfig),
		},
		{
			Name:   "version",
			Usage:  "display dxcal version",
			Action: runVersion,
		},
	}
}

// run wraps a command action with logging of its start and failure.
func run(name string, action func(*cli.Context, *metadata) error) func(*cli.Context) error {
	return func(c *cli.Context) error {
		m := c.App.Metadata["config"].(*metadata)
		log := ctxlog.Logger(ctxlog.ContextWith(m.ctx, "command", name))

		log.Debug("run", "args", c.Args(), "flags", c.FlagNames())
		if err := action(c, m); err != nil {
			log.Error("failed", "error", err)
			return err
		}
		return nil
	}
}

type parsed struct {
	Timestamp stamp.Timestamp `json:"timestamp" yaml:"timestamp"`
	Int       int64           `json:"int" yaml:"int"`
	Time      string          `json:"time" yaml:"time"`
}

func (p parsed) String() string {
	return p.Timestamp.String() + " " + p.Time
}

func runParse(c *cli.Context, m *metadata) error {
	if !c.Args().Present() {
		return fmt.Errorf("parse: at least one TIMESTAMP is required")
	}

	results := make([]parsed, 0, c.NArg())
	for _, arg := range c.Args() {
		ts, err := stamp.ParseTimestamp(arg)
		if err != nil {
			return err
		}
		tm, err := ts.Time()
		if err != nil {
			return err
		}
		results = append(results, parsed{Timestamp: ts, Int: ts.Int(), Time: tm.Format(time.RFC3339)})
	}
	return printList(m, results)
}

func runAdd(c *cli.Context, m *metadata) error {
	from, err := timestampFlag(c, "from")
	if err != nil {
		return err
	}
	ts, err := m.cal.Add(from, offsetFromFlags(c))
	if err != nil {
		return err
	}
	return m.print(&ts)
}

func runSub(c *cli.Context, m *metadata) error {
	from, err := timestampFlag(c, "from")
	if err != nil {
		return err
	}
	ts, err := m.cal.Sub(from, offsetFromFlags(c))
	if err != nil {
		return err
	}
	return m.print(&ts)
}

type span struct {
	From   stamp.Timestamp `json:"from" yaml:"from"`
	To     stamp.Timestamp `json:"to" yaml:"to"`
	Offset stamp.Offset    `json:"offset" yaml:"offset"`
	Hours  float64         `json:"hours" yaml:"hours"`
}

func (s span) String() string {
	return s.Offset.Delta().String() + " " + strconv.FormatFloat(s.Hours, 'f', -1, 64)
}

func runBetween(c *cli.Context, m *metadata) error {
	from, err := timestampFlag(c, "from")
	if err != nil {
		return err
	}
	to, err := timestampFlag(c, "to")
	if err != nil {
		return err
	}

	offset, err := m.cal.Between(from, to)
	if err != nil {
		return err
	}
	hours, err := from.HoursBetween(to)
	if err != nil {
		return err
	}
	return m.print(span{From: from, To: to, Offset: offset, Hours: hours})
}

func runCompare(c *cli.Context, m *metadata) error {
	from, err := timestampFlag(c, "from")
	if err != nil {
		return err
	}
	cmp, err := stamp.Compare(from, c.String("to"))
	if err != nil {
		return err
	}
	return m.print(cmp)
}

func runUntil(c *cli.Context, m *metadata) error {
	from, err := timestampFlag(c, "from")
	if err != nil {
		return err
	}
	to, err := timestampFlag(c, "to")
	if err != nil {
		return err
	}

	seq, err := m.cal.Until(from, to)
	if err != nil {
		return err
	}
	seq, err = matching(seq, c.String("match"))
	if err != nil {
		return err
	}
	if c.Bool("int") {
		return printList(m, slices.Collect(stamp.Map(seq, stamp.Timestamp.Int)))
	}
	return printList(m, slices.Collect(seq))
}

func runFor(c *cli.Context, m *metadata) error {
	from, err := timestampFlag(c, "from")
	if err != nil {
		return err
	}

	seq, err := m.cal.For(from, offsetFromFlags(c), c.Bool("include-last"))
	if err != nil {
		return err
	}
	seq, err = matching(seq, c.String("match"))
	if err != nil {
		return err
	}
	if c.Bool("int") {
		return printList(m, slices.Collect(stamp.Map(seq, stamp.Timestamp.Int)))
	}
	return printList(m, slices.Collect(seq))
}

func runConfig(c *cli.Context, m *metadata) error {
	return m.print(&m.config)
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}

// timestampFlag parses the required timestamp flag name.
func timestampFlag(c *cli.Context, name string) (stamp.Timestamp, error) {
	s := c.String(name)
	if s == "" {
		return stamp.Timestamp{}, fmt.Errorf("%s: a TIMESTAMP is required", name)
	}
	return stamp.Coerce(s)
}

// offsetFromFlags builds an Offset holding only the offset flags given on
// the command line.
func offsetFromFlags(c *cli.Context) stamp.Offset {
	var o stamp.Offset
	for _, f := range []struct {
		name  string
		field stamp.Field
	}{
		{"years", stamp.Year},
		{"months", stamp.Month},
		{"days", stamp.Day},
		{"hours", stamp.Hour},
	} {
		if c.IsSet(f.name) {
			o = o.With(f.field, c.Int(f.name))
		}
	}
	return o
}

package main

import (
	"flag"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/randomizedcoder/fresh-queue/internal/harness"
)

// configFlags binds harness.Config fields to a subcommand's flag set.
type configFlags struct {
	cfg      harness.Config
	variants string
}

func (c *configFlags) register(f *flag.FlagSet) {
	c.cfg = harness.DefaultConfig()
	f.StringVar(&c.variants, "variants", "all", "comma-separated variant names, or all")
	f.IntVar(&c.cfg.Producers, "producers", c.cfg.Producers, "producer goroutines")
	f.IntVar(&c.cfg.Consumers, "consumers", c.cfg.Consumers, "consumer goroutines")
	f.IntVar(&c.cfg.Capacity, "capacity", c.cfg.Capacity, "capacity of the bounded variants")
	f.IntVar(&c.cfg.Shards, "shards", c.cfg.Shards, "shards of the sharded variant, a power of 2 (0 = one per producer, rounded up)")
	f.DurationVar(&c.cfg.ProgressEvery, "progress", c.cfg.ProgressEvery, "interval between progress lines at -v=1")
}

// selected resolves the -variants flag.
func (c *configFlags) selected() ([]harness.Variant, error) {
	if c.variants == "" || c.variants == "all" {
		return harness.Variants(), nil
	}
	var out []harness.Variant
	for _, name := range strings.Split(c.variants, ",") {
		v, err := harness.Lookup(strings.TrimSpace(name))
		if err != nil {
			return nil, errors.Wrap(err, "-variants")
		}
		out = append(out, v)
	}
	return out, nil
}

type result struct {
	variant string
	report  harness.Report
	err     error
}

func renderResults(w io.Writer, results []result) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Variant", "Scenario", "P", "C", "Pushed", "Popped", "Elapsed", "Ops/s", "ns/op", "Result"})
	for _, r := range results {
		status := "ok"
		if r.err != nil {
			status = r.err.Error()
		}
		table.Append([]string{
			r.variant,
			r.report.Scenario,
			strconv.Itoa(r.report.Producers),
			strconv.Itoa(r.report.Consumers),
			strconv.FormatUint(r.report.Pushed, 10),
			strconv.FormatUint(r.report.Popped, 10),
			r.report.Elapsed.String(),
			strconv.FormatFloat(r.report.OpsPerSec(), 'f', 0, 64),
			strconv.FormatFloat(r.report.NsPerOp(), 'f', 2, 64),
			status,
		})
	}
	table.Render()
}

// failed reports whether any result carries an error.
func failed(results []result) bool {
	for _, r := range results {
		if r.err != nil {
			return true
		}
	}
	return false
}

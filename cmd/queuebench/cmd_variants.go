package main

import (
	"context"
	"flag"
	"os"
	"strconv"

	"github.com/google/subcommands"
	"github.com/olekukonko/tablewriter"

	"github.com/randomizedcoder/fresh-queue/internal/harness"
)

type variantsCmd struct{}

func (*variantsCmd) Name() string     { return "variants" }
func (*variantsCmd) Synopsis() string { return "list the queue implementations" }
func (*variantsCmd) Usage() string {
	return `variants:
	List the names accepted by -variants.
`
}

func (*variantsCmd) SetFlags(*flag.FlagSet) {}

func (*variantsCmd) Execute(context.Context, *flag.FlagSet, ...any) subcommands.ExitStatus {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Name", "Bounded", "Lock-free", "Description"})
	for idx, v := range harness.Variants() {
		table.Append([]string{
			strconv.Itoa(idx),
			v.Name,
			strconv.FormatBool(v.Bounded),
			strconv.FormatBool(v.LockFree),
			v.Description,
		})
	}
	table.Render()
	return subcommands.ExitSuccess
}

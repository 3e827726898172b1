// Command queuebench runs the queue implementations through stress,
// throughput and push/pop scenarios and prints the results as tables.
//
// Usage:
//
//	go run ./cmd/queuebench stress -variants=all -producers=4 -consumers=4
//	go run ./cmd/queuebench throughput -variants=single,dual -duration=2s
//	go run ./cmd/queuebench pushpop -n 1000000 -batch 512
//	go run ./cmd/queuebench variants
package main

import (
	"context"
	"flag"
	"os"

	log "github.com/golang/glog"
	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&stressCmd{}, "scenarios")
	subcommands.Register(&throughputCmd{}, "scenarios")
	subcommands.Register(&pushPopCmd{}, "scenarios")
	subcommands.Register(&variantsCmd{}, "")

	flag.Parse()
	status := subcommands.Execute(context.Background())
	log.Flush()
	os.Exit(int(status))
}

package main

import (
	"context"
	"flag"
	"os"

	log "github.com/golang/glog"
	"github.com/google/subcommands"

	"github.com/randomizedcoder/fresh-queue/internal/harness"
	"github.com/randomizedcoder/fresh-queue/internal/queue"
)

// scenario runs one harness scenario against a freshly built queue.
type scenario func(ctx context.Context, q queue.Queue[harness.Item], cfg harness.Config) (harness.Report, error)

// runAll builds every selected variant and runs s on it.
func runAll(ctx context.Context, flags *configFlags, s scenario) subcommands.ExitStatus {
	if err := flags.cfg.Validate(); err != nil {
		log.Errorf("Invalid flags: %v", err)
		return subcommands.ExitUsageError
	}
	variants, err := flags.selected()
	if err != nil {
		log.Errorf("Invalid flags: %v", err)
		return subcommands.ExitUsageError
	}

	var results []result
	for _, v := range variants {
		q, err := v.New(flags.cfg)
		if err != nil {
			log.Errorf("Failed to build %s: %v", v.Name, err)
			results = append(results, result{variant: v.Name, err: err})
			continue
		}
		r, err := s(ctx, q, flags.cfg)
		if err != nil {
			log.Errorf("%s %s: %v", v.Name, r.Scenario, err)
		}
		results = append(results, result{variant: v.Name, report: r, err: err})
	}

	renderResults(os.Stdout, results)
	if failed(results) {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type stressCmd struct {
	flags configFlags
}

func (*stressCmd) Name() string     { return "stress" }
func (*stressCmd) Synopsis() string { return "push a fixed item count and verify every item" }
func (*stressCmd) Usage() string {
	return `stress [flags]:
	Producers push disjoint item ranges while consumers pop the same total.
	Fails if an item is lost, duplicated or popped out of producer order.
`
}

func (c *stressCmd) SetFlags(f *flag.FlagSet) {
	c.flags.register(f)
	f.IntVar(&c.flags.cfg.ItemsPerProducer, "items", c.flags.cfg.ItemsPerProducer, "items pushed by each producer")
}

func (c *stressCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	return runAll(ctx, &c.flags, harness.RunStress)
}

type throughputCmd struct {
	flags configFlags
}

func (*throughputCmd) Name() string     { return "throughput" }
func (*throughputCmd) Synopsis() string { return "push and pop for a fixed duration" }
func (*throughputCmd) Usage() string {
	return `throughput [flags]:
	Producers push until -duration elapses while consumers pop; then the
	queue is drained and push and pop counts are compared.
`
}

func (c *throughputCmd) SetFlags(f *flag.FlagSet) {
	c.flags.register(f)
	f.DurationVar(&c.flags.cfg.Duration, "duration", c.flags.cfg.Duration, "how long producers push")
}

func (c *throughputCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	return runAll(ctx, &c.flags, harness.RunThroughput)
}

type pushPopCmd struct {
	flags configFlags
	batch int
}

func (*pushPopCmd) Name() string     { return "pushpop" }
func (*pushPopCmd) Synopsis() string { return "single goroutine batched push then pop" }
func (*pushPopCmd) Usage() string {
	return `pushpop [flags]:
	One goroutine pushes -batch items, pops them back, and repeats until
	-n items have passed through each selected queue.
`
}

func (c *pushPopCmd) SetFlags(f *flag.FlagSet) {
	c.flags.register(f)
	f.IntVar(&c.flags.cfg.ItemsPerProducer, "n", 1_000_000, "items pushed and popped")
	f.IntVar(&c.batch, "batch", 512, "pushes per batch before popping")
}

func (c *pushPopCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	return runAll(ctx, &c.flags, func(_ context.Context, q queue.Queue[harness.Item], cfg harness.Config) (harness.Report, error) {
		return harness.RunPushPop(q, cfg.ItemsPerProducer, c.batch)
	})
}

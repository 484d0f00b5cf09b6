// Command headless plays a match without a window on a simulated 60 Hz clock
// and prints the outcome.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"lanewars/internal/battle"
	"lanewars/internal/render"
)

const tickStep = time.Second / 60

type options struct {
	seed      int64
	maxTicks  uint64
	autopilot bool
}

func main() {
	var o options
	flag.Int64Var(&o.seed, "seed", 1, "random seed")
	flag.Uint64Var(&o.maxTicks, "max-ticks", 60*60*30, "stop after this many ticks")
	flag.BoolVar(&o.autopilot, "autopilot", false, "let the AI buy units for the player too")
	flag.Parse()

	if err := run(o, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(o options, w io.Writer) error {
	clock := battle.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	opts := []battle.Option{battle.WithClock(clock), battle.WithSeed(o.seed)}
	if o.autopilot {
		opts = append(opts, battle.WithAutopilot())
	}
	m := battle.New(opts...)

	for m.Running() && m.Ticks() < o.maxTicks {
		clock.Advance(tickStep)
		m.Tick()
	}

	snap := m.Snapshot()
	if res, ok := snap.Result(); ok {
		if _, err := fmt.Fprintf(w, "winner: %s after %d ticks\n", res.Winner, snap.Tick); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintf(w, "no winner after %d ticks\n", snap.Tick); err != nil {
		return err
	}
	_, err := io.WriteString(w, render.Report(snap))
	return err
}

// Command padctl drives the simulator's pad over the remote service.
//
//	padctl [-addr host:port] press B+UP
//	padctl release
//	padctl state
//	padctl replay moves.txt
//
// A replay file holds one "<milliseconds> <buttons>" pair per line; the
// buttons are held for that long. Blank lines and lines starting with # are
// skipped.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"snes2db9/internal/remote"
	"snes2db9/snes"
)

type step struct {
	hold    time.Duration
	buttons snes.Buttons
}

func parseScript(r io.Reader) ([]step, error) {
	var steps []step
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ms, rest, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("line %d: want \"<ms> <buttons>\"", lineNo)
		}
		n, err := strconv.Atoi(ms)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("line %d: bad duration %q", lineNo, ms)
		}
		b, err := snes.ParseButtons(rest)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		steps = append(steps, step{hold: time.Duration(n) * time.Millisecond, buttons: b})
	}
	return steps, sc.Err()
}

func replay(ctx context.Context, c *remote.Client, steps []step) error {
	for _, s := range steps {
		if err := c.SetButtons(ctx, s.buttons); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.hold):
		}
	}
	return c.SetButtons(ctx, snes.ButtonNone)
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: padctl [flags] press BUTTONS | release | state | replay FILE\n")
	flag.PrintDefaults()
}

func main() {
	addr := flag.String("addr", "localhost:50151", "Address of the simulator's remote service.")
	timeout := flag.Duration("timeout", 5*time.Second, "Timeout for single calls.")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	c, err := remote.Dial(*addr)
	if err != nil {
		log.Fatalf("padctl: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	switch cmd := flag.Arg(0); cmd {
	case "press":
		b, err := snes.ParseButtons(strings.Join(flag.Args()[1:], "+"))
		if err != nil {
			log.Fatalf("padctl: %v", err)
		}
		ctx, cancel := context.WithTimeout(ctx, *timeout)
		defer cancel()
		if err := c.SetButtons(ctx, b); err != nil {
			log.Fatalf("padctl: press: %v", err)
		}

	case "release":
		ctx, cancel := context.WithTimeout(ctx, *timeout)
		defer cancel()
		if err := c.SetButtons(ctx, snes.ButtonNone); err != nil {
			log.Fatalf("padctl: release: %v", err)
		}

	case "state":
		ctx, cancel := context.WithTimeout(ctx, *timeout)
		defer cancel()
		st, err := c.GetState(ctx)
		if err != nil {
			log.Fatalf("padctl: state: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(st)

	case "replay":
		if flag.NArg() != 2 {
			usage()
			os.Exit(2)
		}
		f, err := os.Open(flag.Arg(1))
		if err != nil {
			log.Fatalf("padctl: %v", err)
		}
		steps, err := parseScript(f)
		f.Close()
		if err != nil {
			log.Fatalf("padctl: %s: %v", flag.Arg(1), err)
		}
		log.Printf("replaying %d steps", len(steps))
		if err := replay(ctx, c, steps); err != nil {
			log.Fatalf("padctl: replay: %v", err)
		}

	default:
		log.Printf("padctl: unknown command %q", cmd)
		usage()
		os.Exit(2)
	}
}

// Package main implements keydump, a diagnostic tool that prints every key
// event decoded from the terminal: key name, raw bytes, decoded text and
// its display width. Useful for checking what sequences a terminal actually
// sends and for developing dialect files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rivo/uniseg"

	"github.com/c-bata/replkit/dialect"
	"github.com/c-bata/replkit/key"
	"github.com/c-bata/replkit/term"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	dialectPath := flag.String("dialect", "", "dialect file (TOML or YAML) with extra key sequences")
	watch := flag.Bool("watch", false, "reload the dialect file when it changes")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("keydump", version)
		return 0
	}

	var cfg *dialect.Config
	if *dialectPath != "" {
		var err error
		cfg, err = dialect.Load(*dialectPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "keydump: %v\n", err)
			return 1
		}
	}

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.EnableRaw(fd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "keydump: %v\n", err)
			return 1
		}
		defer raw.Restore()

		if err := term.EnableBracketedPaste(os.Stdout); err == nil {
			defer term.DisableBracketedPaste(os.Stdout)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	var configs <-chan *dialect.Config
	var watchErrs <-chan error
	if *watch && *dialectPath != "" {
		w, err := dialect.WatchFile(*dialectPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "keydump: %v\n", err)
			return 1
		}
		defer w.Close()
		configs = w.Configs()
		watchErrs = w.Errors()
	}

	fmt.Print("keydump: press Ctrl+Q to quit\r\n")

	readerCtx, stopReader := context.WithCancel(ctx)
	defer func() { stopReader() }()
	r, err := startReader(readerCtx, fd, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keydump: %v\n", err)
		return 1
	}

	for {
		select {
		case <-signals:
			stopReader()
			return 0
		case err := <-watchErrs:
			if err != nil {
				fmt.Printf("keydump: dialect reload failed: %v\r\n", err)
			}
		case newCfg := <-configs:
			cfg = newCfg
			// Restart the reader with a table built from the new config.
			// The old reader exits at its next poll tick.
			stopReader()
			readerCtx, stopReader = context.WithCancel(ctx)
			r, err = startReader(readerCtx, fd, cfg)
			if err != nil {
				stopReader()
				fmt.Fprintf(os.Stderr, "keydump: %v\n", err)
				return 1
			}
			fmt.Printf("keydump: dialect %q reloaded\r\n", cfg.Name)
		case ev, ok := <-r.Events():
			if !ok {
				stopReader()
				return 0
			}
			printEvent(ev)
			if ev.Key == key.ControlQ {
				stopReader()
				return 0
			}
		}
	}
}

func startReader(ctx context.Context, fd int, cfg *dialect.Config) (*term.Reader, error) {
	tbl := key.NewTable()
	if cfg != nil {
		if err := cfg.Apply(tbl); err != nil {
			return nil, err
		}
	}
	r := term.NewReader(fd, term.WithParser(key.NewParserWithTable(tbl)))
	go func() {
		_ = r.Run(ctx)
	}()
	return r, nil
}

func printEvent(ev key.Event) {
	name := fmt.Sprintf("%-18s", ev.Key.String())
	raw := fmt.Sprintf("%-24s", hexBytes(ev.Raw))

	switch {
	case ev.HasText():
		fmt.Printf("%s %s %q width=%d\r\n", name, raw, ev.Text(), uniseg.StringWidth(ev.Text()))
	default:
		if row, col, ok := ev.CPR(); ok {
			fmt.Printf("%s %s row=%d col=%d\r\n", name, raw, row, col)
			return
		}
		if data, ok := ev.MouseData(); ok {
			fmt.Printf("%s %s button=%d x=%d y=%d\r\n", name, raw, data[0]-32, data[1]-32, data[2]-32)
			return
		}
		fmt.Printf("%s %s\r\n", name, raw)
	}
}

func hexBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = fmt.Sprintf("%02x", c)
	}
	return strings.Join(parts, " ")
}

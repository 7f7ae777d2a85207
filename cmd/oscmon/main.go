// Command oscmon is a live terminal monitor for incoming OSC messages.
//
//	oscmon [-listen host:port]
//
// Every message received on the listen address is shown in a scrolling tail
// with its source, address, type tag, and value. Press '/' to filter by
// address substring, esc to clear the filter, q to quit.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oscwire/oscwire/internal/config"
	"github.com/oscwire/oscwire/osc"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	listen := flag.String("listen", cfg.ListenAddr, "Listen address (host:port)")
	flag.Parse()

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck
	osc.SetLogger(logger)

	if err := runMonitor(*listen); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runMonitor(listen string) error {
	m := newMonitorModel(listen)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

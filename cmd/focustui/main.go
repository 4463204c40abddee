package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/attnlabs/focusd/internal/transport"
	"github.com/attnlabs/focusd/internal/ui"
)

func main() {
	baseURL := os.Getenv("FOCUSD_URL")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:7393"
	}

	m := ui.NewModel(transport.NewClient(baseURL))
	p := tea.NewProgram(m, tea.WithAltScreen())

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			p.Send(ui.MsgTick{})
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oscwire/oscwire/osc"
)

const tailSize = 256

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	addrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type receivedMsg struct {
	msg  *osc.Message
	from net.Addr
	at   time.Time
}

type serverErrMsg struct{ err error }

type monitorModel struct {
	err       error
	listen    string
	server    *osc.Server
	packets   chan receivedMsg
	serverErr chan error
	tail      []receivedMsg
	filter    textinput.Model
	filtering bool
	height    int
}

func newMonitorModel(listen string) *monitorModel {
	ti := textinput.New()
	ti.Placeholder = "address substring"
	ti.Prompt = "filter: "
	ti.Width = 40

	return &monitorModel{
		listen:    listen,
		packets:   make(chan receivedMsg, 64),
		serverErr: make(chan error, 1),
		filter:    ti,
		height:    24,
	}
}

func (m *monitorModel) Init() tea.Cmd {
	m.server = &osc.Server{
		Addr: m.listen,
		Handler: func(msg *osc.Message, addr net.Addr) {
			select {
			case m.packets <- receivedMsg{msg: msg, from: addr, at: time.Now()}:
			default:
				// Tail consumers that fall behind lose packets, not the UI.
			}
		},
	}

	go func() {
		m.serverErr <- m.server.ListenAndServe()
	}()

	return m.waitForPacket
}

// waitForPacket blocks on the next received message or a server failure.
func (m *monitorModel) waitForPacket() tea.Msg {
	select {
	case p := <-m.packets:
		return p
	case err := <-m.serverErr:
		return serverErrMsg{err: err}
	}
}

func (m *monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter":
				m.filtering = false
				m.filter.Blur()
			case "esc":
				m.filtering = false
				m.filter.SetValue("")
				m.filter.Blur()
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.server.Close() //nolint:errcheck
			return m, tea.Quit

		case "/":
			m.filtering = true
			m.filter.Focus()

		case "esc":
			m.filter.SetValue("")
		}

	case receivedMsg:
		m.tail = append(m.tail, msg)
		if len(m.tail) > tailSize {
			m.tail = m.tail[len(m.tail)-tailSize:]
		}
		return m, m.waitForPacket

	case serverErrMsg:
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

func (m *monitorModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("oscmon — " + m.listen))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("server error: %v", m.err)))
		b.WriteString("\n")
		return b.String()
	}

	rows := m.visibleRows()
	if len(rows) == 0 {
		b.WriteString(helpStyle.Render("waiting for messages..."))
		b.WriteString("\n")
	}
	for _, p := range rows {
		b.WriteString(fmt.Sprintf("%s  %s  %s %s  %v\n",
			sourceStyle.Render(p.at.Format("15:04:05.000")),
			sourceStyle.Render(p.from.String()),
			addrStyle.Render(p.msg.Address),
			tagStyle.Render(","+string(p.msg.Value.Tag())),
			p.msg.Value,
		))
	}

	b.WriteString("\n")
	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("/ filter • esc clear • q quit"))
	b.WriteString("\n")

	return b.String()
}

// visibleRows applies the address filter and trims to the window height.
func (m *monitorModel) visibleRows() []receivedMsg {
	rows := m.tail
	if f := m.filter.Value(); f != "" {
		rows = nil
		for _, p := range m.tail {
			if strings.Contains(p.msg.Address, f) {
				rows = append(rows, p)
			}
		}
	}

	max := m.height - 6
	if max < 1 {
		max = 1
	}
	if len(rows) > max {
		rows = rows[len(rows)-max:]
	}
	return rows
}

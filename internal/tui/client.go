// File: internal/tui/client.go
// Description: Interactive MST client screen: connect, then issue
// NewGraph/AddEdge/RemoveEdge/SolveMST commands and render replies.
//
// Follows the same Model-View-Update shape as the server's own
// terminal client: async operations (dialing, writing a command,
// reading the framed reply) run as tea.Cmd so Update never blocks.

package tui

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Aharonba/mstnet/internal/protocol"
)

const asciiLogo = `
 ███╗   ███╗███████╗████████╗███╗   ██╗███████╗████████╗
 ████╗ ████║██╔════╝╚══██╔══╝████╗  ██║██╔════╝╚══██╔══╝
 ██╔████╔██║███████╗   ██║   ██╔██╗ ██║█████╗     ██║
 ██║╚██╔╝██║╚════██║   ██║   ██║╚██╗██║██╔══╝     ██║
 ██║ ╚═╝ ██║███████║   ██║   ██║ ╚████║███████╗   ██║
 ╚═╝     ╚═╝╚══════╝   ╚═╝   ╚═╝  ╚═══╝╚══════╝   ╚═╝

          minimum spanning tree compute client
`

type screen int

const (
	screenConnect screen = iota
	screenSession
)

// Model is the client's root BubbleTea model.
type Model struct {
	width  int
	screen screen

	// connect screen
	focusedField int // 0: host, 1: port
	host         string
	port         string
	connectErr   string
	connecting   bool

	// session screen
	conn       net.Conn
	input      string
	history    []string
	sending    bool
	sessionErr string
}

// NewModel returns the initial model, defaulting host/port to localhost
// and the server's default listen port.
func NewModel() Model {
	return Model{
		screen: screenConnect,
		host:   "127.0.0.1",
		port:   "9000",
	}
}

func (m Model) Init() tea.Cmd { return nil }

type connectResultMsg struct {
	conn net.Conn
	err  error
}

type replyMsg struct {
	body string
	err  error
}

func dialCmd(host, port string) tea.Cmd {
	return func() tea.Msg {
		conn, err := net.Dial("tcp", net.JoinHostPort(host, port))
		return connectResultMsg{conn: conn, err: err}
	}
}

func sendCmd(conn net.Conn, line string) tea.Cmd {
	return func() tea.Msg {
		if _, err := conn.Write([]byte(line)); err != nil {
			return replyMsg{err: fmt.Errorf("write: %w", err)}
		}
		if !strings.HasPrefix(line, "SolveMST") {
			return replyMsg{body: ""}
		}
		body, err := protocol.ReadFrame(conn)
		return replyMsg{body: body, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.screen {
		case screenConnect:
			return m.updateConnect(msg)
		case screenSession:
			return m.updateSession(msg)
		}

	case connectResultMsg:
		m.connecting = false
		if msg.err != nil {
			m.connectErr = msg.err.Error()
			return m, nil
		}
		m.conn = msg.conn
		m.screen = screenSession
		m.history = append(m.history, "connected to "+m.host+":"+m.port)
		return m, nil

	case replyMsg:
		m.sending = false
		if msg.err != nil {
			m.sessionErr = msg.err.Error()
			return m, nil
		}
		m.sessionErr = ""
		if msg.body != "" {
			m.history = append(m.history, msg.body)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateConnect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "down":
		m.focusedField = (m.focusedField + 1) % 2
		return m, nil
	case "shift+tab", "up":
		m.focusedField = (m.focusedField + 1) % 2
		return m, nil

	case "enter":
		if m.connecting {
			return m, nil
		}
		if _, err := strconv.Atoi(m.port); err != nil {
			m.connectErr = "port must be numeric"
			return m, nil
		}
		m.connecting = true
		m.connectErr = ""
		return m, dialCmd(m.host, m.port)

	case "backspace":
		if m.focusedField == 0 && len(m.host) > 0 {
			m.host = m.host[:len(m.host)-1]
		} else if m.focusedField == 1 && len(m.port) > 0 {
			m.port = m.port[:len(m.port)-1]
		}
		return m, nil

	default:
		if len(msg.String()) == 1 {
			if m.focusedField == 0 {
				m.host += msg.String()
			} else {
				m.port += msg.String()
			}
		}
		return m, nil
	}
}

func (m Model) updateSession(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		if m.conn != nil {
			m.conn.Close()
		}
		return m, tea.Quit

	case "enter":
		line := strings.TrimSpace(m.input)
		m.input = ""
		if line == "" || m.sending {
			return m, nil
		}
		m.history = append(m.history, "> "+line)
		m.sending = true
		return m, sendCmd(m.conn, line)

	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil

	default:
		if len(msg.String()) == 1 {
			m.input += msg.String()
		}
		return m, nil
	}
}

func (m Model) View() string {
	switch m.screen {
	case screenSession:
		return m.viewSession()
	default:
		return m.viewConnect()
	}
}

func boxWidth(m Model) int {
	if m.width > 70 {
		return m.width
	}
	return 70
}

func (m Model) viewConnect() string {
	width := boxWidth(m)
	var sb strings.Builder

	sb.WriteString(BoxTopLeft + strings.Repeat(BoxHorizontal, width-2) + BoxTopRight + "\n")
	for _, line := range strings.Split(asciiLogo, "\n") {
		if line == "" {
			continue
		}
		sb.WriteString(BoxVertical + Center(line, width-2) + BoxVertical + "\n")
	}
	sb.WriteString(BoxCrossLeft + strings.Repeat(BoxHorizontal, width-2) + BoxCross + "\n")

	hostField := "[" + PadRight(m.host, 24) + "]"
	portField := "[" + PadRight(m.port, 24) + "]"
	if m.focusedField == 0 {
		hostField = HighlightStyle.Render(hostField)
	} else {
		portField = HighlightStyle.Render(portField)
	}
	sb.WriteString(BoxVertical + "  Host: " + hostField + strings.Repeat(" ", width-38) + BoxVertical + "\n")
	sb.WriteString(BoxVertical + "  Port: " + portField + strings.Repeat(" ", width-38) + BoxVertical + "\n")

	status := "Press enter to connect, esc to quit"
	if m.connecting {
		status = "Connecting..."
	}
	if m.connectErr != "" {
		status = ErrorStyle.Render("Error: " + m.connectErr)
	}
	sb.WriteString(BoxVertical + Center(status, width-2) + BoxVertical + "\n")
	sb.WriteString(BoxBottomLeft + strings.Repeat(BoxHorizontal, width-2) + BoxBottomRight + "\n")

	return sb.String()
}

func (m Model) viewSession() string {
	width := boxWidth(m)
	var sb strings.Builder

	sb.WriteString(BoxTopLeft + strings.Repeat(BoxHorizontal, width-2) + BoxTopRight + "\n")
	sb.WriteString(BoxVertical + Center("mstnet session: "+m.host+":"+m.port, width-2) + BoxVertical + "\n")
	sb.WriteString(BoxCrossLeft + strings.Repeat(BoxHorizontal, width-2) + BoxCross + "\n")

	historyStart := 0
	const maxLines = 16
	if len(m.history) > maxLines {
		historyStart = len(m.history) - maxLines
	}
	for _, entry := range m.history[historyStart:] {
		for _, line := range strings.Split(entry, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(BoxVertical + " " + PadRight(line, width-4) + " " + BoxVertical + "\n")
		}
	}

	sb.WriteString(BoxCrossLeft + strings.Repeat(BoxHorizontal, width-2) + BoxCross + "\n")
	prompt := "> " + m.input + "_"
	if m.sending {
		prompt = MutedStyle.Render("sending...")
	}
	sb.WriteString(BoxVertical + " " + PadRight(prompt, width-4) + " " + BoxVertical + "\n")
	if m.sessionErr != "" {
		sb.WriteString(BoxVertical + " " + ErrorStyle.Render(PadRight("error: "+m.sessionErr, width-4)) + " " + BoxVertical + "\n")
	}
	sb.WriteString(BoxBottomLeft + strings.Repeat(BoxHorizontal, width-2) + BoxBottomRight + "\n")

	return sb.String()
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/transadif/adif"
	"github.com/wippyai/transadif/charset"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type viewState int

const (
	stateList viewState = iota
	stateDetail
	stateJump
)

type inspectorModel struct {
	doc      *adif.Document
	source   charset.Label
	warnings []string
	filename string
	jump     textinput.Model
	state    viewState
	selected int
	offset   int
	height   int
}

// runInteractive parses the input and opens a record browser.
func runInteractive(filename string, data []byte, inputEnc string, strict bool) error {
	src, err := charset.Detect(data, inputEnc)
	if err != nil {
		return err
	}
	doc, warnings, err := adif.Parse(data, src, adif.Options{Strict: strict})
	if err != nil {
		return err
	}

	ti := textinput.New()
	ti.Placeholder = "record number"
	ti.CharLimit = 8
	ti.Width = 12

	m := inspectorModel{
		doc:      doc,
		source:   src,
		warnings: warnings,
		filename: filename,
		jump:     ti,
		height:   24,
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m inspectorModel) Init() tea.Cmd {
	return nil
}

func (m inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.state == stateJump {
			return m.updateJump(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.doc.Records)-1 {
				m.selected++
			}
		case "enter":
			if m.state == stateList && len(m.doc.Records) > 0 {
				m.state = stateDetail
			}
		case "esc":
			m.state = stateList
		case "/":
			m.state = stateJump
			m.jump.SetValue("")
			m.jump.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m inspectorModel) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateList
		return m, nil
	case "enter":
		if n, err := strconv.Atoi(strings.TrimSpace(m.jump.Value())); err == nil &&
			n >= 1 && n <= len(m.doc.Records) {
			m.selected = n - 1
			m.state = stateDetail
		} else {
			m.state = stateList
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return m, cmd
}

func (m inspectorModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf(" %s | %d records, source %s ", m.filename, len(m.doc.Records), m.source)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	switch m.state {
	case stateDetail:
		m.viewDetail(&b)
	case stateJump:
		b.WriteString("Go to record: ")
		b.WriteString(m.jump.View())
		b.WriteString("\n")
	default:
		m.viewList(&b)
	}

	if len(m.warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d correction warnings", len(m.warnings))))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("\n↑/↓ select · enter inspect · / go to · esc back · q quit\n"))
	return b.String()
}

func (m *inspectorModel) viewList(b *strings.Builder) {
	if len(m.doc.Records) == 0 {
		b.WriteString("No records.\n")
		return
	}

	visible := m.height - 8
	if visible < 1 {
		visible = 1
	}
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+visible {
		m.offset = m.selected - visible + 1
	}

	end := m.offset + visible
	if end > len(m.doc.Records) {
		end = len(m.doc.Records)
	}
	for i := m.offset; i < end; i++ {
		line := fmt.Sprintf("%4d  %s", i+1, recordSummary(m.doc.Records[i]))
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func (m *inspectorModel) viewDetail(b *strings.Builder) {
	rec := m.doc.Records[m.selected]
	fmt.Fprintf(b, "Record %d/%d\n\n", m.selected+1, len(m.doc.Records))
	for _, f := range rec.Fields {
		b.WriteString("  ")
		b.WriteString(fieldStyle.Render(strings.ToUpper(f.Name)))
		b.WriteString(" = ")
		b.WriteString(valueStyle.Render(fmt.Sprintf("%q", f.Text)))
		fmt.Fprintf(b, "  (declared %d, %d bytes: %s)\n",
			f.Length, len(f.RawBytes), hexPreview(f.RawBytes))
	}
	if rec.Trailing != "" {
		fmt.Fprintf(b, "\n  trailing: %q\n", rec.Trailing)
	}
}

// recordSummary picks the fields hams identify a QSO by.
func recordSummary(rec adif.Record) string {
	var call, band, mode, date string
	for _, f := range rec.Fields {
		switch strings.ToUpper(f.Name) {
		case "CALL":
			call = f.Text
		case "BAND":
			band = f.Text
		case "MODE":
			mode = f.Text
		case "QSO_DATE":
			date = f.Text
		}
	}
	parts := make([]string, 0, 4)
	for _, s := range []string{call, date, band, mode} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("(%d fields)", len(rec.Fields))
	}
	return strings.Join(parts, "  ")
}

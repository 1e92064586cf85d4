package cli

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keepgo/keepgo/vault"
)

type model struct {
	session    *vault.Session
	store      *vault.Store
	entries    []vault.Entry
	cursor     int
	state      string // "table", "showEntry", "addEntry"
	textInputs []textinput.Model
	selected   *vault.Entry
	msg        string
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	msgStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("0"))
)

// RunTUI starts the interactive TUI over one unlocked session.
func RunTUI(s *vault.Session, st *vault.Store) {
	entries, err := s.List()
	if err != nil {
		fmt.Println("Error listing entries:", err)
		return
	}
	m := model{
		session: s,
		store:   st,
		entries: entries,
		state:   "table",
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Println("Error starting TUI:", err)
	}
}

func newAddInputs() []textinput.Model {
	labels := []string{"Title", "Username", "Password", "URL", "Notes"}
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		if label == "Password" {
			ti.EchoMode = textinput.EchoPassword
		}
		inputs[i] = ti
	}
	inputs[0].Focus()
	return inputs
}

// --- Tea Model interface ---
func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case "table":
		return updateTable(m, msg)
	case "showEntry":
		return updateShowEntry(m, msg)
	case "addEntry":
		return updateAddEntry(m, msg)
	default:
		return m, nil
	}
}

func (m model) View() string {
	switch m.state {
	case "table":
		return viewTable(m)
	case "showEntry":
		return viewShowEntry(m)
	case "addEntry":
		return viewAddEntry(m)
	default:
		return "Unknown state"
	}
}

// --- Table ---
func updateTable(m model, msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "j", "down":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if len(m.entries) > 0 {
				m.selected = &m.entries[m.cursor]
				m.state = "showEntry"
			}
		case "a":
			m.textInputs = newAddInputs()
			m.state = "addEntry"
		case "d":
			if len(m.entries) == 0 {
				break
			}
			e := m.entries[m.cursor]
			if err := m.session.Delete(e.ID); err != nil {
				m.msg = err.Error()
				break
			}
			if err := save(m.session, m.store); err != nil {
				m.msg = err.Error()
			}
			m.entries, _ = m.session.List()
			if m.cursor >= len(m.entries) && m.cursor > 0 {
				m.cursor--
			}
		case "c":
			if len(m.entries) == 0 {
				break
			}
			e := m.entries[m.cursor]
			clipboard.WriteAll(string(e.Password))
			m.msg = "Password copied! (clears in 30s)"
			time.AfterFunc(30*time.Second, func() {
				clipboard.WriteAll("")
			})
		}
	}
	return m, nil
}

func viewTable(m model) string {
	s := titleStyle.Render("Vault Entries") + "\n\n"
	for i, e := range m.entries {
		line := fmt.Sprintf("%-36s  %-20s  %-20s", e.ID, e.Title, e.Username)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		s += line + "\n"
	}
	if m.msg != "" {
		s += "\n" + msgStyle.Render(m.msg)
	}
	s += "\nCommands: j/k=move, enter=show, a=add, d=delete, c=copy, q=quit"
	return s
}

// --- Show Entry ---
func updateShowEntry(m model, msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.state = "table"
			m.selected = nil
			m.msg = ""
		case "v":
			m.msg = fmt.Sprintf("Password: %s", string(m.selected.Password))
		}
	}
	return m, nil
}

func viewShowEntry(m model) string {
	e := m.selected
	s := fmt.Sprintf("Title: %s\nUsername: %s\nURL: %s\nNotes: %s\nPassword: %s\n",
		e.Title, e.Username, e.URL, e.Notes, "********")
	if m.msg != "" {
		s += "\n" + msgStyle.Render(m.msg)
	}
	s += "\nPress 'v' to reveal, Esc to return"
	return s
}

// --- Add Entry ---
func updateAddEntry(m model, msg tea.Msg) (model, tea.Cmd) {
	for i := range m.textInputs {
		ti := &m.textInputs[i]
		if ti.Focused() {
			*ti, _ = ti.Update(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "down":
			m.focusNext(msg.String() == "shift+tab")
		case "esc":
			m.state = "table"
		case "ctrl+s":
			m = saveAddEntry(m)
		case "enter":
			// Saving on enter from the last input; earlier inputs advance.
			if m.textInputs[len(m.textInputs)-1].Focused() {
				m = saveAddEntry(m)
			} else {
				m.focusNext(false)
			}
		}
	}

	return m, nil
}

func (m *model) focusNext(backward bool) {
	n := len(m.textInputs)
	for i := 0; i < n; i++ {
		if m.textInputs[i].Focused() {
			m.textInputs[i].Blur()
			if backward {
				m.textInputs[(i-1+n)%n].Focus()
			} else {
				m.textInputs[(i+1)%n].Focus()
			}
			break
		}
	}
}

func saveAddEntry(m model) model {
	e := vault.NewEntry(
		m.textInputs[0].Value(),
		m.textInputs[1].Value(),
		[]byte(m.textInputs[2].Value()),
		m.textInputs[3].Value(),
		m.textInputs[4].Value(),
	)
	if _, err := m.session.Add(e); err != nil {
		m.msg = err.Error()
		return m
	}
	if err := save(m.session, m.store); err != nil {
		m.msg = err.Error()
	}
	m.entries, _ = m.session.List()
	m.state = "table"

	for i := range m.textInputs {
		m.textInputs[i].SetValue("")
	}
	return m
}

func viewAddEntry(m model) string {
	s := titleStyle.Render("Add New Entry") + "\n\n"
	for i, ti := range m.textInputs {
		s += fmt.Sprintf("%s: %s\n", ti.Placeholder, ti.View())
		if i < len(m.textInputs)-1 {
			s += "\n"
		}
	}
	s += "\nPress Enter to save, Esc to cancel"
	return s
}

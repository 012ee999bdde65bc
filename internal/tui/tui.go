package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/step-quest/internal/game"
	"github.com/tatianab/step-quest/internal/rules"
)

// SlotLister returns the names of the save slots in the active backend.
type SlotLister func(ctx context.Context) ([]string, error)

type sessionState int

const (
	stateInputName sessionState = iota
	statePlaying
	stateBusy
)

type model struct {
	state     sessionState
	game      *game.Game
	rules     *rules.Rules
	screen    *Screen
	slots     SlotLister
	textInput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	status    string
	width     int
	height    int
}

var (
	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	enemyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF8787")).
			Bold(true)
)

func NewModel(g *game.Game, r *rules.Rules, s *Screen, slots SlotLister, resumed bool) model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := model{
		state:     stateInputName,
		game:      g,
		rules:     r,
		screen:    s,
		slots:     slots,
		textInput: ti,
		viewport:  viewport.New(0, 0),
		spinner:   sp,
	}
	if resumed {
		m.state = statePlaying
		m.textInput.Placeholder = "step, attack, potion, buy <item>..."
	} else {
		m.textInput.Placeholder = "Enter your player's name..."
	}
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type actionDoneMsg struct {
	err error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			switch m.state {
			case stateInputName:
				name := strings.TrimSpace(m.textInput.Value())
				m.textInput.Reset()
				m.textInput.Placeholder = "step, attack, potion, buy <item>..."
				m.state = stateBusy
				return m, tea.Batch(m.begin(name), m.spinner.Tick)

			case statePlaying:
				input := m.textInput.Value()
				m.textInput.Reset()
				c, err := parseCommand(input)
				if err != nil {
					m.status = err.Error()
					return m, nil
				}
				m.status = ""
				switch c.kind {
				case cmdQuit:
					return m, tea.Quit
				case cmdHelp:
					m.status = m.helpText()
					return m, nil
				}
				m.state = stateBusy
				return m, tea.Batch(m.run(c), m.spinner.Tick)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.70)
		m.viewport.Height = msg.Height - 6
		m.refreshLog()

	case actionDoneMsg:
		m.state = statePlaying
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		}
		m.refreshLog()
		return m, nil

	case spinner.TickMsg:
		if m.state == stateBusy {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.state == stateInputName || m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateInputName:
		s = fmt.Sprintf(
			"Welcome to Step Quest!\n\n%s\n\n%s",
			"No saved adventurer found. What is your name?",
			m.textInput.View(),
		)

	case statePlaying, stateBusy:
		f := m.screen.frame()
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(f),
		)

		prompt := m.textInput.View()
		if m.state == stateBusy {
			prompt = m.spinner.View() + " ..."
		}
		help := helpStyle.Render(m.commandLine(f))

		parts := []string{mainView, "\n" + prompt}
		if m.status != "" {
			parts = append(parts, statusStyle.Render(m.status))
		}
		parts = append(parts, "\n"+help)
		s = lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	return "\n" + s + "\n"
}

func (m *model) refreshLog() {
	f := m.screen.frame()
	width := max(m.viewport.Width, 20)
	rendered := make([]string, 0, len(f.lines))
	for _, line := range f.lines {
		rendered = append(rendered, gameStyle.Width(width).Render(line))
	}
	m.viewport.SetContent(strings.Join(rendered, "\n"))
	m.viewport.GotoBottom()
}

func (m model) renderState(f frame) string {
	p := f.snapshot.Player

	hero := titleStyle.Render("HERO") + "\n" +
		fmt.Sprintf("%s\nHP: %d/%d\nAttack: %d\nDefense: %d\nCoins: %d\n\n",
			p.Name, p.HP, p.MaxHP, p.Attack, p.Defense, p.Coins)

	inventory := titleStyle.Render("INVENTORY") + "\n" +
		fmt.Sprintf("Health Potions: %d\nWeapon: %s\nArmor: %s\n\n",
			p.Inventory.HealthPotions, orNone(string(p.Equipment.Weapon)), orNone(string(p.Equipment.Armor)))

	content := hero + inventory

	if mon := f.snapshot.Monster; mon != nil {
		content += titleStyle.Render("ENEMY") + "\n" +
			enemyStyle.Render(mon.Name) + fmt.Sprintf("\nHP: %d\n\n", mon.HP)
	}

	if f.shop {
		content += titleStyle.Render("SHOP") + "\n"
		names := make([]string, 0, len(m.rules.Shop))
		for name := range m.rules.Shop {
			names = append(names, string(name))
		}
		sort.Strings(names)
		for _, name := range names {
			offer := m.rules.Shop[rules.ShopItem(name)]
			content += fmt.Sprintf("buy %s: %s (%d coins)\n", name, offer.Item, offer.Price)
		}
	}

	stateWidth := int(float64(m.width) * 0.27)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(content)
}

func (m model) commandLine(f frame) string {
	cmds := []string{"step"}
	if f.attack {
		cmds = append(cmds, "attack")
	}
	cmds = append(cmds, "potion")
	if f.shop {
		cmds = append(cmds, "buy <item>")
	}
	cmds = append(cmds, "save", "load", "saves", "/quit")
	return "Commands: " + strings.Join(cmds, ", ")
}

func (m model) helpText() string {
	return "step (s) explores, attack (a) fights, potion (p) heals, buy potion|weapon|armor shops, save/load, saves lists slots, /quit exits."
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

func (m model) begin(name string) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: m.game.Begin(context.Background(), name)}
	}
}

func (m model) run(c command) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch c.kind {
		case cmdStep:
			err = m.game.TakeStep(ctx)
		case cmdAttack:
			err = m.game.Attack(ctx)
		case cmdPotion:
			err = m.game.UsePotion(ctx)
		case cmdBuy:
			err = m.game.Buy(ctx, c.item)
		case cmdSave:
			err = m.game.Save(ctx)
		case cmdLoad:
			err = m.game.Load(ctx)
		case cmdSaves:
			err = m.listSlots(ctx)
		}
		return actionDoneMsg{err: err}
	}
}

func (m model) listSlots(ctx context.Context) error {
	if m.slots == nil {
		m.screen.ShowMessage("Save slots are not available.", game.Append)
		return nil
	}
	names, err := m.slots(ctx)
	if err != nil {
		return fmt.Errorf("list saves: %w", err)
	}
	if len(names) == 0 {
		m.screen.ShowMessage("There are no saved games yet.", game.Append)
		return nil
	}
	m.screen.ShowMessage(fmt.Sprintf("Saved slots: %s. Start with -slot <name> to play one.", strings.Join(names, ", ")), game.Append)
	return nil
}

// Run starts the TUI. resumed tells it whether a saved player was found; if
// not, it asks for a name first.
func Run(g *game.Game, r *rules.Rules, s *Screen, slots SlotLister, resumed bool) error {
	p := tea.NewProgram(NewModel(g, r, s, slots, resumed), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

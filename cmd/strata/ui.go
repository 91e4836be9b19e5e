// # cmd/strata/ui.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"strata/internal/graph"
	"strata/internal/history"
	"strata/internal/util"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	cycleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
	isCycle     bool
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list       list.Model
	cycles     [][]string
	notices    int
	lastUpdate time.Time
	fileCount  int
	funcCount  int
	maxLevel   int
	trend      *history.TrendPoint
	scanErr    error
}

type updateMsg struct {
	result *ScanResult
	err    error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.scanErr = msg.err
		m.lastUpdate = time.Now()

		var items []list.Item
		if msg.result != nil {
			m.cycles = msg.result.Cycles
			m.notices = len(msg.result.Notices)
			m.fileCount = msg.result.Files
			m.funcCount = msg.result.Table.Len()
			m.maxLevel = graph.MaxLevel(msg.result.Levels)
			m.trend = msg.result.Trend

			for _, c := range m.cycles {
				items = append(items, item{
					title:   "Dependency Cycle",
					desc:    strings.Join(c, " -> "),
					isCycle: true,
				})
			}
			if msg.result.Levels != nil {
				grouped := graph.GroupByLevel(msg.result.Levels)
				for _, level := range util.SortedIntKeys(grouped) {
					for _, name := range grouped[level] {
						fn, ok := msg.result.Table.Lookup(name)
						if !ok {
							continue
						}
						desc := fn.Path
						if len(fn.Deps) > 0 {
							desc += "  -  " + strings.Join(fn.Deps, ", ")
						}
						items = append(items, item{
							title: fmt.Sprintf("Level %d  %s", level, name),
							desc:  desc,
						})
					}
				}
			}
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	statusText := fmt.Sprintf("Last scan: %v | %d files | %d functions | max level %d",
		m.lastUpdate.Format("15:04:05"), m.fileCount, m.funcCount, m.maxLevel)
	if m.trend != nil {
		statusText += fmt.Sprintf(" | funcs %+d edges %+d depth %+d",
			m.trend.DeltaFunctions, m.trend.DeltaEdges, m.trend.DeltaMaxLevel)
	}
	status := statusStyle.Render(statusText)

	var summary string
	switch {
	case m.scanErr != nil && len(m.cycles) > 0:
		summary = cycleStyle.Render(fmt.Sprintf("%d Cycles", len(m.cycles)))
	case m.scanErr != nil:
		summary = cycleStyle.Render(m.scanErr.Error())
	case m.notices > 0:
		summary = noticeStyle.Render(fmt.Sprintf("%d Nested Declarations", m.notices))
	default:
		summary = successStyle.Render("Acyclic")
	}

	header := fmt.Sprintf("%s\n%s  %s\n", titleStyle("strata — function levels"), summary, status)
	return docStyle.Render(header + m.list.View())
}

// RunUI starts the terminal UI seeded with the initial scan. Subsequent
// updates arrive from the watch loop via teaProgram.Send.
func (a *App) RunUI(initial *ScanResult, initialErr error) error {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)

	m := model{list: l}
	p := tea.NewProgram(m, tea.WithAltScreen())
	a.setProgram(p)

	go p.Send(updateMsg{result: initial, err: initialErr})

	_, err := p.Run()
	return err
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindgrid/pkg/document"
	"github.com/matzehuels/mindgrid/pkg/layout"
	"github.com/matzehuels/mindgrid/pkg/mindmap"
	"github.com/matzehuels/mindgrid/pkg/pipeline"
	"github.com/matzehuels/mindgrid/pkg/virtualize"
)

var (
	exploreSelectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	exploreNormalStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	exploreCollapsedStyle = lipgloss.NewStyle().Foreground(colorYellow)
)

// exploreCommand creates the explore command for interactive browsing.
func (c *CLI) exploreCommand() *cobra.Command {
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "explore [document.json|outline.toml]",
		Short: "Browse a mind map document interactively",
		Long: `Browse a mind map document interactively in the terminal.

Navigate the visible nodes, collapse and expand subtrees, and cycle
through the layout strategies. The status bar shows the position each
node would take on the canvas and how many nodes the current viewport
would cull.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runExplore(cmd, opts)
		},
	}

	addLayoutFlags(cmd, &opts)
	return cmd
}

func (c *CLI) runExplore(cmd *cobra.Command, opts pipeline.Options) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()
	opts.Logger = c.Logger

	doc, err := runner.Load(cmd.Context(), opts)
	if err != nil {
		return err
	}

	mode, err := layout.ParseMode(opts.Mode)
	if err != nil {
		return err
	}

	model := newExploreModel(doc, mode, opts.Config)
	program := tea.NewProgram(model, tea.WithContext(cmd.Context()), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(exploreModel); ok && m.err != nil {
		return m.err
	}
	return nil
}

// exploreModes is the cycle order for the "m" key.
var exploreModes = []layout.Mode{
	layout.ModeHorizontal,
	layout.ModeVertical,
	layout.ModeRadial,
	layout.ModeFishbone,
}

// exploreModel is the bubbletea model for interactive document browsing.
// It owns a layout engine so collapse toggles and mode switches reuse
// cached positions whenever the document shape allows it.
type exploreModel struct {
	title  string
	nodes  []mindmap.Node
	engine *layout.Engine
	mode   layout.Mode
	cfg    layout.Config

	tree    *mindmap.Tree
	res     layout.Result
	visible []string
	stats   virtualize.Stats

	cursor int
	offset int
	height int
	err    error
}

func newExploreModel(doc *document.Document, mode layout.Mode, cfg layout.Config) exploreModel {
	m := exploreModel{
		title:  doc.Title,
		nodes:  append([]mindmap.Node(nil), doc.Nodes...),
		engine: layout.NewEngine(),
		mode:   mode,
		cfg:    cfg,
		height: 20,
	}
	m.refresh()
	return m
}

// refresh rebuilds the tree from the node array and recomputes the
// layout and the virtualization stats for the default canvas viewport.
func (m *exploreModel) refresh() {
	tree, err := mindmap.Build(m.nodes)
	if err != nil {
		m.err = err
		return
	}
	m.tree = tree

	res, _, err := m.engine.Layout(tree, m.mode, m.cfg)
	if err != nil {
		m.err = err
		return
	}
	m.res = res
	m.visible = tree.VisibleNodes()

	vp := virtualize.Viewport{Width: m.cfg.CanvasWidth, Height: m.cfg.CanvasHeight}
	m.stats = virtualize.Virtualize(tree, res.Positions, vp, virtualize.Options{Config: m.cfg}).Stats

	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", " ":
			m.toggleCollapse()
		case "m":
			m.cycleMode()
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 7
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

// toggleCollapse flips the Collapsed flag of the node under the cursor.
// Leaves are skipped; collapsing a leaf would be a no-op edit.
func (m *exploreModel) toggleCollapse() {
	if m.cursor >= len(m.visible) {
		return
	}
	id := m.visible[m.cursor]
	if len(m.tree.AllChildren(id)) == 0 {
		return
	}
	for i := range m.nodes {
		if m.nodes[i].ID == id {
			m.nodes[i].Collapsed = !m.nodes[i].Collapsed
			break
		}
	}
	m.refresh()
}

func (m *exploreModel) cycleMode() {
	for i, mode := range exploreModes {
		if mode == m.mode {
			m.mode = exploreModes[(i+1)%len(exploreModes)]
			break
		}
	}
	m.refresh()
}

func (m exploreModel) View() string {
	if m.err != nil {
		return StyleWarning.Render("error: "+m.err.Error()) + "\n"
	}

	var b strings.Builder
	title := m.title
	if title == "" {
		title = "Untitled"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(string(m.mode)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ collapse/expand  m mode  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.visible) {
		end = len(m.visible)
	}

	for i := m.offset; i < end; i++ {
		id := m.visible[i]
		node, _ := m.tree.Node(id)
		depth := m.tree.Depth(id)

		marker := "•"
		if len(m.tree.AllChildren(id)) > 0 {
			marker = "▾"
			if node.Collapsed {
				marker = "▸"
			}
		}

		content := node.Content
		if content == "" {
			content = id
		}
		pos := m.res.Positions[id]
		line := fmt.Sprintf("%s%s %s %s",
			strings.Repeat("  ", depth), marker, content,
			StyleDim.Render(fmt.Sprintf("(%.0f, %.0f)", pos.X, pos.Y)))

		switch {
		case i == m.cursor:
			b.WriteString(exploreSelectedStyle.Render("▸ ") + line)
		case node.Collapsed:
			b.WriteString("  " + exploreCollapsedStyle.Render(line))
		default:
			b.WriteString("  " + exploreNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]  %d in view · %d culled",
		m.cursor+1, len(m.visible), m.stats.Kept, m.stats.Culled)))
	return b.String()
}

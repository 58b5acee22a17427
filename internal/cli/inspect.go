package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/zxtools/zxviz/pkg/graph"
	"github.com/zxtools/zxviz/pkg/zx"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command for browsing diagram nodes.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse the nodes of a diagram interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := graph.ReadFile(args[0])
			if err != nil {
				return err
			}

			if plain {
				printKeyValue("File", args[0])
				printKeyValue("Nodes", fmt.Sprintf("%d", d.NodeCount()))
				printKeyValue("Edges", fmt.Sprintf("%d", d.EdgeCount()))
				fmt.Println(renderNodeTable(d, d.Nodes(), -1, 0, len(d.Nodes())))
				return nil
			}

			model := NewNodeListModel(d)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the node table without the interactive browser")

	return cmd
}

// NodeListModel is the bubbletea model for browsing diagram nodes.
type NodeListModel struct {
	Diagram *zx.Diagram
	Nodes   []*zx.Node
	Cursor  int
	Height  int
	Offset  int
}

// NewNodeListModel creates a node browser for the given diagram.
func NewNodeListModel(d *zx.Diagram) NodeListModel {
	return NodeListModel{
		Diagram: d,
		Nodes:   d.Nodes(),
		Height:  15,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Diagram Nodes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Nodes) {
		end = len(m.Nodes)
	}

	b.WriteString(renderNodeTable(m.Diagram, m.Nodes, m.Cursor, m.Offset, end))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Nodes))))

	return b.String()
}

// renderNodeTable renders nodes[offset:end] as a lipgloss table. A cursor
// of -1 disables highlighting.
func renderNodeTable(d *zx.Diagram, nodes []*zx.Node, cursor, offset, end int) string {
	rows := [][]string{}
	for i := offset; i < end; i++ {
		n := nodes[i]

		marker := "  "
		if i == cursor {
			marker = "▸ "
		}

		phase := "—"
		if n.Kind.IsSpider() {
			phase = fmt.Sprintf("%.4f", n.Phase)
		}

		neighbors := "—"
		if ids := d.Neighbors(n.ID); len(ids) > 0 {
			parts := make([]string, len(ids))
			for j, id := range ids {
				parts[j] = fmt.Sprintf("%d", id)
			}
			neighbors = strings.Join(parts, ", ")
		}

		rows = append(rows, []string{
			marker,
			fmt.Sprintf("%d", n.ID),
			n.Kind.Label(),
			phase,
			fmt.Sprintf("%d", d.Degree(n.ID)),
			neighbors,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Kind", "Phase", "Degree", "Neighbors").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := offset + row
			if actualIdx >= len(nodes) {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if actualIdx == cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			if col >= 4 {
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorWhite)
		})

	return t.Render()
}

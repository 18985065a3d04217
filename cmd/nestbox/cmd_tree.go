package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/phanxgames/nestbox"
)

var (
	treeStateStyle = lipgloss.NewStyle().Faint(true)
	treeOpenStyle  = lipgloss.NewStyle().Bold(true)
)

func boxState(b *nestbox.Box) string {
	if b.IsOpen() {
		return fmt.Sprintf("open x%g", b.Zoom())
	}
	return "closed"
}

// formatTree renders the store depth first, one box per line. When styled,
// each box id is drawn in the box's color and open boxes are bold.
func formatTree(s *nestbox.Store, styled bool) string {
	var sb strings.Builder
	for _, rec := range nestbox.Flatten(s) {
		b := rec.Box
		id := fmt.Sprintf("#%d", b.ID)
		state := boxState(b)
		if styled {
			c := b.Color.RGBA8()
			st := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
			if b.IsOpen() {
				st = st.Inherit(treeOpenStyle)
			}
			id = st.Render("■ " + id)
			state = treeStateStyle.Render(state)
		}
		fmt.Fprintf(&sb, "%s%s %g,%g %gx%g %s\n",
			strings.Repeat("  ", rec.Depth), id, b.X, b.Y, b.W, b.H, state)
	}
	return sb.String()
}

func runTree(cmd *cobra.Command, args []string) error {
	copyOut, _ := cmd.Flags().GetBool("clipboard")

	var store *nestbox.Store
	if len(args) == 1 {
		r := newReplayer(cfg, "", logger)
		r.outDir = "" // skip snapshot steps
		res, err := r.replayFile(args[0])
		if err != nil {
			return err
		}
		store = res.Editor.Store()
	} else {
		store = nestbox.NewEditor(nestbox.EditorConfig{Logger: logger}).Store()
	}

	fmt.Fprint(cmd.OutOrStdout(), formatTree(store, true))
	if copyOut {
		if err := clipboard.WriteAll(formatTree(store, false)); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		logger.Info("tree copied to clipboard", "boxes", store.Len())
	}
	return nil
}

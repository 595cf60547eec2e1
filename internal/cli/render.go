package cli

import (
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

const shortIDLen = 8

func displayID(id string, full bool) string {
	if full || len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// listLines renders the header, progress bar and the visible items.
func listLines(l *todo.List, fullIDs bool) []string {
	t := ui.Current()
	done, pending := l.Stats()
	view := "Pending"
	if l.ShowCompleted() {
		view = "Finished"
	}
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), done+pending,
	)

	lines := []string{
		header,
		t.Muted.Render(ui.ProgressBar(done, done+pending, 28)),
		"",
		t.Accent.Render(view),
	}
	lines = append(lines, itemLines(l, fullIDs)...)
	lines = append(lines, "")
	if l.ShowCompleted() {
		lines = append(lines, t.Muted.Render("Tip: remove with `tada delete <id>`"))
	} else {
		lines = append(lines, t.Muted.Render("Tip: add with `tada add \"Buy milk\"`"))
	}
	return lines
}

func itemLines(l *todo.List, fullIDs bool) []string {
	t := ui.Current()
	items := l.VisibleItems()
	if len(items) == 0 {
		msg := "no pending tasks"
		switch {
		case len(l.Items()) == 0:
			msg = "You completed all the tasks!"
		case l.ShowCompleted():
			msg = "no finished tasks"
		}
		return []string{t.Muted.Render(msg)}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, itemLine(it, fullIDs))
	}
	return out
}

func itemLine(it model.Item, fullIDs bool) string {
	t := ui.Current()
	box, content := t.Muted.Render(t.BoxUnchecked), ui.Truncate(it.Content, 80)
	if it.IsCompleted {
		box, content = t.Success.Render(t.BoxChecked), t.Done.Render(content)
	}
	return fmt.Sprintf("%s %s %s", box, t.Muted.Render(displayID(it.ID, fullIDs)), content)
}

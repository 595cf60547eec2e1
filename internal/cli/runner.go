package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Env is what every subcommand runs against.
type Env struct {
	List *todo.List // initialized list
	Out  io.Writer  // command output, defaults to os.Stdout
	Err  io.Writer  // diagnostics, defaults to os.Stderr

	FullIDs     bool   // print full ids in listings
	HistoryPath string // readline history for `shell`

	// Interactive runs the TUI. Nil means tui.Run.
	Interactive func(*todo.List) error
	// Lines feeds `shell`. Nil means a readline prompt on the terminal.
	Lines LineReader
}

func (e *Env) out() io.Writer {
	if e.Out == nil {
		return os.Stdout
	}
	return e.Out
}

func (e *Env) err() io.Writer {
	if e.Err == nil {
		return os.Stderr
	}
	return e.Err
}

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, env *Env) int {
	if len(args) == 0 {
		PrintHelp(env.err())
		return ExitUsage
	}
	switch args[0] {
	case "help", "-h", "--help":
		PrintHelp(env.out())
		return ExitOK
	case "ui":
		return doInteractive(env)
	case "shell":
		return doShell(env)
	}
	return dispatch(args, env, true)
}

// dispatch runs the list commands shared by the one-shot CLI and the shell.
func dispatch(args []string, env *Env, oneShot bool) int {
	cmd, a := args[0], args[1:]

	switch cmd {
	case "ls", "list":
		completed := false
		for _, f := range a {
			switch f {
			case "--completed", "-completed", "-c":
				completed = true
			default:
				ui.Fail(env.err(), "usage: tada list [--completed]")
				return ExitUsage
			}
		}
		return doList(env, completed)

	case "add":
		if len(a) == 0 {
			ui.Fail(env.err(), "usage: tada add <text...>")
			return ExitUsage
		}
		return doAdd(env, strings.Join(a, " "))

	case "toggle", "done":
		if len(a) != 1 {
			ui.Fail(env.err(), "usage: tada toggle <id>")
			return ExitUsage
		}
		return doToggle(env, a[0])

	case "delete", "rm":
		if len(a) != 1 {
			ui.Fail(env.err(), "usage: tada delete <id>")
			return ExitUsage
		}
		return doDelete(env, a[0])
	}

	ui.Fail(env.err(), "unknown subcommand: "+cmd)
	if oneShot {
		fmt.Fprintln(env.err())
		PrintHelp(env.err())
	}
	return ExitUsage
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `tada - a tiny todo list

Usage:
  tada [flags] <subcommand> [args]

Subcommands:
  add <text...>          Add a new task (text can be multiple words)
  list [--completed]     List pending tasks, or finished ones with --completed
  toggle <id>            Mark a task finished, or pending again
  delete <id>            Delete a task
  ui                     Interactive list
  shell                  Line-oriented prompt over the same commands

Ids may be shortened to any unique prefix.

Flags:
  -backend json|sqlite|memory   storage backend (default json)
  -data-dir <dir>               where data files live (default: working dir)
  -key <name>                   storage key (default todos)
  -theme classic|neon|mono      color theme
  -full-ids                     print full ids
  -log-level <level>            log level (default warn)

Examples:
  tada add "Buy milk"
  tada list
  tada toggle 3f2a
  tada list --completed
  tada delete 3f2a
`)
}

// -------------- subcommand impls ----------------

func doAdd(env *Env, content string) int {
	env.List.UpdateDraft(content)
	it, err := env.List.AddTodo()
	if err != nil && !todo.IsPersistence(err) {
		return report(env, "add", err)
	}
	ui.OK(env.out(), "added "+displayID(it.ID, env.FullIDs))
	return report(env, "add", err)
}

func doToggle(env *Env, ref string) int {
	it, err := env.List.Lookup(ref)
	if err != nil {
		return report(env, "toggle", err)
	}
	it, err = env.List.ToggleCompleted(it.ID)
	if err != nil && !todo.IsPersistence(err) {
		return report(env, "toggle", err)
	}
	state := "pending"
	if it.IsCompleted {
		state = "finished"
	}
	ui.OK(env.out(), fmt.Sprintf("%s is %s", displayID(it.ID, env.FullIDs), state))
	return report(env, "toggle", err)
}

func doDelete(env *Env, ref string) int {
	id := ref
	it, err := env.List.Lookup(ref)
	switch {
	case errors.Is(err, todo.ErrAmbiguousID):
		return report(env, "delete", err)
	case err == nil:
		id = it.ID
	}

	if err := env.List.DeleteTodo(id); err != nil {
		return report(env, "delete", err)
	}
	if it.ID == "" {
		ui.OK(env.out(), "nothing to delete")
		return ExitOK
	}
	ui.OK(env.out(), "deleted "+displayID(it.ID, env.FullIDs))
	return ExitOK
}

func doList(env *Env, completed bool) int {
	if completed && !env.List.ShowCompleted() {
		env.List.ToggleVisibility()
		defer env.List.ToggleVisibility()
	}
	ui.Panel(env.out(), listLines(env.List, env.FullIDs))
	return ExitOK
}

// report prints err and maps it to an exit code. A persistence error is a
// warning: the change happened in memory but did not reach the store.
func report(env *Env, op string, err error) int {
	if err == nil {
		return ExitOK
	}
	switch {
	case todo.IsPersistence(err):
		ui.Warn(env.err(), op+": not saved: "+err.Error())
		return ExitError
	case errors.Is(err, todo.ErrValidation):
		ui.Fail(env.err(), err.Error())
		return ExitUsage
	case errors.Is(err, todo.ErrNotFound):
		ui.Fail(env.err(), op+": no such todo")
		fmt.Fprintln(env.err(), ui.Current().Muted.Render("Hint: run `tada list` or `tada list --completed` to see ids"))
		return ExitUsage
	case errors.Is(err, todo.ErrAmbiguousID):
		ui.Fail(env.err(), op+": id prefix matches several todos, type more of it")
		return ExitUsage
	}
	ui.Fail(env.err(), op+": "+err.Error())
	return ExitError
}

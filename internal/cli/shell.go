package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// LineReader yields one line of input per call and io.EOF at the end.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

type readlineInput struct {
	instance *readline.Instance
}

func newReadlineInput(historyPath string) (*readlineInput, error) {
	if historyPath != "" {
		if err := os.MkdirAll(filepath.Dir(historyPath), 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	instance, err := readline.NewEx(&readline.Config{
		Prompt:            "tada> ",
		HistoryFile:       historyPath,
		HistorySearchFold: true,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("init readline: %w", err)
	}
	return &readlineInput{instance: instance}, nil
}

func (r *readlineInput) ReadLine(prompt string) (string, error) {
	r.instance.SetPrompt(prompt)
	return r.instance.Readline()
}

func (r *readlineInput) Close() error {
	if r == nil || r.instance == nil {
		return nil
	}
	return r.instance.Close()
}

func doInteractive(env *Env) int {
	run := env.Interactive
	if run == nil {
		run = tui.Run
	}
	if err := run(env.List); err != nil {
		ui.Fail(env.err(), "ui: "+err.Error())
		return ExitError
	}
	return ExitOK
}

// doShell runs commands line by line against the same in-memory list, so a
// `show` lasts for the session.
func doShell(env *Env) int {
	in := env.Lines
	if in == nil {
		rl, err := newReadlineInput(env.HistoryPath)
		if err != nil {
			ui.Fail(env.err(), "shell: "+err.Error())
			return ExitError
		}
		in = rl
	}
	defer in.Close()

	fmt.Fprintln(env.out(), ui.Current().Muted.Render("Type `help` for commands, `quit` to leave."))
	for {
		line, err := in.ReadLine(prompt(env))
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return ExitOK
			}
			ui.Fail(env.err(), "shell: "+err.Error())
			return ExitError
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "quit", "exit":
			return ExitOK
		case "help":
			printShellHelp(env.out())
		case "show":
			if env.List.ToggleVisibility() {
				ui.OK(env.out(), "showing finished tasks")
			} else {
				ui.OK(env.out(), "showing pending tasks")
			}
		case "ui", "shell":
			ui.Fail(env.err(), args[0]+": not available inside the shell")
		default:
			dispatch(args, env, false)
		}
	}
}

func prompt(env *Env) string {
	if env.List.ShowCompleted() {
		return "tada (finished)> "
	}
	return "tada> "
}

func printShellHelp(w io.Writer) {
	fmt.Fprint(w, `Commands:
  add <text...>        Add a new task
  list [--completed]   List the current view, or finished tasks
  toggle <id>          Mark a task finished, or pending again
  delete <id>          Delete a task
  show                 Switch between pending and finished view
  quit                 Leave the shell
`)
}

package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tripscan/internal/app"
	"tripscan/internal/domain"
	apperrors "tripscan/internal/errors"
	"tripscan/internal/logging"
	"tripscan/internal/tui"
)

const version = "0.1.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		var exit *exitCodeError
		if errors.As(err, &exit) {
			if exit.message != "" {
				fmt.Fprintln(os.Stderr, exit.message)
			}
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, "error: "+apperrors.UserMessage(err))
		os.Exit(1)
	}
}

// exitCodeError carries a specific process exit code through cobra.
type exitCodeError struct {
	code    int
	message string
}

func (e *exitCodeError) Error() string {
	return e.message
}

// buildWithSpinner runs the traversal behind an interactive spinner,
// streaming the builder's progress lines into the TUI.
func buildWithSpinner(builder *app.Builder, root string, grouping domain.Grouping) (domain.Result, error) {
	program := tea.NewProgram(tui.NewModel(root), tea.WithOutput(os.Stderr))

	var result domain.Result
	var buildErr error
	go func() {
		builder.Logger = logging.New(progressWriter{program}, builder.Logger.Verbose)
		result, buildErr = builder.Build(root, grouping)
		program.Send(tui.DoneMsg{Err: buildErr})
	}()

	final, err := program.Run()
	if err != nil {
		return domain.Result{}, apperrors.Wrap(apperrors.Internal, "progress", "", err)
	}
	if model, ok := final.(tui.Model); ok && model.Canceled {
		return domain.Result{}, apperrors.New(apperrors.Internal, "scan", root, "scan interrupted")
	}
	return result, buildErr
}

// progressWriter forwards logger output into the running TUI.
type progressWriter struct {
	program *tea.Program
}

func (w progressWriter) Write(p []byte) (int, error) {
	w.program.Send(tui.ProgressMsg(string(p)))
	return len(p), nil
}

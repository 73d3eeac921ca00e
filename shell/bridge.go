// Package shell implements the Shell Bridge: the boundary between the
// grammar compiler's Any(Command(...))/Any(Nonterminal(PATH|DIRECTORY))
// inputs and the user's actual shell, which is the only thing that knows
// how to list files, directories, and arbitrary command output.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	cmplerr "github.com/nihei9/cmplgram/error"
	"github.com/nihei9/cmplgram/internal/log"
)

// Name identifies the user's shell, since each one completes paths and
// directories through a different builtin.
type Name string

const (
	Bash Name = "bash"
	Fish Name = "fish"
	Zsh  Name = "zsh"
)

// Bridge runs shell commands on behalf of the matcher to resolve
// match-anything inputs into concrete completion candidates.
type Bridge interface {
	// ShellOut runs an arbitrary command (an Any(Command(cmd)) input) and
	// returns its stdout.
	ShellOut(ctx context.Context, command string) (string, error)
	// CompletePaths lists filesystem entries whose name starts with prefix.
	CompletePaths(ctx context.Context, prefix string) (string, error)
	// CompleteDirectories lists directories whose name starts with prefix.
	CompleteDirectories(ctx context.Context, prefix string) (string, error)
}

// ExecBridge is the default Bridge, shelling out to the real bash, fish or
// zsh binary on PATH. Timeout bounds every invocation; a Shell Bridge that
// hangs must not hang the whole completion request.
type ExecBridge struct {
	Shell   Name
	Timeout time.Duration
}

// NewExecBridge returns an ExecBridge for shell with the default 2 second
// timeout.
func NewExecBridge(shell Name) *ExecBridge {
	return &ExecBridge{Shell: shell, Timeout: 2 * time.Second}
}

func (b *ExecBridge) ShellOut(ctx context.Context, command string) (string, error) {
	return b.run(ctx, command)
}

func (b *ExecBridge) CompletePaths(ctx context.Context, prefix string) (string, error) {
	switch b.Shell {
	case Fish:
		return b.run(ctx, fmt.Sprintf("__fish_complete_path %s", shellQuote(prefix)))
	case Zsh:
		return b.run(ctx, fmt.Sprintf(`printf "%%s\n" %s*`, shellQuote(prefix)))
	default:
		return b.run(ctx, fmt.Sprintf("compgen -A file -- %s", shellQuote(prefix)))
	}
}

func (b *ExecBridge) CompleteDirectories(ctx context.Context, prefix string) (string, error) {
	switch b.Shell {
	case Fish:
		return b.run(ctx, fmt.Sprintf("__fish_complete_directories %s", shellQuote(prefix)))
	case Zsh:
		return b.run(ctx, fmt.Sprintf(`printf "%%s\n" %s*(/)`, shellQuote(prefix)))
	default:
		return b.run(ctx, fmt.Sprintf("compgen -A directory -- %s", shellQuote(prefix)))
	}
}

func (b *ExecBridge) run(ctx context.Context, command string) (string, error) {
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, string(b.Shell), "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		failure := &cmplerr.ShellInvocationFailed{
			Cmd:    command,
			Stdout: stdout.String(),
			Stderr: stderr.String(),
			Cause:  err,
		}
		log.WithError(failure).Warnf("shell bridge command failed")
		return "", failure
	}
	return stdout.String(), nil
}

// shellQuote wraps s in single quotes, escaping any single quote it
// contains, so a prefix typed by the user can never be interpreted as
// shell syntax when interpolated into a -c command string.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

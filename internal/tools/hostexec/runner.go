package hostexec

import (
	"context"
	"strings"
	"time"
)

const defaultCmdTimeout = 60 * time.Second

// Result captures one finished host command.
type Result struct {
	Stdout   string
	Stderr   string
	Code     int
	TimedOut bool
}

// Runner executes a diagnostic command on the host.
type Runner interface {
	Run(ctx context.Context, name string, args []string, timeout time.Duration) (Result, error)
}

// CommandLine renders a command for display and for result records.
func CommandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

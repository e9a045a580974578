package command

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/google/shlex"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/utils/logging"
)

// outputTailSize bounds the command output kept in errors.
const outputTailSize = 4096

// Runner executes command lines without a shell. The line is split with
// POSIX shell quoting rules.
type Runner struct {
	env     []string
	timeout time.Duration
}

var _ interfaces.CommandRunner = (*Runner)(nil)

type Option func(*Runner)

// WithEnv appends KEY=VALUE pairs to the inherited environment.
func WithEnv(env ...string) Option {
	return func(x *Runner) {
		x.env = append(x.env, env...)
	}
}

// WithTimeout kills the command after d. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(x *Runner) {
		x.timeout = d
	}
}

func New(options ...Option) *Runner {
	runner := &Runner{}
	for _, opt := range options {
		opt(runner)
	}
	return runner
}

func (x *Runner) Run(ctx context.Context, dir string, commandLine string) error {
	args, err := shlex.Split(commandLine)
	if err != nil {
		return goerr.Wrap(types.ErrInvalidOption, "failed to parse command line",
			goerr.V("command", commandLine),
			goerr.V("error", err.Error()),
		)
	}
	if len(args) == 0 {
		return goerr.Wrap(types.ErrInvalidOption, "command line is empty")
	}

	if x.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, x.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), x.env...)

	started := time.Now()
	out, err := cmd.CombinedOutput()
	logger := logging.From(ctx).With(
		slog.String("command", args[0]),
		slog.String("dir", dir),
		slog.Duration("duration", time.Since(started)),
	)

	if err != nil {
		return goerr.Wrap(err, "command failed",
			goerr.V("command", commandLine),
			goerr.V("dir", dir),
			goerr.V("output", tail(out)),
		)
	}

	logger.Debug("Command finished", slog.String("output", tail(out)))
	return nil
}

func tail(out []byte) string {
	if len(out) > outputTailSize {
		out = out[len(out)-outputTailSize:]
	}
	return string(out)
}

// Package sandbox evaluates untrusted widget scripts in isolation.
//
// Scripts are Starlark source with exactly one predeclared global: the
// capability object (see CapabilitySymbol). Every failure a script can
// produce (syntax error, runtime error, a rejected query) is converted
// into a structured Outcome at the boundary; nothing propagates to the
// caller as an error or a panic.
package sandbox

import (
	"context"
	"fmt"
	"log/slog"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// resultVariable is read from the script's globals when the script is a
// multi-statement program rather than a single expression.
const resultVariable = "result"

// scriptFilename is the synthetic filename used in Starlark backtraces.
const scriptFilename = "widget.star"

// Config holds sandbox configuration.
type Config struct {
	// MaxSteps bounds the number of abstract Starlark computation steps
	// per execution. Zero means unlimited; runaway loops are then the
	// operator's problem.
	MaxSteps uint64

	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Sandbox executes scripts. It is stateless and safe for concurrent use.
type Sandbox struct {
	maxSteps uint64
	logger   *slog.Logger
}

// New creates a sandbox.
func New(cfg Config) *Sandbox {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Sandbox{maxSteps: cfg.MaxSteps, logger: logger}
}

// Outcome is the result of one script execution: either a value or a
// failure record, never both.
type Outcome struct {
	Value   any
	Failure *Failure
}

// OK reports whether the execution produced a value.
func (o Outcome) OK() bool {
	return o.Failure == nil
}

// Failure carries everything an operator needs to reproduce a failed
// execution. It is a returned value, not an error: script failures are
// data to the composition layer.
type Failure struct {
	Message string
	Err     error
	User    Principal
	Script  string
}

// Execute evaluates scriptText against the capability context and returns
// the outcome. It never returns an error and never panics past the
// boundary.
func (s *Sandbox) Execute(ctx context.Context, scriptText string, capCtx CapabilityContext) Outcome {
	value, err := s.eval(ctx, scriptText, capCtx)
	if err != nil {
		s.logger.Debug("widget script failed",
			"user", capCtx.User.Username,
			"error", err)
		return Outcome{Failure: &Failure{
			Message: err.Error(),
			Err:     err,
			User:    capCtx.User,
			Script:  scriptText,
		}}
	}
	return Outcome{Value: value}
}

func (s *Sandbox) eval(ctx context.Context, scriptText string, capCtx CapabilityContext) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script evaluation panicked: %v", r)
		}
	}()

	thread := &starlark.Thread{
		Name: scriptFilename,
		Print: func(_ *starlark.Thread, _ string) {
			// Scripts have no output channel besides their result
		},
	}
	if s.maxSteps > 0 {
		thread.SetMaxExecutionSteps(s.maxSteps)
	}

	globals := starlark.StringDict{
		CapabilitySymbol: capCtx.toStarlark(ctx),
	}

	// A script is either a single expression or a small program that
	// assigns to "result". Sniff with the expression parser so runtime
	// errors in expressions are not misread as statement programs.
	if _, parseErr := syntax.ParseExpr(scriptFilename, scriptText, 0); parseErr == nil { //nolint:staticcheck // SA1019: will migrate to ParseExprOptions later
		result, evalErr := starlark.Eval(thread, scriptFilename, scriptText, globals) //nolint:staticcheck // SA1019: will migrate to EvalOptions later
		if evalErr != nil {
			return nil, evalErr
		}
		return ToGo(result)
	}

	out, execErr := starlark.ExecFile(thread, scriptFilename, scriptText, globals) //nolint:staticcheck // SA1019: will migrate to ExecFileOptions later
	if execErr != nil {
		return nil, execErr
	}

	result, ok := out[resultVariable]
	if !ok {
		return nil, nil
	}
	return ToGo(result)
}

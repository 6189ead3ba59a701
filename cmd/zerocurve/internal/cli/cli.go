package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/meenmo/zerocurve/config"
)

// Env is shared by all subcommands. The root command fills Config and Logger
// before any subcommand runs.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Config config.Config
	Logger *logrus.Logger
}

// Failure marks an error raised while computing a result, as opposed to a
// usage error. Failures are reported as JSON on stdout with exit code 1.
type Failure struct {
	Err error
	// Reported is set when the error is already part of the written output.
	Reported bool
}

func (f *Failure) Error() string { return f.Err.Error() }
func (f *Failure) Unwrap() error { return f.Err }

// Fail wraps err as a *Failure.
func Fail(err error) error {
	if err == nil {
		return nil
	}
	return &Failure{Err: err}
}

// Failf formats a *Failure.
func Failf(format string, args ...interface{}) error {
	return &Failure{Err: fmt.Errorf(format, args...)}
}

// ErrorOutput is the JSON body written for failures.
type ErrorOutput struct {
	Error string `json:"error"`
}

// ReadInput reads path, or stdin when path is empty or "-". An interactive
// stdin with no path is a usage error.
func (e *Env) ReadInput(path string) ([]byte, error) {
	path = strings.TrimSpace(path)
	if path != "" && path != "-" {
		return os.ReadFile(path)
	}
	if f, ok := e.Stdin.(*os.File); ok && path == "" {
		if stat, err := f.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			return nil, fmt.Errorf("no input: pass --input or pipe JSON on stdin")
		}
	}
	return io.ReadAll(e.Stdin)
}

// WriteJSON writes v as one JSON line on stdout.
func (e *Env) WriteJSON(v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.Stdout, string(b))
	return err
}

// WriteError writes msg as an ErrorOutput on stdout.
func (e *Env) WriteError(msg string) {
	b, _ := json.Marshal(ErrorOutput{Error: msg})
	fmt.Fprintln(e.Stdout, string(b))
}

package telemetry

import (
	"fmt"
	"os"
)

type Logger interface {
	Info(msg string)
	Debug(msg string)
	Error(msg string, err error)
}

type NOPLogger struct {
}

func (n NOPLogger) Info(msg string) {
}
func (n NOPLogger) Debug(msg string) {
}
func (n NOPLogger) Error(msg string, err error) {
}

// StderrLogger writes every message to stderr. The CLI uses it when run
// with --verbose.
type StderrLogger struct {
}

func (s StderrLogger) Info(msg string) {
	fmt.Fprintf(os.Stderr, "INFO  %s\n", msg)
}
func (s StderrLogger) Debug(msg string) {
	fmt.Fprintf(os.Stderr, "DEBUG %s\n", msg)
}
func (s StderrLogger) Error(msg string, err error) {
	fmt.Fprintf(os.Stderr, "ERROR %s: %v\n", msg, err)
}

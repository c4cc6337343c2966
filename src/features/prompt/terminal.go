package prompt

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
)

// Terminal is the stdin-backed Prompter. A single reader goroutine
// feeds lines into a channel so each Ask can also watch for the
// interrupt signal while blocked.
type Terminal struct {
	out       io.Writer
	lines     chan string
	readErr   chan error
	interrupt chan os.Signal
}

// NewTerminal starts reading from r (usually os.Stdin) and listens for
// SIGINT. Close the returned Terminal is not needed; the reader
// goroutine ends with the input stream.
func NewTerminal(r io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		out:       out,
		lines:     make(chan string),
		readErr:   make(chan error, 1),
		interrupt: make(chan os.Signal, 1),
	}
	signal.Notify(t.interrupt, os.Interrupt)

	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			t.lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			t.readErr <- err
			return
		}
		t.readErr <- io.EOF
	}()

	return t
}

// readLine blocks until a line, end of input, or an interrupt. EOF and
// SIGINT are both terminal: the whole batch stops.
func (t *Terminal) readLine() (string, error) {
	select {
	case line := <-t.lines:
		return strings.TrimSpace(line), nil
	case <-t.readErr:
		slog.Info("Input closed, exiting")
		return "", ErrCancelled
	case <-t.interrupt:
		slog.Info("Interrupt received, exiting")
		return "", ErrCancelled
	}
}

// AskString prompts for a string value with an optional default.
func (t *Terminal) AskString(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(t.out, "%s [default: %s]: ", label, def)
	} else {
		fmt.Fprintf(t.out, "%s []: ", label)
	}

	val, err := t.readLine()
	if err != nil {
		return def, err
	}
	if val == "" {
		if def == "" {
			slog.Error("No value and no default provided")
			return "", ErrNoValue
		}
		return def, nil
	}
	return val, nil
}

// AskInt prompts for an integer value with a default.
func (t *Terminal) AskInt(label string, def int) (int, error) {
	fmt.Fprintf(t.out, "%s [default: %d]: ", label, def)

	val, err := t.readLine()
	if err != nil {
		return def, err
	}
	if val == "" {
		return def, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		slog.Error("Invalid integer provided", "value", val)
		return def, ErrInvalidValue
	}
	return n, nil
}

// AskBool prompts for a y/n answer with a default.
func (t *Terminal) AskBool(label string, def bool) (bool, error) {
	fmt.Fprintf(t.out, "%s [y/n]: ", label)

	val, err := t.readLine()
	if err != nil {
		return def, err
	}
	switch strings.ToLower(val) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		slog.Error("Invalid boolean value provided", "value", val)
		return def, ErrInvalidValue
	}
}

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"veilchat/internal/domain"
)

// maxLineBytes caps a single line read from a non-interactive source.
const maxLineBytes = 1 << 20

// ErrInterrupted is returned when the operator aborts a prompt with Ctrl-C.
var ErrInterrupted = fmt.Errorf("input interrupted: %w", context.Canceled)

// Terminal reads lines interactively with line editing and history.
type Terminal struct {
	line *liner.State
}

// NewTerminal puts the terminal into line-editing mode. Close restores it.
func NewTerminal() *Terminal {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &Terminal{line: line}
}

// ReadLine shows prompt and returns the entered line. Ctrl-D yields io.EOF.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	s, err := t.line.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrInterrupted
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s) != "" {
		t.line.AppendHistory(s)
	}
	return s, nil
}

func (t *Terminal) Close() error { return t.line.Close() }

// Reader reads lines from a plain stream such as a pipe or file.
type Reader struct {
	sc     *bufio.Scanner
	prompt io.Writer
}

// NewReader reads lines from r. Prompts are written to prompt when it is
// not nil.
func NewReader(r io.Reader, prompt io.Writer) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)
	return &Reader{sc: sc, prompt: prompt}
}

// ReadLine returns the next line without its terminator, or io.EOF.
func (r *Reader) ReadLine(prompt string) (string, error) {
	if r.prompt != nil && prompt != "" {
		fmt.Fprint(r.prompt, prompt)
	}
	if r.sc.Scan() {
		return strings.TrimRight(r.sc.Text(), "\r"), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (r *Reader) Close() error { return nil }

// LineSource is a LineReader that holds terminal state until closed.
type LineSource interface {
	domain.LineReader
	io.Closer
}

// Open picks an interactive Terminal when in is a terminal and a plain
// Reader otherwise.
func Open(in *os.File, prompt io.Writer) LineSource {
	if term.IsTerminal(int(in.Fd())) {
		return NewTerminal()
	}
	return NewReader(in, prompt)
}

var (
	_ domain.LineReader = (*Terminal)(nil)
	_ domain.LineReader = (*Reader)(nil)
)

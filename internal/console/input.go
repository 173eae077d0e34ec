package console

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
)

// LineReader reads one line of player input at a time. *readline.Instance
// satisfies it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// NewReadline opens an interactive terminal reader with tab completion for
// actions and commands. An empty historyFile disables history.
func NewReadline(historyFile string) (*readline.Instance, error) {
	completer := readline.NewPrefixCompleter()
	for _, name := range completions() {
		completer.Children = append(completer.Children, readline.PcItem(name))
	}

	return readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
}

// NewLineReader picks readline when in is a terminal and falls back to a
// ScannerReader for piped or redirected input.
func NewLineReader(in *os.File, out io.Writer, historyFile string) (LineReader, error) {
	if !readline.IsTerminal(int(in.Fd())) {
		return NewScannerReader(in, out), nil
	}
	return NewReadline(historyFile)
}

// ScannerReader reads lines from a plain io.Reader, for piped input and
// tests. Prompts are echoed to out.
type ScannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

// NewScannerReader creates a reader over r
func NewScannerReader(r io.Reader, out io.Writer) *ScannerReader {
	return &ScannerReader{scanner: bufio.NewScanner(r), out: out}
}

// Readline returns the next line without its newline, or io.EOF
func (s *ScannerReader) Readline() (string, error) {
	if s.prompt != "" {
		fmt.Fprint(s.out, s.prompt)
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

// SetPrompt sets the prompt printed before each read
func (s *ScannerReader) SetPrompt(prompt string) {
	s.prompt = prompt
}

// Close is a no-op
func (s *ScannerReader) Close() error {
	return nil
}

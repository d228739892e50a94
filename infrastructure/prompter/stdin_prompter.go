package prompter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"screenplay-worker/domain/ports"
)

// StdinPrompter asks the operator for a replacement API key on the
// terminal. An empty line means the operator declined.
type StdinPrompter struct {
	in     io.Reader
	out    io.Writer
	logger *slog.Logger
}

var _ ports.CredentialPrompterPort = (*StdinPrompter)(nil)

func NewStdinPrompter() *StdinPrompter {
	return &StdinPrompter{
		in:     os.Stdin,
		out:    os.Stderr,
		logger: slog.Default().With("component", "stdin_prompter"),
	}
}

func (p *StdinPrompter) RequestNewCredential(ctx context.Context) (string, error) {
	fmt.Fprintln(p.out, "All API keys are over quota.")
	fmt.Fprint(p.out, "Enter a new Gemini API key (empty line to cancel): ")

	type readResult struct {
		line string
		err  error
	}
	ch := make(chan readResult, 1)
	go func() {
		reader := bufio.NewReader(p.in)
		line, err := reader.ReadString('\n')
		ch <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.err != nil && res.line == "" {
			if res.err == io.EOF {
				return "", nil
			}
			return "", fmt.Errorf("failed to read credential: %w", res.err)
		}
		key := strings.TrimSpace(res.line)
		if key == "" {
			p.logger.Info("operator declined to provide a new credential")
		}
		return key, nil
	}
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// terminalConfirmer asks a yes/no question on the terminal.
type terminalConfirmer struct {
	in  io.Reader
	out io.Writer

	scanner *bufio.Scanner
}

func (t *terminalConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if t.scanner == nil {
		t.scanner = bufio.NewScanner(t.in)
	}
	fmt.Fprintf(t.out, "%s [y/N] ", prompt)

	answer := make(chan bool, 1)
	go func() {
		ok := t.scanner.Scan()
		answer <- ok
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case ok := <-answer:
		if !ok {
			if err := t.scanner.Err(); err != nil {
				return false, fmt.Errorf("reading answer: %w", err)
			}
			return false, io.ErrUnexpectedEOF
		}
	}

	switch strings.ToLower(strings.TrimSpace(t.scanner.Text())) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

package toc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Lines returns the lines of r as a lazy sequence, without line terminators.
// Lines of any length are accepted. The returned func reports the read error
// that ended the sequence, if any, once iteration is done.
func Lines(r io.Reader) (iter.Seq[string], func() error) {
	var readErr error
	br := bufio.NewReader(r)
	seq := func(yield func(string) bool) {
		for {
			line, err := br.ReadString('\n')
			if len(line) > 0 {
				if !yield(strings.TrimRight(line, "\r\n")) {
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr = err
				}
				return
			}
		}
	}
	return seq, func() error { return readErr }
}

// Write writes each line of lines to w followed by a newline.
func Write(w io.Writer, lines iter.Seq[string]) error {
	bw := bufio.NewWriter(w)
	for line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("write toc: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write toc: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write toc: %w", err)
	}
	return nil
}

// Run reads a document from r and writes its table of contents to w.
func Run(r io.Reader, w io.Writer) error {
	lines, readErr := Lines(r)
	if err := Write(w, Generate(lines)); err != nil {
		return err
	}
	if err := readErr(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

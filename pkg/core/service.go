package core

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Service generates table-of-contents fragments.
type Service struct {
	scanner  Scanner
	renderer Renderer
	logger   *slog.Logger

	mu        sync.RWMutex
	documents int
	entries   int
}

// NewService creates a new Service. A nil logger falls back to slog.Default().
func NewService(scanner Scanner, renderer Renderer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		scanner:  scanner,
		renderer: renderer,
		logger:   logger,
	}
}

// Generate reads a document from r and writes its table of contents to w,
// one line per output line. It returns the number of entries written.
func (s *Service) Generate(ctx context.Context, r io.Reader, w io.Writer) (int, error) {
	if s.scanner == nil || s.renderer == nil {
		return 0, errors.New("service is not configured")
	}

	var scanErr error
	headings := func(yield func(Heading) bool) {
		for h, err := range s.scanner.Scan(ctx, r) {
			if err != nil {
				scanErr = err
				return
			}
			if err := ctx.Err(); err != nil {
				scanErr = err
				return
			}
			s.logger.Debug("heading", "line", h.Line, "level", h.Level, "title", h.Title)
			if !yield(h) {
				return
			}
		}
	}

	bw := bufio.NewWriter(w)
	lines := 0
	for line := range s.renderer.Render(headings) {
		if _, err := bw.WriteString(line); err != nil {
			return 0, fmt.Errorf("write toc: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return 0, fmt.Errorf("write toc: %w", err)
		}
		lines++
	}
	if scanErr != nil {
		return 0, fmt.Errorf("scan input: %w", scanErr)
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("write toc: %w", err)
	}

	entries := max(lines-1, 0)
	s.record(entries)
	return entries, nil
}

// Headings collects every heading of a document without rendering it.
func (s *Service) Headings(ctx context.Context, r io.Reader) ([]Heading, error) {
	var out []Heading
	for h, err := range s.scanner.Scan(ctx, r) {
		if err != nil {
			return nil, fmt.Errorf("scan input: %w", err)
		}
		out = append(out, h)
	}
	return out, nil
}

func (s *Service) record(entries int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents++
	s.entries += entries
}

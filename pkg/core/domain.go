// Package core holds the domain types of md2toc and the Service that ties a
// heading Scanner to a table-of-contents Renderer.
package core

import (
	"context"
	"fmt"
	"io"
	"iter"
)

// Heading is a header line recognised in the input.
type Heading struct {
	// Level is the count of leading '#' characters minus one.
	Level int
	// Title is the trimmed text after the marker.
	Title string
	// Line is the 1-based input line the heading was found on.
	Line int
}

// Entry is a Heading paired with the anchor slug it links to.
type Entry struct {
	Heading
	Slug string
}

// Scanner extracts headings from a document.
type Scanner interface {
	// Name identifies the scanner in config and logs.
	Name() string
	// Scan yields headings in input order. A non-nil error ends the sequence.
	Scan(ctx context.Context, r io.Reader) iter.Seq2[Heading, error]
}

// Slugger turns a heading title into an anchor identifier.
type Slugger interface {
	Name() string
	Slug(title string) string
}

// Renderer turns headings into output lines.
// The first line yielded is always the table header.
type Renderer interface {
	Render(headings iter.Seq[Heading]) iter.Seq[string]
}

// EventType represents the outcome of a build step.
type EventType string

const (
	EventBuild  EventType = "BUILD"
	EventRemove EventType = "REMOVE"
	EventError  EventType = "ERROR"
)

// Event reports what happened to one source file during build or watch.
type Event struct {
	Type      EventType
	Source    string
	Target    string
	Entries   int
	Err       error
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	switch e.Type {
	case EventError:
		return fmt.Sprintf("%s %s: %v", e.Type, e.Source, e.Err)
	case EventRemove:
		return fmt.Sprintf("%s %s", e.Type, e.Target)
	default:
		return fmt.Sprintf("%s %s -> %s (%d entries)", e.Type, e.Source, e.Target, e.Entries)
	}
}

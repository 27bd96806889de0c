// Package toc turns header lines of a Markdown-like document into an HTML
// table-of-contents fragment.
//
// A header line is one or more '#' characters followed by whitespace and the
// title text. Each one becomes a div linking to an anchor derived from the
// title:
//
//	<h2>Table of Contents</h2>
//	<div class="toc toc-level-0"><a href="#title">Title</a></div>
//	<div class="toc toc-level-1"><a href="#sub-section">Sub Section</a></div>
//
// Everything is lazy. Generate consumes its input only as output is pulled, and
// a sequence built over a one-shot reader (see Lines) cannot be replayed.
package toc

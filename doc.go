// Package md2toc is the Composition Root for md2toc.
//
// md2toc reads a Markdown-like document and prints an HTML table of contents
// for it: a fixed header line followed by one div per header line, linking to
// an anchor derived from the header text.
//
//	# Title           ->  <div class="toc toc-level-0"><a href="#title">Title</a></div>
//	## Sub Section    ->  <div class="toc toc-level-1"><a href="#sub-section">Sub Section</a></div>
//
// The transformation itself lives in package toc and needs nothing else:
//
//	err := toc.Run(os.Stdin, os.Stdout)
//
// This package wires the optional pieces around it: a goldmark based heading
// scanner, front matter stripping, alternative slug styles, a project config
// file (.md2toc.yaml), and a filesystem builder/watcher that keeps a fragment
// next to every Markdown file.
//
// Usage:
//
//	svc, err := md2toc.New(
//		md2toc.WithScanner("markdown"),
//		md2toc.WithLogger(logger),
//	)
//	n, err := svc.Generate(ctx, os.Stdin, os.Stdout)
package md2toc

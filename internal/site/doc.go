// Package site drives a full build: it prepares the output root, copies
// theme stylesheets, loads the template set and walks the content tree.
//
// The walk is depth-first and pre-order. Each directory is handled by one
// call that returns what it rendered and the pages it found, so a
// directory's index page sees exactly its own siblings.
package site

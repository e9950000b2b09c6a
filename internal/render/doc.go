// Package render loads the template set and writes rendered pages.
//
// Templates are plain text/template files named by their base name
// (special.html). Output is never HTML-escaped: page content is already
// HTML produced by the markdown converter.
//
// Two built-in templates, default-page and default-index, back every set.
// A loaded file with the same name (or the same name plus .html) replaces
// the built-in.
package render

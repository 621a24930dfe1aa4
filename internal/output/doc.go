// Package output formats coverage comparison results.
//
// Four formats are supported:
//   - markdown: the fenced diff table plus a warning line, ready to post as a review comment (default)
//   - text:     the table without the code fence
//   - json:     metrics of both reports, rendered rows, warning and body
//   - terminal: the table with +/- rows colored when writing to a TTY
//
// Use [GetWriter] to obtain a [Writer] for a given format string, or
// [WriteResult] to also select the destination.
package output

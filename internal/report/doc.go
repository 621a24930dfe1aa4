// Package report compares a current coverage report with its baseline.
//
// [FromText] parses two raw report bodies and renders the diff table;
// [Run] first fetches both bodies from a [Source]. A missing baseline is
// not an error: the table falls back to its no-baseline form and no
// regression warning is raised.
package report

// Package source fetches raw coverage report bodies.
//
// [File] reads local paths (or stdin for "-"), [HTTP] downloads URLs
// without credentials, and [Auto] picks one by the location's scheme.
// A report that does not exist is reported as an error wrapping
// [fs.ErrNotExist], which callers treat as a missing baseline.
package source

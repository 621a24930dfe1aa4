// Package circleci locates coverage report artifacts of CircleCI builds.
//
// It uses the public v1.1 REST API without credentials: for a branch it
// finds the most recent successful build of a job, then the artifact whose
// path ends with the configured suffix.
package circleci

// Package gitctx reads repository metadata from the local git checkout.
//
// covdiff uses it to default the branch whose CircleCI builds hold the
// current coverage report.
package gitctx

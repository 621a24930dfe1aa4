// Package diff renders two coverage reports as a Codecov-style table inside
// a fenced "diff" code block, so that review systems color the +/- rows.
//
//	```diff
//	@@           Coverage Diff            @@
//	##           master     #123     +/-  ##
//	========================================
//	+ Coverage    85.0%    90.0%  +5.00%
//	========================================
//	  Files          10       10
//	+ Lines         200      210     +10
//	========================================
//	- Misses         30       21      -9
//	```
//
// Column widths are fixed. Values wider than their column are never
// truncated; they push the rest of the row to the right.
//
// Rendering is a pure function of its two inputs.
package diff

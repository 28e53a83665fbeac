// Package listing reads and writes method trees in a textual S-expression
// format, used to feed the optimizer from files and to print its results.
//
// A listing holds an optional version header followed by methods:
//
//	(version "1.0.0")
//	(method $max
//	  (lcmp (load $a) (load $b) (range 0 1))
//	  (ifle $Else (range 1 2))
//	  (return (load $a))
//	  (label $Else)
//	  (return (load $b)))
//
// Body nodes are labels, expressions written as (mnemonic operand
// arguments... ranges...), nested (block ...), (try ...) regions with
// (body ...), (catch "type"... $var (body ...)) and (finally (body ...)),
// and (basicblock ...) after block construction. A block may also carry
// (entry $label) and (range start end) forms.
//
// Labels and variables are identified by name within one method.
// Comments use ;; for lines and (; ;) for blocks.
package listing

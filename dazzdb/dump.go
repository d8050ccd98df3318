package dazzdb

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrSyntax reports a dump line that could not be lexed, typically a
	// malformed integer field.
	ErrSyntax = errors.New("syntax error in structural dump")

	// ErrBounds reports structurally valid dump lines whose values are
	// inconsistent with each other: record indices outside the declared
	// count, records before the count declaration, or inverted contig
	// spans.  A table built from such a dump cannot be trusted.
	ErrBounds = errors.New("inconsistent structural dump")
)

// Parse builds the contig table described by the structural dump read
// from r.  The dump must declare the contig count before its first contig
// record; see the package comment for the line grammar.  Errors wrap
// ErrSyntax or ErrBounds and carry the offending line number.
func Parse(r io.Reader) (*DB, error) {
	db := &DB{first: make(map[string]int)}
	var (
		scanner  = bufio.NewScanner(r)
		declared bool
		cur      = -1 // 0-based index of the current contig record
		lineIdx  int
	)
	for scanner.Scan() {
		lineIdx++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "+":
			if len(fields) < 2 || fields[1] != "R" {
				continue // only the contig total matters
			}
			if declared {
				return nil, errors.Wrapf(ErrBounds, "line %d: duplicate contig count declaration", lineIdx)
			}
			if len(fields) < 3 {
				return nil, errors.Wrapf(ErrSyntax, "line %d: missing contig count", lineIdx)
			}
			n, err := strconv.ParseInt(fields[2], 10, 64)
			if err != nil {
				return nil, errors.Wrapf(ErrSyntax, "line %d: contig count %q", lineIdx, fields[2])
			}
			if n < 0 || n > math.MaxInt32 {
				return nil, errors.Wrapf(ErrBounds, "line %d: contig count %d outside [0, %d]", lineIdx, n, math.MaxInt32)
			}
			db.contigs = make([]Contig, n)
			declared = true
		case "R":
			if !declared {
				return nil, errors.Wrapf(ErrBounds, "line %d: contig record before the count declaration", lineIdx)
			}
			if len(fields) < 2 {
				return nil, errors.Wrapf(ErrSyntax, "line %d: contig record without an index", lineIdx)
			}
			id, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, errors.Wrapf(ErrSyntax, "line %d: contig index %q", lineIdx, fields[1])
			}
			if id < 1 || id > len(db.contigs) {
				return nil, errors.Wrapf(ErrBounds, "line %d: contig index %d outside [1, %d]", lineIdx, id, len(db.contigs))
			}
			cur = id - 1
		case "H":
			if cur < 0 {
				return nil, errors.Wrapf(ErrBounds, "line %d: scaffold header before the first contig record", lineIdx)
			}
			if len(fields) < 2 {
				return nil, errors.Wrapf(ErrSyntax, "line %d: scaffold header without a name", lineIdx)
			}
			name := fields[len(fields)-1]
			db.contigs[cur].Scaffold = name
			// Record only the scaffold's first contig.
			if _, ok := db.first[name]; !ok {
				db.first[name] = cur
				db.scaffolds = append(db.scaffolds, name)
			}
		case "L":
			if cur < 0 {
				return nil, errors.Wrapf(ErrBounds, "line %d: contig span before the first contig record", lineIdx)
			}
			if len(fields) < 3 {
				return nil, errors.Wrapf(ErrSyntax, "line %d: contig span needs begin and end fields", lineIdx)
			}
			begin, err := strconv.ParseInt(fields[len(fields)-2], 10, 32)
			if err != nil {
				return nil, errors.Wrapf(ErrSyntax, "line %d: contig begin %q", lineIdx, fields[len(fields)-2])
			}
			end, err := strconv.ParseInt(fields[len(fields)-1], 10, 32)
			if err != nil {
				return nil, errors.Wrapf(ErrSyntax, "line %d: contig end %q", lineIdx, fields[len(fields)-1])
			}
			if begin < 0 || end < begin {
				return nil, errors.Wrapf(ErrBounds, "line %d: invalid contig span [%d, %d)", lineIdx, begin, end)
			}
			db.contigs[cur].Begin = int32(begin)
			db.contigs[cur].End = int32(end)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading structural dump")
	}
	if !declared {
		return nil, errors.Wrap(ErrBounds, "structural dump carries no contig count declaration")
	}
	return db, nil
}

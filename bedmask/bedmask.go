// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bedmask maps BED annotation records onto the contigs of an
// assembly database, producing the interval list of a mask track.
// Records arrive in scaffold coordinates (default) or directly in contig
// coordinates; scaffold records are located against the database's contig
// decomposition and split wherever they cross a contig boundary.  A
// malformed record never aborts a run: it is skipped with a warning and
// the scan continues.
package bedmask

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/dazztrack/dazzdb"
	"github.com/grailbio/dazztrack/encoding/track"
	"github.com/klauspost/compress/gzip"
)

// MaxCutoff bounds the accepted cutoff values; configuration with a
// cutoff at or beyond it is rejected.
const MaxCutoff = 1 << 30

// maxLineBytes bounds a single annotation line, ignored trailing fields
// included.
const maxLineBytes = 1024 * 1024 * 64 // 64 MB

// Opts configures one conversion run.
type Opts struct {
	// BEDPath names the annotation input.  Empty reads standard input.
	// Gzip-compressed files are recognized by file extension.
	BEDPath string
	// ContigCoords marks the input's first column as 1-based contig IDs
	// instead of scaffold names; records are bounds-checked and passed
	// through without search or splitting.
	ContigCoords bool
	// Cutoff drops every clipped interval shorter than this many bases.
	// An interval exactly cutoff long is kept.
	Cutoff int
	// Verbose forwards search-trace events to the diagnostic sink in
	// addition to warnings.
	Verbose bool
}

// DefaultOpts is the default value of Opts.
var DefaultOpts = Opts{
	BEDPath:      "",
	ContigCoords: false,
	Cutoff:       0,
	Verbose:      false,
}

// Stats summarizes one conversion run.
type Stats struct {
	Records   int // annotation records seen, blank lines excluded
	Skipped   int // records dropped before mapping
	Unmapped  int // scaffold records whose scan accepted no interval
	Split     int // records mapped onto more than one contig
	Intervals int // intervals accepted into the mask
	Rejected  int // clipped parts dropped by the cutoff
}

// getTokens splits curLine into at most len(tokens) fields, returning the
// number found.  Any run of bytes <= ' ' separates fields.
func getTokens(tokens [][]byte, curLine []byte) int {
	pos := 0
	for tokenIdx := range tokens {
		for pos != len(curLine) && curLine[pos] <= ' ' {
			pos++
		}
		if pos == len(curLine) {
			return tokenIdx
		}
		start := pos
		for pos != len(curLine) && curLine[pos] > ' ' {
			pos++
		}
		tokens[tokenIdx] = curLine[start:pos]
	}
	return len(tokens)
}

// MapBED maps the annotation records read from r onto db's contigs,
// reporting per-record diagnostics to sink.  Only the first three fields
// of a record are read; extra fields and blank lines are ignored.
// Coordinates must be non-negative and fit in an int32.  The returned
// error reports stream-level failures only; lines longer than
// maxLineBytes abort the scan.
func MapBED(r io.Reader, db *dazzdb.DB, opts *Opts, sink Sink) ([]track.Interval, Stats, error) {
	m := &mapper{db: db, cutoff: opts.Cutoff, sink: sink}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineBytes)
	var tokens [3][]byte
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		nToken := getTokens(tokens[:], scanner.Bytes())
		if nToken == 0 {
			continue
		}
		m.stats.Records++
		if nToken < 3 {
			sink.Notify(MalformedRecord{Line: lineIdx, Reason: "fewer than 3 fields"})
			m.stats.Skipped++
			continue
		}
		begin, err := strconv.Atoi(gunsafe.BytesToString(tokens[1]))
		if err != nil || begin < 0 || begin > math.MaxInt32 {
			sink.Notify(MalformedRecord{Line: lineIdx, Reason: fmt.Sprintf("begin %q", tokens[1])})
			m.stats.Skipped++
			continue
		}
		end, err := strconv.Atoi(gunsafe.BytesToString(tokens[2]))
		if err != nil || end < 0 || end > math.MaxInt32 {
			sink.Notify(MalformedRecord{Line: lineIdx, Reason: fmt.Sprintf("end %q", tokens[2])})
			m.stats.Skipped++
			continue
		}
		if opts.ContigCoords {
			m.contigRecord(lineIdx, tokens[0], begin, end)
		} else {
			m.scaffoldRecord(lineIdx, tokens[0], begin, end)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, m.stats, errors.E(err, "reading annotation records")
	}
	return m.out, m.stats, nil
}

// Convert maps every record of the annotation input named by opts onto
// db's contigs, logging diagnostics through the process log.
func Convert(ctx context.Context, db *dazzdb.DB, opts *Opts) (intervals []track.Interval, stats Stats, err error) {
	if opts.BEDPath == "" {
		return MapBED(os.Stdin, db, opts, LogSink{File: "stdin", Verbose: opts.Verbose})
	}
	in, err := file.Open(ctx, opts.BEDPath)
	if err != nil {
		return nil, Stats{}, err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(opts.BEDPath) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return nil, Stats{}, err
		}
	}
	return MapBED(reader, db, opts, LogSink{File: opts.BEDPath, Verbose: opts.Verbose})
}

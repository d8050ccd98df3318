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
package bedmask

import (
	"fmt"

	"github.com/grailbio/base/log"
)

// An Event is one structured diagnostic produced while mapping annotation
// records onto contigs.  Events are plain data; a Sink decides rendering.
// Every event renders as a single line of key=value fields led by its
// message kind.
type Event interface {
	fmt.Stringer
	// Kind returns the event's stable message kind tag.
	Kind() string
	// Warning reports whether the event describes lost or failed data
	// rather than search tracing.
	Warning() bool
}

// A Sink consumes diagnostic events.
type Sink interface {
	Notify(e Event)
}

// LogSink renders events through the process log: warnings through the
// error logger, search traces through the info logger and only when
// Verbose is set.  File names the annotation input and prefixes every
// line.
type LogSink struct {
	File    string
	Verbose bool
}

// Notify implements Sink.
func (s LogSink) Notify(e Event) {
	if e.Warning() {
		log.Error.Printf("%s: %s", s.File, e)
	} else if s.Verbose {
		log.Printf("%s: %s", s.File, e)
	}
}

// BeginSearch traces the start of the contig scan for one
// scaffold-coordinate record.  First is the 1-based ID of the scaffold's
// first contig.
type BeginSearch struct {
	Line     int
	Scaffold string
	First    int32
}

// Kind implements Event.
func (BeginSearch) Kind() string { return "beginSearch" }

// Warning implements Event.
func (BeginSearch) Warning() bool { return false }

func (e BeginSearch) String() string {
	return fmt.Sprintf("message=%s line=%d scaffold=%s firstContig=%d", e.Kind(), e.Line, e.Scaffold, e.First)
}

// EndOfScaffoldSearch traces a scan stopping because the contig run of
// the record's scaffold ended at the 1-based contig ID Contig.
type EndOfScaffoldSearch struct {
	Line     int
	Scaffold string
	Contig   int32
}

// Kind implements Event.
func (EndOfScaffoldSearch) Kind() string { return "breakSearch" }

// Warning implements Event.
func (EndOfScaffoldSearch) Warning() bool { return false }

func (e EndOfScaffoldSearch) String() string {
	return fmt.Sprintf("message=%s line=%d scaffold=%s contig=%d reason=endOfScaffold",
		e.Kind(), e.Line, e.Scaffold, e.Contig)
}

// EndOfIntervalSearch traces a scan stopping at the first contig lying
// entirely past the record's interval.
type EndOfIntervalSearch struct {
	Line     int
	Scaffold string
	Contig   int32
}

// Kind implements Event.
func (EndOfIntervalSearch) Kind() string { return "breakSearch" }

// Warning implements Event.
func (EndOfIntervalSearch) Warning() bool { return false }

func (e EndOfIntervalSearch) String() string {
	return fmt.Sprintf("message=%s line=%d scaffold=%s contig=%d reason=pastIntervalEnd",
		e.Kind(), e.Line, e.Scaffold, e.Contig)
}

// SplitRecord traces a record that mapped onto more than one contig.
// Splitting is expected behavior, not an anomaly.
type SplitRecord struct {
	Line     int
	Scaffold string
	Parts    int
}

// Kind implements Event.
func (SplitRecord) Kind() string { return "splitInterval" }

// Warning implements Event.
func (SplitRecord) Warning() bool { return false }

func (e SplitRecord) String() string {
	return fmt.Sprintf("message=%s line=%d scaffold=%s parts=%d", e.Kind(), e.Line, e.Scaffold, e.Parts)
}

// UnknownScaffold reports a record naming a scaffold absent from the
// database.  Suggestion, when nonempty, is the closest known scaffold
// name.
type UnknownScaffold struct {
	Line       int
	Scaffold   string
	Suggestion string
}

// Kind implements Event.
func (UnknownScaffold) Kind() string { return "mappingFailed" }

// Warning implements Event.
func (UnknownScaffold) Warning() bool { return true }

func (e UnknownScaffold) String() string {
	s := fmt.Sprintf("message=%s line=%d scaffold=%s reason=unknownScaffold", e.Kind(), e.Line, e.Scaffold)
	if e.Suggestion != "" {
		s += fmt.Sprintf(" closest=%s", e.Suggestion)
	}
	return s
}

// CutoffRejected reports one clipped interval dropped for being shorter
// than the cutoff.  Begin and End are contig-local.
type CutoffRejected struct {
	Line   int
	Contig int32
	Begin  int32
	End    int32
	Cutoff int
}

// Kind implements Event.
func (CutoffRejected) Kind() string { return "mappingFailed" }

// Warning implements Event.
func (CutoffRejected) Warning() bool { return true }

func (e CutoffRejected) String() string {
	return fmt.Sprintf("message=%s line=%d contig=%d interval=[%d,%d) reason=belowCutoff cutoff=%d",
		e.Kind(), e.Line, e.Contig, e.Begin, e.End, e.Cutoff)
}

// MalformedRecord reports a record skipped before mapping: too few
// fields, an unparsable number, or contig-mode bounds violations.
type MalformedRecord struct {
	Line   int
	Reason string
}

// Kind implements Event.
func (MalformedRecord) Kind() string { return "mappingFailed" }

// Warning implements Event.
func (MalformedRecord) Warning() bool { return true }

func (e MalformedRecord) String() string {
	return fmt.Sprintf("message=%s line=%d reason=%q", e.Kind(), e.Line, e.Reason)
}

// UnmappedRecord reports a scaffold-coordinate record whose scan accepted
// no interval.  Rejected counts overlapping parts dropped by the cutoff.
type UnmappedRecord struct {
	Line     int
	Scaffold string
	Rejected int
}

// Kind implements Event.
func (UnmappedRecord) Kind() string { return "unmappedInterval" }

// Warning implements Event.
func (UnmappedRecord) Warning() bool { return true }

func (e UnmappedRecord) String() string {
	return fmt.Sprintf("message=%s line=%d scaffold=%s rejectedParts=%d",
		e.Kind(), e.Line, e.Scaffold, e.Rejected)
}

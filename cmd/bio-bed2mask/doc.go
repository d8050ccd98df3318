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

/*
Given an assembly database and a BED file of annotations, bio-bed2mask
writes the annotations as a mask track next to the database.  The
database's scaffold-to-contig decomposition is read from DBdump, every
BED interval is mapped onto the contigs it overlaps, and the result is
stored as the hidden track file pair .<db>.<mask>.anno and
.<db>.<mask>.data, the layout DBshow and DAZZ_DB-based assemblers read.

BED records name scaffolds by default; an interval crossing a contig
boundary is split at the boundary and an interval touching no contig is
dropped with a warning.  With -contig-coords the first BED column is
instead a 1-based contig ID and records pass through unsplit.

A malformed or unmappable record never aborts the run.  The track is
written only after the whole input has been read.

Sample usage:
bio-bed2mask \
    -bed repeats.bed \
    -cutoff 10 \
    assembly.db \
    rep
*/
package main

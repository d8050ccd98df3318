// Package dazzdb reads the contig-level structure of a DAZZ_DB-style
// assembly database.  A database stores each scaffold of an assembly as
// one or more contigs, the gap-free stretches actually carrying sequence;
// annotation tracks address the database by contig, in database record
// order.  The package does not open the database file itself.  It parses
// the line-tagged structural dump produced by the external introspection
// tool (DBdump), for example:
//
//   + R 4
//   R 1
//   H 10 scaffold_1
//   L 0 0 1000
//   R 2
//   H 10 scaffold_1
//   L 0 1200 2500
//   R 3
//   H 10 scaffold_2
//   L 0 0 750
//   R 4
//   H 10 scaffold_2
//   L 0 900 1400
//
// "+ R n" declares the contig count, "R i" starts the 1-based i-th contig
// record, "H" names the containing scaffold (last field), and "L" gives
// the contig's half-open span within the scaffold (last two fields).
// Lines with any other tag are ignored.
package dazzdb

// Contig is one gap-free stretch of assembled sequence: a piece of a
// scaffold, located by its half-open [Begin, End) span in scaffold
// coordinates.
type Contig struct {
	Scaffold string
	Begin    int32
	End      int32
}

// Len returns the number of bases in the contig.
func (c Contig) Len() int32 { return c.End - c.Begin }

// DB is the contig-level decomposition of one assembly database: the
// contig table in database record order, plus an index from scaffold name
// to the table position of the scaffold's first contig.  Record order is
// load-bearing: a scaffold's contigs form one contiguous run, sorted by
// scaffold position, and tracks written against the database identify
// contigs by their 1-based position in this order.
type DB struct {
	contigs   []Contig
	first     map[string]int
	scaffolds []string
}

// NumContigs returns the number of contigs in the database.
func (db *DB) NumContigs() int { return len(db.contigs) }

// Contig returns the contig at 0-based table position i.
func (db *DB) Contig(i int) Contig { return db.contigs[i] }

// FirstContig returns the table position of the first contig belonging to
// the named scaffold, and whether the scaffold exists in the database.
func (db *DB) FirstContig(scaffold string) (int, bool) {
	i, ok := db.first[scaffold]
	return i, ok
}

// Scaffolds returns all scaffold names, in order of first appearance in
// the database.
func (db *DB) Scaffolds() []string { return db.scaffolds }

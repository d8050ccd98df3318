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
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/dazztrack/bedmask"
	"github.com/grailbio/dazztrack/dazzdb"
	"github.com/grailbio/dazztrack/encoding/track"
)

var (
	bedPath      = flag.String("bed", bedmask.DefaultOpts.BEDPath, "Input BED path; reads standard input when empty")
	contigCoords = flag.Bool("contig-coords", bedmask.DefaultOpts.ContigCoords, "Interpret the first BED column as 1-based contig IDs instead of scaffold names")
	cutoff       = flag.Int("cutoff", bedmask.DefaultOpts.Cutoff, "Drop mapped intervals shorter than this many bases (scaffold coordinates only)")
	dumpTool     = flag.String("dump-tool", "DBdump", "Program run to dump the database's contig structure")
	dumpArgs     = flag.String("dump-args", strings.Join(dazzdb.DefaultDumpArgs, " "), "Space-separated flags passed to the dump program before the database path")
	verbose      = flag.Bool("v", bedmask.DefaultOpts.Verbose, "Log the contig search of every record")
)

func bed2maskUsage() {
	fmt.Printf("Usage: %s [OPTIONS] dbpath maskname\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = bed2maskUsage
	shutdown := grail.Init()
	defer shutdown()

	allArgs := flag.Args()
	nPositionalArgs := flag.NArg()
	positionalArgs := allArgs[len(allArgs)-nPositionalArgs:]
	if nPositionalArgs != 2 {
		if nPositionalArgs < 2 {
			log.Fatalf("Missing positional arguments (dbpath and maskname required); please check flag syntax: '%s'", strings.Join(positionalArgs, " "))
		} else {
			log.Fatalf("Too many positional arguments (only dbpath and maskname expected); please check flag syntax: '%s'", strings.Join(positionalArgs, " "))
		}
	}
	dbPath, mask := positionalArgs[0], positionalArgs[1]
	if err := track.ValidateMaskName(mask); err != nil {
		log.Fatalf("%v", err)
	}
	if *cutoff < 0 || *cutoff >= bedmask.MaxCutoff {
		log.Fatalf("-cutoff %d out of range [0, %d)", *cutoff, bedmask.MaxCutoff)
	}

	ctx := vcontext.Background()
	src := dazzdb.ExecSource{Tool: *dumpTool, Args: strings.Fields(*dumpArgs)}
	db, err := dazzdb.Load(ctx, src, dbPath)
	if err != nil {
		log.Fatalf("%s: %v", dbPath, err)
	}
	log.Debug.Printf("%s: %d contigs in %d scaffolds", dbPath, db.NumContigs(), len(db.Scaffolds()))

	opts := bedmask.Opts{
		BEDPath:      *bedPath,
		ContigCoords: *contigCoords,
		Cutoff:       *cutoff,
		Verbose:      *verbose,
	}
	intervals, stats, err := bedmask.Convert(ctx, db, &opts)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := track.Create(ctx, dbPath, mask, db.NumContigs(), intervals); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("%s: mask %s has %d intervals from %d records (%d skipped, %d unmapped, %d split, %d parts cut off)",
		dbPath, mask, stats.Intervals, stats.Records, stats.Skipped, stats.Unmapped, stats.Split, stats.Rejected)
}

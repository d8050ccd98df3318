package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/dazztrack/encoding/track"
)

// maskChecksum summarizes one mask track.
type maskChecksum struct {
	// Mask is the track name.
	Mask string
	// NumContigs is the contig count recorded in the track header.
	NumContigs int
	// NumIntervals is the interval count across all contigs.
	NumIntervals int
	// MaskedBases is the sum of all interval lengths.
	MaskedBases int64
	// AnnoBytes and DataBytes are the track file sizes.
	AnnoBytes int64
	DataBytes int64
	// AnnoSeaHash and DataSeaHash are seahash sums of the raw track files.
	AnnoSeaHash uint64
	DataSeaHash uint64
}

func checksumPath(ctx context.Context, path string) (sum uint64, size int64, err error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return 0, 0, err
	}
	defer file.CloseAndReport(ctx, f, &err)
	h := seahash.New()
	if size, err = io.Copy(h, f.Reader(ctx)); err != nil {
		return 0, 0, err
	}
	return h.Sum64(), size, nil
}

// check reads the track back through the validating reader and prints a
// JSON summary of what it holds.
func check(w io.Writer, dbPath, mask string) error {
	ctx := vcontext.Background()
	m, err := track.Open(ctx, dbPath, mask)
	if err != nil {
		return err
	}
	csum := maskChecksum{Mask: mask, NumContigs: m.NumContigs, NumIntervals: len(m.Intervals)}
	for _, iv := range m.Intervals {
		csum.MaskedBases += int64(iv.End - iv.Begin)
	}
	if csum.AnnoSeaHash, csum.AnnoBytes, err = checksumPath(ctx, track.AnnoPath(dbPath, mask)); err != nil {
		return err
	}
	if csum.DataSeaHash, csum.DataBytes, err = checksumPath(ctx, track.DataPath(dbPath, mask)); err != nil {
		return err
	}
	js, err := json.MarshalIndent(csum, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(js))
	return err
}

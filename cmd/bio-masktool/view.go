package main

import (
	"io"

	"github.com/grailbio/base/tsv"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/dazztrack/encoding/track"
)

// view prints one mask track as TSV, either every interval or, with
// counts, one row per contig.
func view(w io.Writer, dbPath, mask string, counts bool) error {
	ctx := vcontext.Background()
	m, err := track.Open(ctx, dbPath, mask)
	if err != nil {
		return err
	}
	out := tsv.NewWriter(w)
	if counts {
		perContig := make([]int64, m.NumContigs)
		for _, iv := range m.Intervals {
			perContig[iv.ContigID-1]++
		}
		out.WriteString("CONTIG")
		out.WriteString("INTERVALS")
		if err := out.EndLine(); err != nil {
			return err
		}
		for id, n := range perContig {
			out.WriteInt64(int64(id + 1))
			out.WriteInt64(n)
			if err := out.EndLine(); err != nil {
				return err
			}
		}
		return out.Flush()
	}
	out.WriteString("CONTIG")
	out.WriteString("BEGIN")
	out.WriteString("END")
	if err := out.EndLine(); err != nil {
		return err
	}
	for _, iv := range m.Intervals {
		out.WriteInt64(int64(iv.ContigID))
		out.WriteInt64(int64(iv.Begin))
		out.WriteInt64(int64(iv.End))
		if err := out.EndLine(); err != nil {
			return err
		}
	}
	return out.Flush()
}

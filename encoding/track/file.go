package track

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
)

// ValidateMaskName rejects mask names that cannot be embedded in the
// dotted track file names: the name must be nonempty and use only
// alphanumerics, '_', and '-'.
func ValidateMaskName(mask string) error {
	if mask == "" {
		return fmt.Errorf("empty mask name")
	}
	for i := 0; i < len(mask); i++ {
		c := mask[i]
		if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '_' || c == '-' {
			continue
		}
		return fmt.Errorf("invalid mask name %q: character %q not allowed", mask, string(c))
	}
	return nil
}

// AnnoPath returns the header-file path of the named mask for the
// database at dbPath: a hidden sibling of the database file.
func AnnoPath(dbPath, mask string) string { return maskPath(dbPath, mask, ".anno") }

// DataPath returns the data-file path of the named mask for the database
// at dbPath.
func DataPath(dbPath, mask string) string { return maskPath(dbPath, mask, ".data") }

func maskPath(dbPath, mask, ext string) string {
	dir, base := filepath.Split(dbPath)
	// Only the database suffix is dropped; any other extension is part of
	// the base name.
	switch e := filepath.Ext(base); e {
	case ".db", ".dam":
		base = base[:len(base)-len(e)]
	}
	return filepath.Join(dir, "."+base+"."+mask+ext)
}

// Create writes the named mask for the database at dbPath, sorting
// intervals in place.  Both track files are created next to the database
// file.
func Create(ctx context.Context, dbPath, mask string, numContigs int, intervals []Interval) error {
	if err := ValidateMaskName(mask); err != nil {
		return err
	}
	e := errors.Once{}
	annoF, err := file.Create(ctx, AnnoPath(dbPath, mask))
	if err != nil {
		return err
	}
	dataF, err := file.Create(ctx, DataPath(dbPath, mask))
	if err != nil {
		e.Set(err)
		e.Set(annoF.Close(ctx))
		return e.Err()
	}
	e.Set(Write(annoF.Writer(ctx), dataF.Writer(ctx), numContigs, intervals))
	e.Set(annoF.Close(ctx))
	e.Set(dataF.Close(ctx))
	return e.Err()
}

// Open reads back the named mask of the database at dbPath.
func Open(ctx context.Context, dbPath, mask string) (m *Mask, err error) {
	if err = ValidateMaskName(mask); err != nil {
		return nil, err
	}
	annoF, err := file.Open(ctx, AnnoPath(dbPath, mask))
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, annoF, &err)
	dataF, err := file.Open(ctx, DataPath(dbPath, mask))
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, dataF, &err)
	return Read(annoF.Reader(ctx), dataF.Reader(ctx))
}

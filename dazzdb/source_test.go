package dazzdb_test

import (
	"context"
	"testing"

	"github.com/grailbio/dazztrack/dazzdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReaderSource(t *testing.T) {
	ctx := context.Background()
	db, err := dazzdb.Load(ctx, dazzdb.ReaderSource{Dump: testDump}, "assembly.db")
	require.NoError(t, err)
	assert.Equal(t, 4, db.NumContigs())
}

func TestExecSource(t *testing.T) {
	ctx := context.Background()
	// The database path lands in $0, which the script ignores.
	src := dazzdb.ExecSource{
		Tool: "/bin/sh",
		Args: []string{"-c", `printf '+ R 1\nR 1\nH 3 foo\nL 0 0 5\n'`},
	}
	db, err := dazzdb.Load(ctx, src, "assembly.db")
	require.NoError(t, err)
	require.Equal(t, 1, db.NumContigs())
	assert.Equal(t, dazzdb.Contig{Scaffold: "foo", Begin: 0, End: 5}, db.Contig(0))
}

// A failing introspection tool surfaces its stderr text in the error even
// when the output parsed cleanly up to that point.
func TestExecSourceExitError(t *testing.T) {
	ctx := context.Background()
	src := dazzdb.ExecSource{
		Tool: "/bin/sh",
		Args: []string{"-c", `printf '+ R 1\nR 1\n'; echo 'no such database' >&2; exit 3`},
	}
	_, err := dazzdb.Load(ctx, src, "assembly.db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such database")
}

func TestExecSourceMissingTool(t *testing.T) {
	ctx := context.Background()
	src := dazzdb.ExecSource{Tool: "/nonexistent/dump-tool"}
	_, err := dazzdb.Load(ctx, src, "assembly.db")
	require.Error(t, err)
}

// A dump parse error wins over the broken-pipe exit of the killed child.
func TestExecSourceParseError(t *testing.T) {
	ctx := context.Background()
	src := dazzdb.ExecSource{
		Tool: "/bin/sh",
		Args: []string{"-c", `printf 'R 1\n'`},
	}
	_, err := dazzdb.Load(ctx, src, "assembly.db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count declaration")
}

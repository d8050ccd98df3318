package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/dazztrack/encoding/track"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewAndCheck(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()
	dbPath := filepath.Join(tmpDir, "asm.db")
	intervals := []track.Interval{
		{ContigID: 3, Begin: 0, End: 8},
		{ContigID: 1, Begin: 20, End: 30},
		{ContigID: 1, Begin: 5, End: 10},
	}
	require.NoError(t, track.Create(ctx, dbPath, "rep", 3, intervals))

	var buf bytes.Buffer
	require.NoError(t, view(&buf, dbPath, "rep", false))
	assert.Equal(t, "CONTIG\tBEGIN\tEND\n1\t5\t10\n1\t20\t30\n3\t0\t8\n", buf.String())

	buf.Reset()
	require.NoError(t, view(&buf, dbPath, "rep", true))
	assert.Equal(t, "CONTIG\tINTERVALS\n1\t2\n2\t0\n3\t1\n", buf.String())

	buf.Reset()
	require.NoError(t, check(&buf, dbPath, "rep"))
	var got maskChecksum
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "rep", got.Mask)
	assert.Equal(t, 3, got.NumContigs)
	assert.Equal(t, 3, got.NumIntervals)
	assert.Equal(t, int64(23), got.MaskedBases)
	assert.Equal(t, int64(8+4*8), got.AnnoBytes)
	assert.Equal(t, int64(3*8), got.DataBytes)
	assert.NotZero(t, got.AnnoSeaHash)
	assert.NotZero(t, got.DataSeaHash)

	assert.Error(t, view(ioutil.Discard, dbPath, "missing", false))
	assert.Error(t, check(ioutil.Discard, dbPath, "missing"))
}

// check must refuse a corrupted track rather than summarize it.
func TestCheckCorrupt(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()
	dbPath := filepath.Join(tmpDir, "asm.db")
	require.NoError(t, track.Create(ctx, dbPath, "rep", 2, []track.Interval{
		{ContigID: 1, Begin: 0, End: 4},
	}))

	dataPath := track.DataPath(dbPath, "rep")
	data, err := ioutil.ReadFile(dataPath)
	require.NoError(t, err)
	require.NoError(t, ioutil.WriteFile(dataPath, append(data, 0, 0, 0, 0, 0, 0, 0, 0), 0644))

	err = check(ioutil.Discard, dbPath, "rep")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "continues past")
}

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
	"bytes"
	"io/ioutil"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/dazztrack/encoding/track"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func run(t *testing.T, bin string, args ...string) []byte {
	cmd := exec.Command(bin, args...)
	stdout := bytes.NewBuffer(nil)
	stderr := bytes.NewBuffer(nil)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	assert.NoError(t, cmd.Run(), "Command '%s %s' failed: %s", bin, args, stderr.String())
	return stdout.Bytes()
}

const fakeDump = `+ R 3
R 1
H 9 scaffoldX
L 0 0 100
R 2
H 9 scaffoldX
L 0 100 250
R 3
H 9 scaffoldY
L 0 0 80
`

func TestBed2Mask(t *testing.T) {
	executable := testutil.GoExecutable(t, "//go/src/github.com/grailbio/dazztrack/cmd/bio-bed2mask/bio-bed2mask")

	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	dumpTool := filepath.Join(tmpdir, "fakedump.sh")
	assert.NoError(t, ioutil.WriteFile(dumpTool, []byte("#!/bin/sh\ncat <<'EOF'\n"+fakeDump+"EOF\n"), 0755))
	dbPath := filepath.Join(tmpdir, "asm.db")
	assert.NoError(t, ioutil.WriteFile(dbPath, nil, 0644))

	bedPath := filepath.Join(tmpdir, "repeats.bed")
	assert.NoError(t, ioutil.WriteFile(bedPath, []byte("scaffoldX\t50\t150\nscaffoldY\t0\t80\n"), 0644))
	run(t, executable, "-bed", bedPath, "-dump-tool", dumpTool, dbPath, "rep")

	ctx := vcontext.Background()
	mask, err := track.Open(ctx, dbPath, "rep")
	assert.NoError(t, err)
	expect.EQ(t, mask.NumContigs, 3)
	expect.EQ(t, mask.Intervals, []track.Interval{
		{ContigID: 1, Begin: 50, End: 100},
		{ContigID: 2, Begin: 0, End: 50},
		{ContigID: 3, Begin: 0, End: 80},
	})

	// Same input with a cutoff long enough to reject the split parts.
	run(t, executable, "-bed", bedPath, "-cutoff", "60", "-dump-tool", dumpTool, dbPath, "long")
	mask, err = track.Open(ctx, dbPath, "long")
	assert.NoError(t, err)
	expect.EQ(t, mask.Intervals, []track.Interval{{ContigID: 3, Begin: 0, End: 80}})

	tanPath := filepath.Join(tmpdir, "tan.bed")
	assert.NoError(t, ioutil.WriteFile(tanPath, []byte("2\t5\t25\n1\t0\t100\n"), 0644))
	run(t, executable, "-bed", tanPath, "-contig-coords", "-dump-tool", dumpTool, dbPath, "tan")
	mask, err = track.Open(ctx, dbPath, "tan")
	assert.NoError(t, err)
	expect.EQ(t, mask.Intervals, []track.Interval{
		{ContigID: 1, Begin: 0, End: 100},
		{ContigID: 2, Begin: 5, End: 25},
	})
}

func TestBed2MaskBadArgs(t *testing.T) {
	executable := testutil.GoExecutable(t, "//go/src/github.com/grailbio/dazztrack/cmd/bio-bed2mask/bio-bed2mask")

	runFail := func(args ...string) string {
		cmd := exec.Command(executable, args...)
		stderr := bytes.NewBuffer(nil)
		cmd.Stderr = stderr
		expect.True(t, cmd.Run() != nil, "command %s unexpectedly succeeded", args)
		return stderr.String()
	}
	assert.HasSubstr(t, runFail("asm.db", "du.st"), "invalid mask name")
	assert.HasSubstr(t, runFail("-cutoff", "-1", "asm.db", "rep"), "out of range")
	assert.HasSubstr(t, runFail("asm.db"), "Missing positional arguments")
	assert.HasSubstr(t, runFail("-dump-tool", "/nonexistent/DBdump", "asm.db", "rep"), "DBdump")
}

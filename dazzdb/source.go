package dazzdb

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// A Source produces the structural dump stream for a database.  The
// returned reader must be drained before it is closed; Close reports
// producer failures that only become visible at exit.
type Source interface {
	Open(ctx context.Context, dbPath string) (io.ReadCloser, error)
}

// DefaultDumpArgs are the introspection-tool arguments that request
// contig records together with scaffold headers and spans.
var DefaultDumpArgs = []string{"-r", "-h"}

// ExecSource is the production Source.  It runs an external introspection
// tool with the database path appended as the final argument and streams
// the tool's standard output.
type ExecSource struct {
	Tool string   // introspection executable; "" means DBdump
	Args []string // arguments placed before the database path
}

// Open implements Source.
func (s ExecSource) Open(ctx context.Context, dbPath string) (io.ReadCloser, error) {
	tool := s.Tool
	if tool == "" {
		tool = "DBdump"
	}
	args := append(append([]string(nil), s.Args...), dbPath)
	cmd := exec.CommandContext(ctx, tool, args...)
	stderr := bytes.NewBuffer(nil)
	cmd.Stderr = stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "starting %s %s", tool, strings.Join(args, " "))
	}
	return &execStream{cmd: cmd, tool: tool, stdout: stdout, stderr: stderr}, nil
}

type execStream struct {
	cmd    *exec.Cmd
	tool   string
	stdout io.ReadCloser
	stderr *bytes.Buffer
}

func (s *execStream) Read(p []byte) (int, error) { return s.stdout.Read(p) }

// Close reaps the child process.  A non-zero exit becomes an error
// carrying the child's captured stderr text.
func (s *execStream) Close() error {
	s.stdout.Close() // unblock a child still writing
	if err := s.cmd.Wait(); err != nil {
		if msg := strings.TrimSpace(s.stderr.String()); msg != "" {
			return errors.Errorf("%s: %v: %s", s.tool, err, msg)
		}
		return errors.Wrap(err, s.tool)
	}
	return nil
}

// ReaderSource serves one fixed dump regardless of the database path.
// Tests use it in place of ExecSource.
type ReaderSource struct {
	Dump string
}

// Open implements Source.
func (s ReaderSource) Open(ctx context.Context, dbPath string) (io.ReadCloser, error) {
	return ioutil.NopCloser(strings.NewReader(s.Dump)), nil
}

// Load builds the contig table for the database at dbPath from the dump
// produced by src.
func Load(ctx context.Context, src Source, dbPath string) (db *DB, err error) {
	rc, err := src.Open(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			db, err = nil, cerr
		}
	}()
	return Parse(rc)
}

// Package cli implements the hashbridge command line.
package cli

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/codahale/hashbridge"
	"github.com/codahale/hashbridge/bridge"
	"github.com/codahale/hashbridge/internal/logging"
)

const (
	readSize = 64 * 1024 // input chunk passed to each Update
	fillSize = 32        // output chunk passed to each Fill
)

// Command is the hashbridge command.
type Command struct {
	out    io.Writer
	errOut io.Writer
	in     io.Reader
	open   func(name string) (io.ReadCloser, error)
}

// NewCommand returns a command reading standard input from in and writing digests to out and diagnostics to errOut.
func NewCommand(out, errOut io.Writer, in io.Reader) *Command {
	return &Command{
		out:    out,
		errOut: errOut,
		in:     in,
		open: func(name string) (io.ReadCloser, error) {
			return os.Open(name)
		},
	}
}

// NewOSCommand returns a command wired to the process's standard streams.
func NewOSCommand() *Command {
	return NewCommand(os.Stdout, os.Stderr, os.Stdin)
}

type options struct {
	alg    string
	args   []bridge.ConstructionArg
	length int
	offset uint64
	encode func([]byte) string
}

// Run parses args and hashes each named input. A name of "-", or no names at all, reads standard input. Inputs that
// fail are reported to the diagnostic stream and do not stop the remaining inputs.
func (c *Command) Run(args []string) error {
	fs := flag.NewFlagSet("hashbridge", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(c.errOut, "Usage: hashbridge [flags] [file ...]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	alg := fs.String("a", "sha256", "hash `algorithm`")
	key := fs.String("key", "", "hex-encoded `key` for keyed modes")
	context := fs.String("context", "", "context `string` for context-separated modes")
	length := fs.Int("length", 0, "output length in `bytes` for extendable-output algorithms")
	offset := fs.Uint64("offset", 0, "skip the first `n` bytes of output")
	asBase64 := fs.Bool("base64", false, "print digests in base64 instead of hex")
	verbose := fs.Bool("v", false, "log session lifecycle events")
	logLevel := fs.String("log", "warn", "diagnostic log `level`")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("parse flags: %w: %w", err, ErrUsage)
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", err, ErrUsage)
	}
	if *verbose {
		level = slog.LevelDebug
	}

	a, err := hashbridge.ParseAlgorithm(*alg)
	if err != nil {
		return fmt.Errorf("%w: %w", err, ErrUsage)
	}

	opts := options{alg: a.String(), offset: *offset, encode: hex.EncodeToString}
	if *asBase64 {
		opts.encode = base64.StdEncoding.EncodeToString
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "key":
			var k []byte
			if k, err = hex.DecodeString(*key); err != nil {
				err = fmt.Errorf("invalid key: %w: %w", err, ErrUsage)
				return
			}
			opts.args = append(opts.args, bridge.Key(bridge.ViewOf(k)))
		case "context":
			opts.args = append(opts.args, bridge.Context(*context))
		case "length":
			opts.args = append(opts.args, bridge.OutputSize(*length))
		}
	})
	if err != nil {
		return err
	}

	opts.length = a.Size()
	if *length > 0 {
		opts.length = *length
	}

	m := bridge.NewModule(bridge.WithLogger(logging.New(c.errOut, level)))

	// Reject bad construction arguments once, before touching any input.
	h, err := m.Create(opts.alg, opts.args...)
	if err != nil {
		return fmt.Errorf("%w: %w", err, ErrUsage)
	}
	m.Release(h)

	names := fs.Args()
	if len(names) == 0 {
		names = []string{"-"}
	}

	failed := 0
	for _, name := range names {
		digest, err := c.hashInput(m, name, &opts)
		if err != nil {
			failed++
			if _, werr := fmt.Fprintf(c.errOut, "hashing %s: %v\n", name, err); werr != nil {
				return fmt.Errorf("write error output: %w", werr)
			}
			continue
		}

		if _, err := fmt.Fprintf(c.out, "%s: %s\n", name, opts.encode(digest)); err != nil {
			return fmt.Errorf("write digest: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs: %w", failed, len(names), ErrFailed)
	}
	return nil
}

func (c *Command) hashInput(m *bridge.Module, name string, opts *options) ([]byte, error) {
	var r io.Reader
	if name == "-" {
		r = c.in
	} else {
		f, err := c.open(name)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	h, err := m.Create(opts.alg, opts.args...)
	if err != nil {
		return nil, err
	}
	defer m.Release(h)

	if err := absorb(m, h, r); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	return squeeze(m, h, opts.offset, opts.length)
}

// absorb passes r to the session in fixed-size views of a single reused buffer.
func absorb(m *bridge.Module, h bridge.Handle, r io.Reader) error {
	buf := make([]byte, readSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if uerr := m.Update(h, bridge.ViewOf(buf[:n])); uerr != nil {
				return uerr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// squeeze reads up to length bytes of the session's output starting at offset. Fixed-length digests end early when
// the reader is exhausted.
func squeeze(m *bridge.Module, h bridge.Handle, offset uint64, length int) ([]byte, error) {
	rh, err := m.Reader(h)
	if err != nil {
		return nil, err
	}
	defer m.ReleaseReader(rh)

	if err := m.SetPosition(rh, offset); err != nil {
		return nil, err
	}

	out := make([]byte, 0, length)
	chunk := make([]byte, fillSize)
	for len(out) < length {
		n, err := m.Fill(rh, bridge.MutViewOf(chunk[:min(fillSize, length-len(out))]))
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
		out = append(out, chunk[:n]...)
	}
	return out, nil
}

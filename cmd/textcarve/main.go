// Command textcarve classifies a text-file candidate from the leading
// bytes of a stream, in the same spirit as `file`: point it at a blob
// recovered from raw disk sectors and it reports the format it thinks
// the blob is, without trusting any filesystem metadata.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/brokenblock/textcarve/internal/config"
	textcarve "github.com/brokenblock/textcarve"
)

// windowCap bounds how much of stdin/the file we read before handing it
// to the core — recognizers never need more than a couple KB of
// lookahead.
const windowCap = 8192

func main() {
	app := &cli.App{
		Name:  "textcarve",
		Usage: "classify a text-file candidate from its leading bytes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a textcarve.toml config file",
			},
			&cli.BoolFlag{
				Name:    "short-ext",
				Aliases: []string{"s"},
				Usage:   "emit 3-char extension aliases for constrained filesystems",
			},
			&cli.BoolFlag{
				Name:    "header-only",
				Usage:   "restrict the heuristic classifier to its cheap header checks",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "trace registry dispatch decisions to stderr",
			},
			&cli.BoolFlag{
				Name:  "stream",
				Usage: "drive the data-check/file-check loop to completion instead of stopping at the header",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.Bool("short-ext") {
		cfg.Extensions.ShortNames = true
	}

	opts := textcarve.Options{Config: cfg, Debug: c.Bool("debug")}
	if opts.Debug {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	core := textcarve.NewWithOptions(opts)

	args := c.Args().Slice()
	if len(args) == 0 {
		return classifyReader(core, os.Stdin, "<stdin>", c.Bool("header-only"), c.Bool("stream"))
	}
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		err = classifyReader(core, f, path, c.Bool("header-only"), c.Bool("stream"))
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func classifyReader(core *textcarve.Core, r io.Reader, name string, headerOnly, stream bool) error {
	window := make([]byte, windowCap)
	n, err := io.ReadFull(r, window)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	window = window[:n]

	result := core.Recognize(window, headerOnly, nil)
	if !result.Recognized {
		fmt.Printf("%s: unrecognized\n", name)
		return nil
	}
	fmt.Printf("%s: %s\n", name, result.Candidate.Extension)

	if stream {
		final, err := driveToCompletion(r, result.Candidate, window)
		if err != nil {
			return fmt.Errorf("streaming %s: %w", name, err)
		}
		fmt.Printf("%s: final size %d\n", name, final.FileSize)
	}
	return nil
}

// streamBlock is the half-window size driveToCompletion feeds the
// data-check on every iteration: half of windowCap, matching the
// "only the upper half of the window is new" contract validate.Text and
// the TTD/Text data-checks share.
const streamBlock = windowCap / 2

// driveToCompletion replays the data-check/file-check loop past the
// initial header window: it keeps reading fresh streamBlock-sized chunks,
// paired with the previous chunk as the "already accounted for" half,
// until the data-check reports the candidate's end or the reader runs
// dry, then runs the file-check once over everything read.
func driveToCompletion(r io.Reader, c textcarve.Candidate, initial []byte) (textcarve.Candidate, error) {
	if c.DataCheck == nil {
		return c, nil
	}
	c.FileSize = uint64(len(initial))

	tail := append([]byte(nil), initial...)
	prev := lastChunk(initial, streamBlock)

	for {
		next := make([]byte, streamBlock)
		n, err := io.ReadFull(r, next)
		if n == 0 {
			break
		}
		next = next[:n]
		tail = append(tail, next...)

		pair := append(append([]byte(nil), prev...), next...)
		if status := c.DataCheck(&c, pair); status == textcarve.StatusStop {
			c.FileSize = c.CalculatedSize
			break
		}
		c.FileSize += uint64(n)

		if err != nil {
			break
		}
		prev = next
	}

	if uint64(len(tail)) > c.FileSize {
		tail = tail[:c.FileSize]
	}
	if c.FileCheck != nil {
		c.FileCheck(&c, tail)
	}
	return c, nil
}

// lastChunk returns the final n bytes of window (or window itself if
// shorter), the "old half" driveToCompletion pairs with each new read.
func lastChunk(window []byte, n int) []byte {
	if len(window) <= n {
		return append([]byte(nil), window...)
	}
	return append([]byte(nil), window[len(window)-n:]...)
}

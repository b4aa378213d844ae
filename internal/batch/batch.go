// Package batch parses many mesh files in parallel.
package batch

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/philipparndt/gomesh/internal/logging"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

// Outcome is the result of parsing one file. Exactly one of Result and Err
// is meaningful.
type Outcome struct {
	Path     string            `json:"path"`
	Result   *mesh.ParseResult `json:"result,omitempty"`
	Err      error             `json:"-"`
	Error    string            `json:"error,omitempty"`
	Duration time.Duration     `json:"duration_ns"`
}

// OK reports whether the file parsed
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Gate checks a file before it is parsed, e.g. an upload validator
type Gate interface {
	ValidateFile(path string) error
}

// SourceFunc maps an input path to a parseable mesh file, e.g. by
// rendering an OpenSCAD source. cleanup is called once parsing is done.
type SourceFunc func(ctx context.Context, path string) (meshPath string, cleanup func(), err error)

// Runner parses files with a bounded number of workers
type Runner struct {
	Workers int
	Gate    Gate
	Source  SourceFunc

	// parse is swapped in tests
	parse func(path string) (mesh.ParseResult, error)
}

// NewRunner creates a runner with the given worker count. A nil gate
// parses every file.
func NewRunner(workers int, gate Gate) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{Workers: workers, Gate: gate, parse: mesh.ParseFile}
}

// Run parses every path and returns one outcome per path, in input order.
// A failing file does not stop the others; only ctx cancellation does, in
// which case the remaining files get the context error.
func (r *Runner) Run(ctx context.Context, paths []string) []Outcome {
	outcomes := make([]Outcome, len(paths))
	log := logging.FromContext(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)

	for i, path := range paths {
		outcomes[i].Path = path
		if err := gctx.Err(); err != nil {
			outcomes[i].setErr(err)
			continue
		}

		g.Go(func() error {
			outcomes[i] = r.one(gctx, path)
			if outcomes[i].OK() {
				log.Debug("parsed", "file", path, "triangles", outcomes[i].Result.TriangleCount, "duration", outcomes[i].Duration)
			} else {
				log.Warn("failed to parse", "file", path, "error", outcomes[i].Err)
			}
			return nil
		})
	}

	_ = g.Wait()
	return outcomes
}

func (r *Runner) one(ctx context.Context, path string) (out Outcome) {
	out.Path = path
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			out.setErr(fmt.Errorf("internal error: %v", p))
		}
		out.Duration = time.Since(start)
	}()

	if err := ctx.Err(); err != nil {
		out.setErr(err)
		return out
	}

	if r.Source != nil {
		resolved, cleanup, err := r.Source(ctx, path)
		if err != nil {
			out.setErr(err)
			return out
		}
		defer cleanup()
		path = resolved
	}

	if r.Gate != nil {
		if err := r.Gate.ValidateFile(path); err != nil {
			out.setErr(err)
			return out
		}
	}

	parse := r.parse
	if parse == nil {
		parse = mesh.ParseFile
	}
	result, err := parse(path)
	if err != nil {
		out.setErr(err)
		return out
	}
	out.Result = &result
	return out
}

func (o *Outcome) setErr(err error) {
	o.Err = err
	o.Error = err.Error()
}

// Summary counts outcomes and sums the volume of the successful ones
type Summary struct {
	Files     int     `json:"files"`
	Failed    int     `json:"failed"`
	Truncated int     `json:"truncated"`
	VolumeCM3 float64 `json:"volume_cm3"`
	VolumeMM3 float64 `json:"volume_mm3"`
}

// Summarize totals a batch
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Files: len(outcomes)}
	for _, o := range outcomes {
		if !o.OK() {
			s.Failed++
			continue
		}
		if o.Result.Truncated {
			s.Truncated++
		}
		s.VolumeCM3 += o.Result.VolumeCM3
		s.VolumeMM3 += o.Result.VolumeMM3
	}
	return s
}

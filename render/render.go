// Package render drives a scene render across a pool of worker goroutines.
package render

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"prism/camera"
	"prism/rgbimage"
	"prism/scene"

	"github.com/golang/glog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// ProgressFunction is told how many of the total pixels have been written.
// It runs on the goroutine that called Render.
type ProgressFunction func(done, total int)

type Options struct {
	scene.ShadeOptions

	// Width and Height are the output size in pixels.
	Width, Height int

	// Workers is the number of shading goroutines.  Zero means one per CPU.
	Workers int

	// Supersample renders Supersample x Supersample rays per output pixel
	// and filters them down.  Zero means 1.
	Supersample int

	// Label tags this render's metrics.
	Label string

	Progress ProgressFunction
}

// DefaultOptions returns the options for a 1024x768 render.
func DefaultOptions() *Options {
	return &Options{
		ShadeOptions: *scene.DefaultShadeOptions(),
		Width:        1024,
		Height:       768,
		Supersample:  1,
	}
}

func (o *Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

func (o *Options) supersample() int {
	if o.Supersample > 0 {
		return o.Supersample
	}
	return 1
}

type task struct {
	row, col int
}

type result struct {
	row, col int
	rgb      rgbimage.RGB
}

// Render shades every pixel of the image cam sees of s.
//
// Each pixel is one primary ray cast by one of the workers; results flow back
// over a channel and only the calling goroutine writes the image.  Render
// returns once every worker has exited.  A failure anywhere, including a
// panic while shading, fails the whole render and no image is returned.
func Render(ctx context.Context, s *scene.Scene, cam camera.Camera, opts *Options) (*rgbimage.Image, error) {
	tracer := otel.Tracer("prism/render")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "render.Render")
	defer span.End()

	im, err := render(ctx, s, cam, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return im, nil
}

func render(ctx context.Context, s *scene.Scene, cam camera.Camera, opts *Options) (*rgbimage.Image, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("image size %dx%d is empty", opts.Width, opts.Height)
	}
	if opts.Supersample < 0 || opts.Workers < 0 {
		return nil, fmt.Errorf("supersample %d and workers %d must not be negative", opts.Supersample, opts.Workers)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("while validating scene: %w", err)
	}

	k := opts.supersample()
	rows, cols := opts.Height*k, opts.Width*k
	total := rows * cols
	workers := opts.workers()

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("width", opts.Width),
		attribute.Int("height", opts.Height),
		attribute.Int("supersample", k),
		attribute.Int("workers", workers),
		attribute.Int("objects", len(s.Objects)),
	)

	glog.Infof("Rendering %dx%d (%dx supersampled) with %d workers, %d objects, %d lights", opts.Width, opts.Height, k, workers, len(s.Objects), len(s.Lights))
	start := time.Now()

	shade := opts.ShadeOptions
	im := rgbimage.New(rows, cols)

	eg, ctx := errgroup.WithContext(ctx)
	tasks := make(chan task, 4*workers)
	results := make(chan result, 4*workers)

	eg.Go(func() error {
		defer close(tasks)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				select {
				case tasks <- task{row: r, col: c}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
		return nil
	})

	for i := 0; i < workers; i++ {
		i := i
		eg.Go(func() error {
			n, err := work(ctx, s, cam, &shade, rows, cols, tasks, results)
			if glog.V(2) {
				glog.Infof("Worker %d shaded %d pixels", i, n)
			}
			return err
		})
	}

	// Close results once nobody can send on it any more, so the drain loop
	// below terminates.
	go func() {
		eg.Wait()
		close(results)
	}()

	done := 0
	for res := range results {
		im.Set(res.row, res.col, res.rgb)
		done++
		if opts.Progress != nil {
			opts.Progress(done, total)
		}
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("while rendering: %w", err)
	}
	if done != total {
		return nil, fmt.Errorf("render collected %d of %d pixels", done, total)
	}

	out, err := im.Downsample(k)
	if err != nil {
		return nil, fmt.Errorf("while resolving supersampled image: %w", err)
	}

	elapsed := time.Since(start)
	recordRender(ctx, opts.Label, total, elapsed)
	glog.Infof("Rendered %d rays in %v", total, elapsed)

	return out, nil
}

func work(ctx context.Context, s *scene.Scene, cam camera.Camera, opts *scene.ShadeOptions, rows, cols int, tasks <-chan task, results chan<- result) (int, error) {
	n := 0
	for {
		select {
		case <-ctx.Done():
			return n, ctx.Err()
		case t, ok := <-tasks:
			if !ok {
				return n, nil
			}

			rgb, err := shadePixel(s, cam, opts, t, rows, cols)
			if err != nil {
				return n, err
			}

			select {
			case results <- result{row: t.row, col: t.col, rgb: rgb}:
				n++
			case <-ctx.Done():
				return n, ctx.Err()
			}
		}
	}
}

func shadePixel(s *scene.Scene, cam camera.Camera, opts *scene.ShadeOptions, t task, rows, cols int) (rgb rgbimage.RGB, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while shading pixel (row %d, col %d): %v", t.row, t.col, r)
		}
	}()

	q := cam.ImageToRay(t.row, rows, t.col, cols)
	return s.CastRay(opts, q, 0, scene.NoMedium), nil
}

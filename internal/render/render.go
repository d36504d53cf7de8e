// Package render drives a camera along a path, rendering frames in
// parallel and handing them to frame sinks in order.
package render

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yangshun/cs4243-project/internal/engine/camera"
	"github.com/yangshun/cs4243-project/internal/engine/scene"
	"github.com/yangshun/cs4243-project/pkg/raster"
)

// Renderer renders one frame per pose. The space must not be modified
// while a render is running.
type Renderer struct {
	cam     *camera.Camera
	workers int
	log     *zap.Logger
}

// Option customizes a renderer.
type Option func(*Renderer)

// WithWorkers limits the number of frames rendered at once. Values below 1
// mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// New creates a renderer for the camera's intrinsics.
func New(cam *camera.Camera, opts ...Option) *Renderer {
	r := &Renderer{
		cam:     cam,
		workers: runtime.GOMAXPROCS(0),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the frames for poses, in pose order. A surface that fails
// to project is logged and left out of its frame; an invalid pose or a
// cancelled context fails the whole render.
func (r *Renderer) Render(ctx context.Context, space *scene.Space, poses []camera.Pose) ([]*raster.Image, error) {
	frames := make(collector, len(poses))
	if err := r.RenderTo(ctx, space, poses, frames); err != nil {
		return nil, err
	}
	return frames, nil
}

// RenderTo renders every pose and writes each frame to sink as soon as all
// frames before it have been written. At most window frames are rendered
// ahead of the sink.
func (r *Renderer) RenderTo(ctx context.Context, space *scene.Space, poses []camera.Pose, sink FrameSink) error {
	start := time.Now()
	results := make(chan renderedFrame, r.workers)
	window := make(chan struct{}, r.window())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(results)
		work, wctx := errgroup.WithContext(gctx)
		work.SetLimit(r.workers)
		for i, pose := range poses {
			select {
			case window <- struct{}{}:
			case <-wctx.Done():
				return work.Wait()
			}
			i, pose := i, pose
			work.Go(func() error {
				frame, err := r.renderFrame(wctx, i, pose, space)
				if err != nil {
					return err
				}
				select {
				case results <- renderedFrame{index: i, frame: frame}:
					return nil
				case <-wctx.Done():
					return wctx.Err()
				}
			})
		}
		return work.Wait()
	})

	written := 0
	g.Go(func() error {
		pending := make(map[int]*raster.Image)
		for res := range results {
			pending[res.index] = res.frame
			for {
				frame, ok := pending[written]
				if !ok {
					break
				}
				if err := gctx.Err(); err != nil {
					return err
				}
				delete(pending, written)
				if err := sink.WriteFrame(written, frame); err != nil {
					return fmt.Errorf("writing frame %d: %w", written, err)
				}
				written++
				<-window
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	// The group's context is always cancelled once Wait returns.
	if err := ctx.Err(); err != nil {
		return err
	}

	r.log.Info("rendered frames",
		zap.Int("frames", written),
		zap.Int("workers", r.workers),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// window bounds the frames held between rendering and the sink.
func (r *Renderer) window() int {
	return 2 * r.workers
}

func (r *Renderer) renderFrame(ctx context.Context, i int, pose camera.Pose, space *scene.Space) (*raster.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := pose.Validate(); err != nil {
		return nil, fmt.Errorf("frame %d: %w", i, err)
	}
	frame, err := r.cam.WithPose(pose).ProjectSpace(space)
	if err != nil {
		r.log.Warn("frame rendered with errors", zap.Int("frame", i), zap.Error(err))
	}
	return frame, nil
}

type renderedFrame struct {
	index int
	frame *raster.Image
}

// collector is a sink that keeps frames in memory.
type collector []*raster.Image

func (c collector) WriteFrame(index int, frame *raster.Image) error {
	c[index] = frame
	return nil
}

func (c collector) Close() error { return nil }

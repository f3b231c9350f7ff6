// Package record renders scene frames to a Motion-JPEG AVI file.
package record

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"sort"

	"github.com/icza/mjpeg"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"growfield/internal/scene"
)

// ErrClosed reports a frame added after Close.
var ErrClosed = errors.New("record: recorder closed")

// Options controls the output video.
type Options struct {
	Width, Height int
	FPS           int
	// Scale is the number of pixels per lattice unit.
	Scale   float64
	Quality int
}

// DefaultOptions returns a 320x320 video at 24 fps.
func DefaultOptions() Options {
	return Options{Width: 320, Height: 320, FPS: 24, Scale: 8, Quality: 85}
}

// Recorder implements scene.Renderer by appending one JPEG frame per call.
type Recorder struct {
	opts   Options
	avi    mjpeg.AviWriter
	frames int
	log    logrus.FieldLogger
	buf    bytes.Buffer
}

// Open creates the AVI file at path.
func Open(path string, opts Options, log logrus.FieldLogger) (*Recorder, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.FPS <= 0 {
		return nil, fmt.Errorf("record: invalid video size %dx%d@%d", opts.Width, opts.Height, opts.FPS)
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultOptions().Scale
	}
	if opts.Quality <= 0 {
		opts.Quality = DefaultOptions().Quality
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	avi, err := mjpeg.New(path, int32(opts.Width), int32(opts.Height), int32(opts.FPS))
	if err != nil {
		return nil, fmt.Errorf("record: open %s: %w", path, err)
	}
	return &Recorder{opts: opts, avi: avi, log: log.WithField("video", path)}, nil
}

// Frames returns the number of frames written.
func (r *Recorder) Frames() int { return r.frames }

// RenderFrame rasterizes objects and appends the frame.
func (r *Recorder) RenderFrame(frame int, objects []*scene.Object) error {
	if r.avi == nil {
		return ErrClosed
	}
	img := Rasterize(objects, r.opts.Width, r.opts.Height, r.opts.Scale)
	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, img, &jpeg.Options{Quality: r.opts.Quality}); err != nil {
		return fmt.Errorf("record: encode frame %d: %w", frame, err)
	}
	if err := r.avi.AddFrame(r.buf.Bytes()); err != nil {
		return fmt.Errorf("record: add frame %d: %w", frame, err)
	}
	r.frames++
	r.log.WithField("frame", frame).Trace("recorded frame")
	return nil
}

// Close finalizes the AVI index. It is safe to call twice.
func (r *Recorder) Close() error {
	if r.avi == nil {
		return nil
	}
	err := r.avi.Close()
	r.avi = nil
	r.log.WithField("frames", r.frames).Info("video closed")
	return err
}

var background = color.RGBA{R: 16, G: 16, B: 24, A: 255}

// Rasterize draws a top-down view of the placed object vertices. The origin
// maps to the image center and height is shaded from dark to light.
func Rasterize(objects []*scene.Object, w, h int, scale float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = background.R
		img.Pix[i+1] = background.G
		img.Pix[i+2] = background.B
		img.Pix[i+3] = background.A
	}

	var pts []r3.Vec
	for _, o := range objects {
		pts = append(pts, o.Placed()...)
	}
	if len(pts) == 0 {
		return img
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].Z < pts[j].Z })
	lo, hi := pts[0].Z, pts[len(pts)-1].Z
	span := hi - lo

	cx, cy := float64(w)*0.5, float64(h)*0.5
	dot := int(scale * 0.5)
	if dot < 1 {
		dot = 1
	}
	for _, p := range pts {
		shade := 1.0
		if span > 0 {
			shade = (p.Z - lo) / span
		}
		c := color.RGBA{
			R: uint8(80 + shade*175),
			G: uint8(60 + shade*150),
			B: uint8(40 + shade*80),
			A: 255,
		}
		px := int(cx + p.X*scale)
		// image Y grows downwards
		py := int(cy - p.Y*scale)
		for dy := 0; dy < dot; dy++ {
			for dx := 0; dx < dot; dx++ {
				x, y := px+dx, py+dy
				if x < 0 || y < 0 || x >= w || y >= h {
					continue
				}
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}

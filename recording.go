package main

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/icza/mjpeg"
)

// frameRecorder appends rendered lattice frames to an MJPEG AVI file.
type frameRecorder struct {
	aw     mjpeg.AviWriter
	img    *image.RGBA
	buf    bytes.Buffer
	opts   jpeg.Options
	frames int
}

func newFrameRecorder(path string, width, height, fps int) (*frameRecorder, error) {
	aw, err := mjpeg.New(path, int32(width), int32(height), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &frameRecorder{
		aw:   aw,
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		opts: jpeg.Options{Quality: recordJPEGQuality},
	}, nil
}

// AddFrame encodes one RGBA frame of the recorder's size.
func (r *frameRecorder) AddFrame(pixels []byte) error {
	if len(pixels) != len(r.img.Pix) {
		return fmt.Errorf("frame has %d bytes, want %d", len(pixels), len(r.img.Pix))
	}
	copy(r.img.Pix, pixels)
	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, r.img, &r.opts); err != nil {
		return fmt.Errorf("encoding frame %d: %w", r.frames, err)
	}
	if err := r.aw.AddFrame(r.buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame %d: %w", r.frames, err)
	}
	r.frames++
	return nil
}

func (r *frameRecorder) Close() error {
	return r.aw.Close()
}

// Package jsonl provides a store.Store implementation that appends one
// JSON candidate record per line to an io.Writer. JSON Lines is the exchange
// format consumed by the downstream screening and job-staging tools, so the
// record layout here is the hand-off contract: plain nested objects of
// primitive values only.
package jsonl

import (
	"context"
	"io"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"intergen/pkg/domain"
	"intergen/pkg/geom"
	"intergen/pkg/store"
)

// Writer appends candidate records to an underlying writer, one JSON object
// per line. It is safe for concurrent use.
type Writer struct {
	mu  sync.Mutex
	w   io.Writer
	c   io.Closer // nil when the underlying writer is not a closer
	run string
	enc jx.Encoder
}

var _ store.Store = (*Writer)(nil)

// New returns a Writer appending to w. runID is attached to every record so
// downstream consumers can group candidates by generation run; it may be
// empty. If w implements io.Closer it is closed by Close.
func New(w io.Writer, runID string) *Writer {
	out := &Writer{w: w, run: runID}
	if c, ok := w.(io.Closer); ok {
		out.c = c
	}

	return out
}

// WriteCandidate encodes c as one JSON line and appends it to the sink.
func (wr *Writer) WriteCandidate(_ context.Context, c domain.Candidate) error {
	wr.mu.Lock()
	defer wr.mu.Unlock()

	e := &wr.enc
	e.Reset()
	encodeCandidate(e, wr.run, c)

	buf := append(e.Bytes(), '\n')
	if _, err := wr.w.Write(buf); err != nil {
		return errors.Wrap(err, "write candidate record")
	}

	return nil
}

// Close closes the underlying writer when it supports closing.
func (wr *Writer) Close() error {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	if wr.c == nil {
		return nil
	}

	return errors.Wrap(wr.c.Close(), "close candidate sink")
}

func encodeCandidate(e *jx.Encoder, runID string, c domain.Candidate) {
	e.ObjStart()
	if runID != "" {
		e.FieldStart("runId")
		e.Str(runID)
	}
	e.FieldStart("name")
	e.Str(c.Name)
	e.FieldStart("filmSurfaceName")
	e.Str(c.FilmSurfaceName)
	e.FieldStart("subsSurfaceName")
	e.Str(c.SubsSurfaceName)

	e.FieldStart("mismatch")
	e.ObjStart()
	e.FieldStart("mismatchU")
	e.Float64(c.Mismatch.U)
	e.FieldStart("mismatchV")
	e.Float64(c.Mismatch.V)
	e.FieldStart("mismatchAngle")
	e.Float64(c.Mismatch.AngleDeg)
	e.FieldStart("area1")
	e.Float64(c.Mismatch.Area1)
	e.FieldStart("area2")
	e.Float64(c.Mismatch.Area2)
	e.ObjEnd()

	e.FieldStart("filmSupercell")
	encodeStructure(e, c.FilmSupercell)
	e.FieldStart("subsSupercell")
	encodeStructure(e, c.SubsSupercell)
	e.FieldStart("interface")
	encodeStructure(e, c.Interface)
	e.FieldStart("generatedInterface")
	encodeStructure(e, c.Displaced)

	if c.Left != nil {
		e.FieldStart("left")
		encodeStructure(e, *c.Left)
	}
	if c.Middle != nil {
		e.FieldStart("middle")
		encodeStructure(e, *c.Middle)
	}
	if c.Right != nil {
		e.FieldStart("right")
		encodeStructure(e, *c.Right)
	}
	e.ObjEnd()
}

func encodeStructure(e *jx.Encoder, s domain.Structure) {
	e.ObjStart()
	if s.ID != "" {
		e.FieldStart("id")
		e.Str(s.ID)
	}
	e.FieldStart("lattice")
	e.ArrStart()
	for i := 0; i < 3; i++ {
		encodeVec(e, s.Lattice[i])
	}
	e.ArrEnd()
	e.FieldStart("sites")
	e.ArrStart()
	for _, site := range s.Sites {
		e.ObjStart()
		e.FieldStart("species")
		e.Str(site.Species)
		e.FieldStart("frac")
		encodeVec(e, site.Frac)
		if site.Tag != "" {
			e.FieldStart("tag")
			e.Str(site.Tag)
		}
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()
}

func encodeVec(e *jx.Encoder, v geom.Vec3) {
	e.ArrStart()
	for i := 0; i < 3; i++ {
		e.Float64(v[i])
	}
	e.ArrEnd()
}

// seehuhn.de/go/pagebuffer - deferred page drawing for PDF documents
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package pagebuffer buffers drawing operations for a paginated
// document and resolves them onto physical pages.
//
// Callers draw into a single unbounded coordinate space which extends
// downwards across page boundaries; the package splits the stream of
// drawing operations over as many physical pages as needed, replays
// each page's operations in a deterministic stacking order, and
// deduplicates embedded raster images.  Nothing is written to the
// underlying document until a logical page grouping ends.
//
// A Document buffers state and writes to an underlying output
// document.  It is mutable, has side effects, and must not be used
// from more than one goroutine at a time.
package pagebuffer

import (
	"errors"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf/graphics/color"
)

// ErrNoPages is returned when a logical y coordinate is resolved
// before any page buffer has been created.
var ErrNoPages = errors.New("no page buffer has been created yet")

// Document manages the page buffers for one output document.
//
// Pages are buffered in memory and committed to the document writer in
// page order when a logical page grouping ends.  Each page is
// committed exactly once; the uncommitted cursor only moves forward.
type Document struct {
	out       DocumentWriter
	overwrite bool

	// pages is append-only and never reordered.  pages[uncommitted:]
	// are the buffers which have not been written out yet.
	pages       []*Buffer
	uncommitted int

	cache *imageCache

	// base is the color the stroke and fill state of every page is
	// initialized to before replay.
	base color.Color
}

// New returns a Document writing to the given document writer.
func New(out DocumentWriter) *Document {
	return &Document{
		out:   out,
		cache: newImageCache(out),
		base:  color.DeviceRGB{0, 0, 0},
	}
}

// NewOverwrite returns a Document which, during commit, reuses pages
// already present in the output document instead of appending new
// ones, as long as such pages exist.
func NewOverwrite(out DocumentWriter) *Document {
	d := New(out)
	d.overwrite = true
	return d
}

// appendNewPage creates the buffer for the next physical page.  Page
// numbers are 1-based.
func (d *Document) appendNewPage() *Buffer {
	pb := &Buffer{PageNum: len(d.pages) + 1, doc: d}
	d.pages = append(d.pages, pb)
	return pb
}

// pageFor maps an unbounded logical y coordinate to a page buffer and
// the y value local to that page.  Starting at the first uncommitted
// page, y is moved up by one print-area height per page until it lies
// above yBottom, creating the intervening page buffers on demand.  y
// may be arbitrarily far below the current page.
func (d *Document) pageFor(y, printAreaHeight, yBottom float64) (*Buffer, float64, error) {
	if len(d.pages) < 1 {
		return nil, 0, ErrNoPages
	}
	idx := d.uncommitted
	for y < yBottom {
		y += printAreaHeight
		idx++
		if len(d.pages) <= idx {
			d.appendNewPage()
		}
	}
	return d.pages[idx], y, nil
}

// flush writes out all uncommitted page buffers, in page order.  If a
// page fails, the pages before it stay committed and the error is
// returned; no page is ever committed twice.
func (d *Document) flush(lp *LogicalPage) error {
	for d.uncommitted < len(d.pages) {
		var w PageWriter
		var err error
		if d.overwrite && d.out.PageCount() > d.uncommitted {
			w, err = d.out.Page(d.uncommitted)
		} else {
			width, height := lp.paperSize()
			w, err = d.out.NewPage(width, height, lp.orientation == Landscape)
		}
		if err != nil {
			return err
		}

		err = d.commitPage(w, lp, d.pages[d.uncommitted])
		if err != nil {
			return err
		}
		d.uncommitted++
	}
	return nil
}

// commitPage replays one page buffer into the scoped page writer.  The
// writer is closed exactly once on every path, including when replay
// fails part-way through.
func (d *Document) commitPage(w PageWriter, lp *LogicalPage, pb *Buffer) error {
	closed := false
	defer func() {
		if !closed {
			// The replay error takes precedence over any close error.
			w.Close()
		}
	}()

	if lp.orientation == Landscape {
		// Map the buffer's landscape coordinates onto the rotated
		// portrait page: (x, y) -> (pageWidth - y, x).
		pw, _ := lp.paperSize()
		w.Transform(matrix.Matrix{0, 1, -1, 0, pw, 0})
	}

	w.SetStrokeColor(d.base)
	w.SetFillColor(d.base)
	if err := w.Err(); err != nil {
		return err
	}

	if err := pb.commit(w); err != nil {
		return err
	}
	if err := lp.border.commit(w); err != nil {
		return err
	}

	closed = true
	return w.Close()
}

// Close writes any pending data to the underlying sink and closes the
// output document.  Groupings must have been ended before Close is
// called; buffers still pending at that point are not written.
func (d *Document) Close() error {
	return d.out.Close()
}

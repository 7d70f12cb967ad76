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

package pagebuffer

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf/graphics/color"
)

// recordingWriter is an in-memory document writer which records every
// primitive call as a string, for comparison in tests.
type recordingWriter struct {
	existing int // number of pre-existing output pages

	pages    []*recordingPage
	embeds   []string
	embedErr error
	closed   int
}

type recordingPage struct {
	ops []string

	// failOn makes the first op with this prefix fail, to simulate an
	// output error part-way through a page.
	failOn string
	err    error

	closes   int
	closeErr error
}

func (w *recordingWriter) PageCount() int {
	return w.existing
}

func (w *recordingWriter) NewPage(width, height float64, rotated bool) (PageWriter, error) {
	p := &recordingPage{}
	p.ops = append(p.ops, fmt.Sprintf("new page %g×%g rotated=%t", width, height, rotated))
	w.pages = append(w.pages, p)
	return p, nil
}

func (w *recordingWriter) Page(idx int) (PageWriter, error) {
	if idx >= w.existing {
		return nil, fmt.Errorf("no existing page %d", idx)
	}
	p := &recordingPage{}
	p.ops = append(p.ops, fmt.Sprintf("reuse page %d", idx))
	w.pages = append(w.pages, p)
	return p, nil
}

func (w *recordingWriter) EmbedJPEG(img image.Image) (XObject, error) {
	return w.embed("jpeg", img)
}

func (w *recordingWriter) EmbedLossless(img image.Image) (XObject, error) {
	return w.embed("lossless", img)
}

func (w *recordingWriter) embed(family string, img image.Image) (XObject, error) {
	if w.embedErr != nil {
		return nil, w.embedErr
	}
	name := fmt.Sprintf("%s#%d", family, len(w.embeds))
	w.embeds = append(w.embeds, name)
	return name, nil
}

func (w *recordingWriter) Close() error {
	w.closed++
	return nil
}

func (p *recordingPage) op(format string, args ...any) {
	if p.err != nil {
		return
	}
	s := fmt.Sprintf(format, args...)
	if p.failOn != "" && strings.HasPrefix(s, p.failOn) {
		p.err = errors.New("write failed: " + s)
		return
	}
	p.ops = append(p.ops, s)
}

func (p *recordingPage) Transform(m matrix.Matrix) {
	p.op("transform %v", m)
}

func (p *recordingPage) SetStrokeColor(c color.Color) {
	p.op("stroke color %v", c)
}

func (p *recordingPage) SetFillColor(c color.Color) {
	p.op("fill color %v", c)
}

func (p *recordingPage) SetLineWidth(width float64) {
	p.op("line width %g", width)
}

func (p *recordingPage) DrawLine(x1, y1, x2, y2 float64) {
	p.op("line (%g,%g)-(%g,%g)", x1, y1, x2, y2)
}

func (p *recordingPage) FillRect(x, y, width, height float64) {
	p.op("fill rect (%g,%g) %g×%g", x, y, width, height)
}

func (p *recordingPage) TextBegin() {
	p.op("text begin")
}

func (p *recordingPage) TextSetFont(f Font, size float64) {
	p.op("font %v @%g", f, size)
}

func (p *recordingPage) TextFirstLine(x, y float64) {
	p.op("text pos (%g,%g)", x, y)
}

func (p *recordingPage) TextShow(s string) {
	p.op("text %q", s)
}

func (p *recordingPage) TextEnd() {
	p.op("text end")
}

func (p *recordingPage) DrawXObject(obj XObject, x, y, width, height float64) {
	p.op("image %v at (%g,%g) %g×%g", obj, x, y, width, height)
}

func (p *recordingPage) Err() error {
	return p.err
}

func (p *recordingPage) Close() error {
	p.closes++
	return p.closeErr
}

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

// Package pdfwriter implements the pagebuffer document writer
// interface on top of seehuhn.de/go/pdf.
//
// The writer creates documents from scratch; reopening an existing PDF
// file to rewrite its pages is not supported.
package pdfwriter

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/pdf/graphics/content/builder"
	pdfimage "seehuhn.de/go/pdf/graphics/image"
	"seehuhn.de/go/pdf/page"
	"seehuhn.de/go/pdf/pagetree"

	"seehuhn.de/go/pagebuffer"
)

// Writer writes buffered pages to a PDF document.
type Writer struct {
	out  *pdf.Writer
	rm   *pdf.ResourceManager
	tree *pagetree.Writer
}

// New returns a Writer which writes the PDF document to w.
func New(w io.Writer, v pdf.Version, opt *pdf.WriterOptions) (*Writer, error) {
	out, err := pdf.NewWriter(w, v, opt)
	if err != nil {
		return nil, err
	}
	return newWriter(out), nil
}

// Create returns a Writer which writes the PDF document to the file
// with the given name.
func Create(name string, v pdf.Version, opt *pdf.WriterOptions) (*Writer, error) {
	out, err := pdf.Create(name, v, opt)
	if err != nil {
		return nil, err
	}
	return newWriter(out), nil
}

func newWriter(out *pdf.Writer) *Writer {
	rm := pdf.NewResourceManager(out)
	return &Writer{
		out:  out,
		rm:   rm,
		tree: pagetree.NewWriter(out, rm),
	}
}

// PageCount implements the [pagebuffer.DocumentWriter] interface.
// Documents are always created from scratch, so there are no
// pre-existing pages.
func (w *Writer) PageCount() int {
	return 0
}

// Page implements the [pagebuffer.DocumentWriter] interface.
// Rewriting pages of an existing document is not supported.
func (w *Writer) Page(idx int) (pagebuffer.PageWriter, error) {
	return nil, errors.New("pdfwriter: rewriting existing pages is not supported")
}

// NewPage implements the [pagebuffer.DocumentWriter] interface.
func (w *Writer) NewPage(width, height float64, rotated bool) (pagebuffer.PageWriter, error) {
	res := &content.Resources{}
	pg := &page.Page{
		MediaBox:  &pdf.Rectangle{URx: width, URy: height},
		Resources: res,
	}
	if rotated {
		pg.Rotate = 90
	}
	return &pageWriter{
		w:  w,
		b:  builder.New(content.Page, res),
		pg: pg,
	}, nil
}

// EmbedJPEG implements the [pagebuffer.DocumentWriter] interface.  The
// pixel data is passed through DCT compression, so the embedded image
// is lossy.
func (w *Writer) EmbedJPEG(src image.Image) (pagebuffer.XObject, error) {
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, src, nil); err != nil {
		return nil, err
	}
	lossy, err := jpeg.Decode(buf)
	if err != nil {
		return nil, err
	}
	return w.embed(lossy)
}

// EmbedLossless implements the [pagebuffer.DocumentWriter] interface.
func (w *Writer) EmbedLossless(src image.Image) (pagebuffer.XObject, error) {
	return w.embed(src)
}

func (w *Writer) embed(src image.Image) (pagebuffer.XObject, error) {
	dict := pdfimage.FromImage(src, color.SpaceDeviceRGB, 8)

	// Embed eagerly so that failures surface at the draw site which
	// first uses the image, rather than at commit time.
	_, err := w.rm.Embed(dict)
	if err != nil {
		return nil, err
	}
	return dict, nil
}

// Close implements the [pagebuffer.DocumentWriter] interface.
func (w *Writer) Close() error {
	ref, err := w.tree.Close()
	if err != nil {
		return err
	}
	w.out.GetMeta().Catalog.Pages = ref

	if err := w.rm.Close(); err != nil {
		return err
	}
	return w.out.Close()
}

// pageWriter adapts a content stream builder to the
// [pagebuffer.PageWriter] interface.
type pageWriter struct {
	w      *Writer
	b      *builder.Builder
	pg     *page.Page
	closed bool
}

func (p *pageWriter) Transform(m matrix.Matrix) {
	p.b.Transform(m)
}

func (p *pageWriter) SetStrokeColor(c color.Color) {
	p.b.SetStrokeColor(c)
}

func (p *pageWriter) SetFillColor(c color.Color) {
	p.b.SetFillColor(c)
}

func (p *pageWriter) SetLineWidth(width float64) {
	p.b.SetLineWidth(width)
}

func (p *pageWriter) DrawLine(x1, y1, x2, y2 float64) {
	p.b.MoveTo(x1, y1)
	p.b.LineTo(x2, y2)
	p.b.Stroke()
}

func (p *pageWriter) FillRect(x, y, width, height float64) {
	p.b.Rectangle(x, y, width, height)
	p.b.Fill()
}

func (p *pageWriter) TextBegin() {
	p.b.TextBegin()
}

func (p *pageWriter) TextSetFont(f pagebuffer.Font, size float64) {
	inst, ok := f.(font.Instance)
	if !ok {
		p.setErr(fmt.Errorf("pdfwriter: font handle has type %T, want font.Instance", f))
		return
	}
	p.b.TextSetFont(inst, size)
}

func (p *pageWriter) TextFirstLine(x, y float64) {
	p.b.TextFirstLine(x, y)
}

func (p *pageWriter) TextShow(s string) {
	p.b.TextShow(s)
}

func (p *pageWriter) TextEnd() {
	p.b.TextEnd()
}

func (p *pageWriter) DrawXObject(obj pagebuffer.XObject, x, y, width, height float64) {
	xo, ok := obj.(graphics.XObject)
	if !ok {
		p.setErr(fmt.Errorf("pdfwriter: image handle has type %T", obj))
		return
	}

	// Image XObjects cover the unit square; translate and scale it to
	// the requested extent.
	p.b.PushGraphicsState()
	p.b.Transform(matrix.Translate(x, y))
	p.b.Transform(matrix.Scale(width, height))
	p.b.DrawXObject(xo)
	p.b.PopGraphicsState()
}

func (p *pageWriter) setErr(err error) {
	if p.b.Err == nil {
		p.b.Err = err
	}
}

func (p *pageWriter) Err() error {
	return p.b.Err
}

// Close appends the page to the document's page tree.  After Close the
// page can no longer be modified.
func (p *pageWriter) Close() error {
	if p.closed {
		return errors.New("pdfwriter: page already closed")
	}
	p.closed = true

	if p.b.Err != nil {
		return p.b.Err
	}

	p.pg.Contents = []*page.Content{{Operators: p.b.Stream}}
	return p.w.tree.AppendPage(p.pg)
}

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
	"image"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf/graphics/color"
)

// XObject is an opaque handle for a raster image embedded in the output
// document.  Handles are only valid for the document writer which
// created them and must not be carried across documents.
type XObject any

// Font is an opaque font handle.  The page buffer passes it through to
// the document writer unchanged; font selection and embedding are the
// writer's concern.
type Font any

// DocumentWriter is the document-level interface to the underlying
// output library.  The [Document] type issues all its output through
// this interface.
type DocumentWriter interface {
	// PageCount returns the number of pages already present in the
	// output document.  For writers which create documents from
	// scratch this is zero.
	PageCount() int

	// NewPage appends a new physical page of the given size to the
	// output document and opens a drawing context for it.  If rotated
	// is set, the page is displayed rotated by 90 degrees.
	NewPage(width, height float64, rotated bool) (PageWriter, error)

	// Page opens a drawing context for the pre-existing page at the
	// given 0-based index, for writers which support rewriting pages
	// of an existing document.
	Page(idx int) (PageWriter, error)

	// EmbedJPEG embeds a raster image using lossy compression and
	// returns a handle which can be drawn any number of times.
	EmbedJPEG(img image.Image) (XObject, error)

	// EmbedLossless embeds a raster image without loss of information.
	EmbedLossless(img image.Image) (XObject, error)

	// Close writes any pending data and closes the output document.
	Close() error
}

// PageWriter is a scoped drawing context for one physical page.
//
// Drawing operations do not return errors.  Instead, the first error
// encountered is recorded and all subsequent operations are ignored;
// Err returns the recorded error.  Close must be called exactly once
// when drawing is complete, and releases the context even if an error
// occurred.
type PageWriter interface {
	// Transform modifies the current transformation matrix.
	Transform(m matrix.Matrix)

	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)
	SetLineWidth(width float64)

	// DrawLine strokes a straight line segment using the current
	// stroke color and line width.
	DrawLine(x1, y1, x2, y2 float64)

	// FillRect fills the axis-aligned rectangle with the current fill
	// color.
	FillRect(x, y, width, height float64)

	TextBegin()
	TextSetFont(f Font, size float64)
	TextFirstLine(x, y float64)
	TextShow(s string)
	TextEnd()

	// DrawXObject draws a previously embedded image with its lower
	// left corner at (x, y), scaled to width×height document units.
	DrawXObject(obj XObject, x, y, width, height float64)

	Err() error
	Close() error
}

// LineStyle describes how line segments are stroked.
type LineStyle struct {
	Color color.Color
	Width float64
}

// TextStyle describes how text runs are drawn.
type TextStyle struct {
	Font  Font
	Size  float64
	Color color.Color
}

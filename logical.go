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
	"seehuhn.de/go/pdf"
)

// Orientation selects how a logical page grouping is placed on the
// physical page.
type Orientation int

const (
	// Landscape pages use the physical page rotated by 90 degrees.
	Landscape Orientation = iota

	// Portrait pages use the physical page as is.
	Portrait
)

// Default paper sizes, in document units.
var (
	A4     = &pdf.Rectangle{URx: 595.276, URy: 841.890}
	Letter = &pdf.Rectangle{URx: 612, URy: 792}
)

// A LogicalPage is one logical page grouping: a run of content which
// may break across any number of physical pages.  Layout decisions
// stay with the caller; the grouping only carries the page geometry
// used for page breaking and commit.
//
// The grouping's coordinate space extends downwards without bound.
// [LogicalPage.PageFor] maps a logical y value to the physical page it
// falls on, allocating new pages as needed.  [LogicalPage.End] commits
// all pages created since the previous grouping ended.
type LogicalPage struct {
	// PrintAreaHeight is the height of the printable band of each
	// physical page, in document units.  It is owned by the layout
	// caller; the default covers the full page.
	PrintAreaHeight float64

	// YBottom is the logical y value of the bottom of the printable
	// band.  Content below it belongs on a later page.
	YBottom float64

	doc         *Document
	orientation Orientation
	paper       *pdf.Rectangle

	// border holds decoration items which are replayed on every
	// physical page of the grouping, after the page content.
	border *Buffer
}

// PageStart starts a new logical page grouping with the given
// orientation and paper size, creating the buffer for its first
// physical page.
func (d *Document) PageStart(o Orientation, paper *pdf.Rectangle) *LogicalPage {
	d.appendNewPage()
	lp := &LogicalPage{
		doc:         d,
		orientation: o,
		paper:       paper,
		border:      &Buffer{doc: d},
	}
	_, lp.PrintAreaHeight = lp.logicalSize()
	return lp
}

// PageStartDefault starts a new landscape grouping on Letter paper.
func (d *Document) PageStartDefault() *LogicalPage {
	return d.PageStart(Landscape, Letter)
}

// paperSize returns the physical page size, width before height.
func (lp *LogicalPage) paperSize() (width, height float64) {
	return lp.paper.URx - lp.paper.LLx, lp.paper.URy - lp.paper.LLy
}

// logicalSize returns the size of the grouping's coordinate space.
// For landscape groupings the physical axes are swapped.
func (lp *LogicalPage) logicalSize() (width, height float64) {
	w, h := lp.paperSize()
	if lp.orientation == Landscape {
		return h, w
	}
	return w, h
}

// PageFor resolves a logical y coordinate to the physical page buffer
// it falls on and the y value local to that page, allocating the
// intervening pages if needed.  It fails with [ErrNoPages] if no page
// buffer exists yet.
func (lp *LogicalPage) PageFor(y float64) (*Buffer, float64, error) {
	return lp.doc.pageFor(y, lp.PrintAreaHeight, lp.YBottom)
}

// Border returns the buffer for decoration items of this grouping.
// Its commands are replayed on every physical page of the grouping,
// after the page's own content.
func (lp *LogicalPage) Border() *Buffer {
	return lp.border
}

// End commits all uncommitted pages of the document to the underlying
// writer.  Call it when the grouping is complete; afterwards the
// committed buffers must not be appended to anymore.
func (lp *LogicalPage) End() error {
	return lp.doc.flush(lp)
}

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
	"cmp"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics/color"
)

// DefaultZ is the z-index assigned to draw commands when no explicit
// z-index is given.  Commands with smaller z-indices are drawn first.
const DefaultZ = 0.0

// itemOrder determines the replay order of draw commands on a page:
// ascending z-index, ties broken by ascending sequence number.  The
// sequence number is unique within a page, so this is a total order.
type itemOrder struct {
	z   float64
	seq uint64
}

func (o itemOrder) compare(other itemOrder) int {
	if c := cmp.Compare(o.z, other.z); c != 0 {
		return c
	}
	return cmp.Compare(o.seq, other.seq)
}

// A drawItem is one buffered drawing operation.  Items are immutable
// after creation.
type drawItem interface {
	order() itemOrder
	commit(w PageWriter)
}

type fillRect struct {
	ord                 itemOrder
	x, y, width, height float64
	col                 color.Color
}

func (it *fillRect) order() itemOrder { return it.ord }

func (it *fillRect) commit(w PageWriter) {
	w.SetFillColor(it.col)
	w.FillRect(it.x, it.y, it.width, it.height)
}

type drawLine struct {
	ord            itemOrder
	x1, y1, x2, y2 float64
	style          LineStyle
}

func (it *drawLine) order() itemOrder { return it.ord }

func (it *drawLine) commit(w PageWriter) {
	w.SetStrokeColor(it.style.Color)
	w.SetLineWidth(it.style.Width)
	w.DrawLine(it.x1, it.y1, it.x2, it.y2)
}

type drawText struct {
	ord   itemOrder
	x, y  float64
	text  string
	style TextStyle
}

func (it *drawText) order() itemOrder { return it.ord }

func (it *drawText) commit(w PageWriter) {
	w.TextBegin()
	w.SetFillColor(it.style.Color)
	w.TextSetFont(it.style.Font, it.style.Size)
	w.TextFirstLine(it.x, it.y)
	w.TextShow(it.text)
	w.TextEnd()
}

type drawImage struct {
	ord  itemOrder
	x, y float64
	obj  XObject
	size vec.Vec2
}

func (it *drawImage) order() itemOrder { return it.ord }

func (it *drawImage) commit(w PageWriter) {
	w.DrawXObject(it.obj, it.x, it.y, it.size.X, it.size.Y)
}

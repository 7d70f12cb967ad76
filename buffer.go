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
	"slices"

	"seehuhn.de/go/pdf/graphics/color"
)

// Buffer collects the drawing operations for one physical page until
// the page is committed.  Operations can be appended in any order; at
// commit time they are replayed sorted by ascending z-index, with ties
// broken by append order.
//
// Buffers are created and owned by a [Document] and must not be used
// after the owning document has committed them.
type Buffer struct {
	// PageNum is the 1-based number of the physical page this buffer
	// draws to.
	PageNum int

	doc     *Document
	lastSeq uint64
	items   []drawItem
}

// insert adds an item at its sorted position.  Sequence numbers are
// strictly increasing, so keys never compare equal and items with the
// same z-index end up in append order.
func (b *Buffer) insert(it drawItem) {
	idx, _ := slices.BinarySearchFunc(b.items, it, func(a, t drawItem) int {
		return a.order().compare(t.order())
	})
	b.items = slices.Insert(b.items, idx, it)
}

func (b *Buffer) nextOrder(z float64) itemOrder {
	o := itemOrder{z: z, seq: b.lastSeq}
	b.lastSeq++
	return o
}

// FillRect appends a filled rectangle with the default z-index.
func (b *Buffer) FillRect(x, y, width, height float64, c color.Color) {
	b.FillRectZ(x, y, width, height, c, DefaultZ)
}

// FillRectZ appends a filled rectangle with an explicit z-index.
func (b *Buffer) FillRectZ(x, y, width, height float64, c color.Color, z float64) {
	b.insert(&fillRect{
		ord: b.nextOrder(z),
		x:   x, y: y, width: width, height: height,
		col: c,
	})
}

// DrawLine appends a stroked line segment with the default z-index.
func (b *Buffer) DrawLine(x1, y1, x2, y2 float64, style LineStyle) {
	b.DrawLineZ(x1, y1, x2, y2, style, DefaultZ)
}

// DrawLineZ appends a stroked line segment with an explicit z-index.
func (b *Buffer) DrawLineZ(x1, y1, x2, y2 float64, style LineStyle, z float64) {
	b.insert(&drawLine{
		ord: b.nextOrder(z),
		x1:  x1, y1: y1, x2: x2, y2: y2,
		style: style,
	})
}

// DrawText appends a text run with the default z-index.
func (b *Buffer) DrawText(x, y float64, text string, style TextStyle) {
	b.DrawTextZ(x, y, text, style, DefaultZ)
}

// DrawTextZ appends a text run with an explicit z-index.
func (b *Buffer) DrawTextZ(x, y float64, text string, style TextStyle, z float64) {
	b.insert(&drawText{
		ord: b.nextOrder(z),
		x:   x, y: y,
		text:  text,
		style: style,
	})
}

// DrawImage appends a raster image with the default z-index.  The
// image is embedded into the output document the first time it is
// drawn; further draws of the same image reuse the embedded data.  The
// image's lower left corner is placed at (x, y).
func (b *Buffer) DrawImage(x, y float64, img *ScaledImage) error {
	return b.DrawImageZ(x, y, img, DefaultZ)
}

// DrawImageZ appends a raster image with an explicit z-index.
func (b *Buffer) DrawImageZ(x, y float64, img *ScaledImage, z float64) error {
	obj, err := b.doc.cache.ensureCached(img)
	if err != nil {
		return err
	}
	b.insert(&drawImage{
		ord: b.nextOrder(z),
		x:   x, y: y,
		obj:  obj,
		size: img.Size,
	})
	return nil
}

// Len returns the number of buffered draw commands.
func (b *Buffer) Len() int {
	return len(b.items)
}

// commit replays all buffered commands in their total order.  Each
// call re-issues every command, so a buffer must be committed at most
// once.  Replay stops at the writer's first error.
func (b *Buffer) commit(w PageWriter) error {
	for _, it := range b.items {
		it.commit(w)
		if err := w.Err(); err != nil {
			return err
		}
	}
	return nil
}

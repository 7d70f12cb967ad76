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
	"fmt"
	"image"
)

// EmbedError is returned when a raster image cannot be embedded into
// the output document.
type EmbedError struct {
	Format Format
	Cause  error
}

func (e *EmbedError) Error() string {
	return fmt.Sprintf("embedding %s image: %v", e.Format, e.Cause)
}

func (e *EmbedError) Unwrap() error {
	return e.Cause
}

// imageCache deduplicates embedded raster data within one document.
// Many draw commands can be backed by few images: the maps track the
// embedded handles, keyed by image identity, while the draw commands
// only record position and scale.
//
// Embedded handles are tied to the internal object graph of one output
// document, so the cache must be created fresh for each document and
// must never be shared or reused.
type imageCache struct {
	out DocumentWriter

	jpegs    map[image.Image]XObject
	lossless map[image.Image]XObject
}

func newImageCache(out DocumentWriter) *imageCache {
	return &imageCache{
		out:      out,
		jpegs:    make(map[image.Image]XObject),
		lossless: make(map[image.Image]XObject),
	}
}

// ensureCached returns the embedded handle for img, embedding the
// pixel data on first use.  On failure no cache entry is created, so a
// later call with the same image re-attempts the embedding.
func (c *imageCache) ensureCached(img *ScaledImage) (XObject, error) {
	m := c.lossless
	embed := c.out.EmbedLossless
	if img.Format == FormatJPEG {
		m = c.jpegs
		embed = c.out.EmbedJPEG
	}

	if obj, ok := m[img.Image]; ok {
		return obj, nil
	}
	obj, err := embed(img.Image)
	if err != nil {
		return nil, &EmbedError{Format: img.Format, Cause: err}
	}
	m[img.Image] = obj
	return obj, nil
}

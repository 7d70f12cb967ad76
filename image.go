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

	xdraw "golang.org/x/image/draw"
	"seehuhn.de/go/geom/vec"
)

// DocUnitsPerInch is the nominal resolution of the document coordinate
// system.  At 100% zoom one document unit corresponds to roughly one
// pixel on an average desktop monitor.
const DocUnitsPerInch = 72.0

// assumedImageDPI is the print resolution assumed for images whose
// display size is not given explicitly.
const assumedImageDPI = 300.0

const imageScale = DocUnitsPerInch / assumedImageDPI

// Format selects the compression family used when an image is embedded
// into the output document.  Images of different formats are cached
// separately.
type Format int

const (
	// FormatLossless embeds the image pixels without loss of
	// information.
	FormatLossless Format = iota

	// FormatJPEG embeds the image using lossy DCT compression.
	FormatJPEG
)

func (f Format) String() string {
	switch f {
	case FormatLossless:
		return "lossless"
	case FormatJPEG:
		return "jpeg"
	default:
		return "unknown"
	}
}

// ScaledImage pairs a decoded raster image with the size it should
// occupy on the page, in document units.  When the same image value is
// drawn at several places within one document, the pixel data is
// embedded only once; each draw site only adds position and scale.
type ScaledImage struct {
	// Image is the decoded source image.  Draw sites which are meant
	// to share embedded pixel data must use the same Image value.
	Image image.Image

	// Format selects the compression family.
	Format Format

	// Size is the displayed size in document units.
	Size vec.Vec2
}

// NewScaledImage returns a ScaledImage whose display size is derived
// from the pixel size of img, assuming a print resolution of 300 DPI:
// a w×h pixel image covers w/300×h/300 inches on the page.
func NewScaledImage(img image.Image, f Format) *ScaledImage {
	b := img.Bounds()
	return &ScaledImage{
		Image:  img,
		Format: f,
		Size: vec.Vec2{
			X: float64(b.Dx()) * imageScale,
			Y: float64(b.Dy()) * imageScale,
		},
	}
}

// NewScaledImageSize returns a ScaledImage with an explicit display
// size in document units.
func NewScaledImageSize(img image.Image, f Format, width, height float64) *ScaledImage {
	return &ScaledImage{
		Image:  img,
		Format: f,
		Size:   vec.Vec2{X: width, Y: height},
	}
}

// Resample returns a copy of src scaled to width×height pixels, using
// Catmull-Rom interpolation.  This can be used to shrink oversized
// source images before they are embedded, to keep the output document
// small.
func Resample(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

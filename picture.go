// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xlsxbook

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// supportedImageTypes maps the decoder name to the media part extension.
var supportedImageTypes = map[string]string{
	"bmp": ".bmp", "gif": ".gif", "jpeg": ".jpeg", "png": ".png",
	"tiff": ".tiff", "webp": ".webp",
}

// Image is an embedded picture of a worksheet. RefID is the workbook-wide
// media number assigned by Workbook.PrepareDrawings and is zero until then.
type Image struct {
	Data      []byte
	Extension string
	Width     int
	Height    int
	RefID     int
}

// NewImage decodes the header of the picture data to determine its format
// and pixel size.
func NewImage(data []byte) (*Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageFormat, err)
	}
	ext, ok := supportedImageTypes[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrImageFormat, format)
	}
	return &Image{Data: data, Extension: ext, Width: cfg.Width, Height: cfg.Height}, nil
}

// MediaName returns the media part name of a prepared image.
func (img *Image) MediaName() string {
	return fmt.Sprintf("media/image%d%s", img.RefID, img.Extension)
}

// Drawing is the drawing part of a worksheet: one anchor per prepared image
// in sheet order.
type Drawing struct {
	Anchors []DrawingAnchor
}

// DrawingAnchor links a drawing to the image at ImageIndex of its worksheet
// and to that image's workbook-wide media number.
type DrawingAnchor struct {
	ImageIndex int
	RefID      int
}

// PrepareDrawings numbers every worksheet image workbook-wide, starting at
// 1 in sheet order, and rebuilds each worksheet's drawing. Worksheets without
// images get no drawing. The collected images and drawings are available
// from Images and Drawings until the next call.
func (wb *Workbook) PrepareDrawings() {
	imageRefID := 0
	wb.images = wb.images[:0]
	wb.drawings = wb.drawings[:0]

	for _, ws := range wb.sheets {
		if len(ws.Images()) == 0 {
			continue
		}
		ws.clearExtraDrawingInfo()
		for idx := range ws.images {
			imageRefID++
			ws.prepareImage(idx, imageRefID)
			wb.images = append(wb.images, ws.images[idx])
		}
		wb.drawings = append(wb.drawings, ws.Drawing())
	}
}

// Images returns the images collected by the last PrepareDrawings call.
func (wb *Workbook) Images() []*Image {
	return append([]*Image(nil), wb.images...)
}

// Drawings returns the drawings collected by the last PrepareDrawings call.
func (wb *Workbook) Drawings() []*Drawing {
	return append([]*Drawing(nil), wb.drawings...)
}

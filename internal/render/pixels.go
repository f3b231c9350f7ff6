package render

import "image/color"

// FillMaskRGBA converts mask data into RGBA pixels in buf: non-zero cells get
// on, zero cells get off.
func FillMaskRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// FillPaletteRGBA converts cell values into RGBA pixels using a palette.
// Values past the end of the palette use its last entry; an empty palette
// clears the buffer to transparent black.
func FillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// FieldPalette maps quantized field values to colors: index 0 is the most
// negative (deep inside, warm), the last index the most positive (outside,
// dark blue). Entries below the midpoint are inside the surface.
func FieldPalette(levels int) []color.RGBA {
	if levels < 2 {
		levels = 2
	}
	out := make([]color.RGBA, levels)
	for i := range out {
		t := float64(i) / float64(levels-1)
		if t < 0.5 {
			s := t * 2
			out[i] = color.RGBA{R: 255, G: uint8(80 + 140*s), B: uint8(40 * s), A: 255}
			continue
		}
		s := (t - 0.5) * 2
		out[i] = color.RGBA{R: uint8(40 * (1 - s)), G: uint8(60 * (1 - s)), B: uint8(160 - 100*s), A: 255}
	}
	return out
}

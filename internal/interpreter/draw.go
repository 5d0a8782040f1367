package interpreter

// drawSprite handles Dxyn. It XORs an 8xn sprite, or for Dxy0 on extended
// variants a 16x16 sprite, read from I into the display at (Vx, Vy).
// VF is set to 1 if any pixel was turned off. With the vblank quirk enabled
// the instruction is retried until the display is ready for drawing.
func (c *Interpreter) drawSprite(ins Instruction) bool {
	if c.quirks.WaitForVBlank && !c.vblank {
		return false
	}

	rows, columns := int(ins.Nibble), 8
	if ins.Nibble == 0 && c.variant.SupportsExtended() {
		rows, columns = 16, 16
	}
	bytesPerRow := columns / 8
	if !c.checkMemoryRange(ins, c.index, rows*bytesPerRow) {
		return false
	}

	width := c.display.Width()
	height := c.display.Height()
	pixels := c.display.Pixels()
	startX := int(c.v[ins.X]) % width
	startY := int(c.v[ins.Y]) % height
	clipping := c.quirks.EdgeClipping

	overlap := false
	for row := range rows {
		y := startY + row
		if y >= height {
			if clipping {
				break
			}
			y %= height
		}

		address := c.index + uint16(row*bytesPerRow)
		for column := range columns {
			x := startX + column
			if x >= width {
				if clipping {
					break
				}
				x %= width
			}

			data := c.memory.ReadByte(address + uint16(column/8))
			if data&(0x80>>(column%8)) == 0 {
				continue
			}

			i := x + y*width
			if pixels[i] {
				overlap = true
			}
			pixels[i] = !pixels[i]
		}
	}

	c.setFlag(boolToByte(overlap))
	c.vblank = false
	return true
}

package emu

// Playfield geometry in tiles. The panel is rotated, so rows run down
// the long axis of the screen.
const (
	TileRows = 36
	TileCols = 28
)

// tileAddrTable maps a (row, col) playfield position to its offset in
// video RAM. The board wires the name table in column-major order for
// the middle of the screen and row-major for the top and bottom two
// rows, so the mapping is three affine bands rather than one formula.
var tileAddrTable = func() [TileRows][TileCols]uint16 {
	var t [TileRows][TileCols]uint16
	for row := 0; row < TileRows; row++ {
		for col := 0; col < TileCols; col++ {
			var addr int
			switch {
			case row < 2:
				addr = 0x3DD + col - 32*row
			case row >= 34:
				addr = 0x01D + col - 32*(row-34)
			default:
				addr = 0x3A0 + (row - 2) - 32*col
			}
			t[row][col] = uint16(addr)
		}
	}
	return t
}()

package emu

import "testing"

// TestTileAddr_Bijection tests that every rendered playfield position
// maps to a distinct video RAM offset inside the 1KB name table. The
// panel only shows rows 0 through 34, so only those must decode.
func TestTileAddr_Bijection(t *testing.T) {
	seen := make(map[uint16][2]int)

	for row := 0; row < 35; row++ {
		for col := 0; col < TileCols; col++ {
			addr := tileAddrTable[row][col]
			if addr >= 0x400 {
				t.Fatalf("(%d,%d): address 0x%04X outside name table", row, col, addr)
			}
			if prev, dup := seen[addr]; dup {
				t.Fatalf("(%d,%d) and (%d,%d) both map to 0x%04X",
					row, col, prev[0], prev[1], addr)
			}
			seen[addr] = [2]int{row, col}
		}
	}

	if len(seen) != 35*TileCols {
		t.Errorf("expected %d distinct addresses, got %d", 35*TileCols, len(seen))
	}
}

// TestTileAddr_BandFormulas spot-checks each of the three wiring bands,
// including the wraparound in the unrendered last row
func TestTileAddr_BandFormulas(t *testing.T) {
	testCases := []struct {
		row, col int
		addr     uint16
	}{
		{0, 0, 0x3DD},  // top band origin
		{1, 0, 0x3BD},  // second score row
		{0, 27, 0x3F8}, // top right
		{2, 0, 0x3A0},  // playfield origin
		{2, 27, 0x040}, // playfield top right
		{33, 0, 0x3BF}, // playfield bottom left
		{33, 27, 0x05F},
		{34, 0, 0x01D}, // bottom band origin
		{34, 27, 0x038},
		{35, 0, 0xFFFD}, // wraps, row 35 is never rendered
		{35, 27, 0x018},
	}

	for _, tc := range testCases {
		if got := tileAddrTable[tc.row][tc.col]; got != tc.addr {
			t.Errorf("(%d,%d): expected 0x%04X, got 0x%04X", tc.row, tc.col, tc.addr, got)
		}
	}
}

package parser

// dataBounds is the 0-based inclusive bounding box of non-empty cells.
type dataBounds struct {
	minRow, maxRow int
	minCol, maxCol int
}

// findDataBounds finds the bounding box of non-empty cells.
// ok is false when every cell is empty.
func findDataBounds(rows [][]string) (b dataBounds, ok bool) {
	b = dataBounds{minRow: -1, maxRow: -1, minCol: -1, maxCol: -1}

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if b.minRow < 0 || rowIdx < b.minRow {
				b.minRow = rowIdx
			}
			if rowIdx > b.maxRow {
				b.maxRow = rowIdx
			}
			if b.minCol < 0 || colIdx < b.minCol {
				b.minCol = colIdx
			}
			if colIdx > b.maxCol {
				b.maxCol = colIdx
			}
		}
	}

	return b, b.minRow >= 0
}

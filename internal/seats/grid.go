package seats

import (
	"skybook/internal/aircraft"

	"github.com/google/uuid"
)

// Cell is one occupied position of the grid.
type Cell struct {
	SeatID     uuid.UUID           `json:"seat_id"`
	Number     string              `json:"seat_number"`
	Row        int                 `json:"row"`
	Column     int                 `json:"column"`
	CabinClass aircraft.CabinClass `json:"cabin_class"`
	Status     aircraft.SeatStatus `json:"status"`
	Reserved   bool                `json:"reserved"`
}

// Grid lays seats out by row then column. Cells[r-1][c-1] is nil when the
// aircraft has no seat at (r, c); seats outside the rectangle go to Unplaced.
type Grid struct {
	Rows      int       `json:"rows"`
	Columns   int       `json:"columns"`
	Cells     [][]*Cell `json:"cells"`
	Unplaced  []Cell    `json:"unplaced,omitempty"`
	Missing   int       `json:"missing"`
	Available int       `json:"available"`
}

// BuildGrid arranges seats into a rows x cols grid. A seat whose ID is in
// reserved is marked Reserved; with a nil set the cached seat status decides.
func BuildGrid(rows, cols int, seats []aircraft.Seat, reserved map[uuid.UUID]struct{}) Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}

	grid := Grid{
		Rows:    rows,
		Columns: cols,
		Cells:   make([][]*Cell, rows),
	}
	for r := range grid.Cells {
		grid.Cells[r] = make([]*Cell, cols)
	}

	for _, seat := range seats {
		cell := Cell{
			SeatID:     seat.ID,
			Number:     seat.Number,
			Row:        seat.Row,
			Column:     seat.Column,
			CabinClass: seat.CabinClass,
			Status:     seat.Status,
		}
		if reserved != nil {
			_, cell.Reserved = reserved[seat.ID]
		} else {
			cell.Reserved = seat.Status != aircraft.SeatAvailable
		}

		if seat.Row < 1 || seat.Row > rows || seat.Column < 1 || seat.Column > cols ||
			grid.Cells[seat.Row-1][seat.Column-1] != nil {
			grid.Unplaced = append(grid.Unplaced, cell)
			continue
		}
		grid.Cells[seat.Row-1][seat.Column-1] = &cell
		if !cell.Reserved {
			grid.Available++
		}
	}

	for _, row := range grid.Cells {
		for _, cell := range row {
			if cell == nil {
				grid.Missing++
			}
		}
	}
	return grid
}

// Cell returns the seat at (row, col), or nil for an empty or out-of-range
// position.
func (g Grid) Cell(row, col int) *Cell {
	if row < 1 || row > g.Rows || col < 1 || col > g.Columns {
		return nil
	}
	return g.Cells[row-1][col-1]
}

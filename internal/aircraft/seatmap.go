package aircraft

import (
	"fmt"

	"github.com/google/uuid"
)

// SeatLabel is the "row-column" label printed on tickets, e.g. "3-5".
func SeatLabel(row, col int) string {
	return fmt.Sprintf("%d-%d", row, col)
}

// GenerateSeatMap returns rows x cols economy seats in row-major order, all
// available. Non-positive dimensions yield no seats.
func GenerateSeatMap(aircraftID uuid.UUID, rows, cols int) []Seat {
	if rows <= 0 || cols <= 0 {
		return nil
	}

	seats := make([]Seat, 0, rows*cols)
	for r := 1; r <= rows; r++ {
		for c := 1; c <= cols; c++ {
			seats = append(seats, Seat{
				AircraftID: aircraftID,
				Row:        r,
				Column:     c,
				Number:     SeatLabel(r, c),
				CabinClass: CabinEconomy,
				Status:     SeatAvailable,
			})
		}
	}
	return seats
}

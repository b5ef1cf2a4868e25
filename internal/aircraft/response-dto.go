package aircraft

type AircraftResponse struct {
	*Aircraft
	SeatsGenerated int `json:"seats_generated"`
}

type SeatMapResponse struct {
	AircraftID     string `json:"aircraft_id"`
	SeatsGenerated int    `json:"seats_generated"`
}

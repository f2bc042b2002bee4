package model

// Region identifies the administrative area a parking lot belongs to.
// All four levels are kept as plain strings because the upstream
// backend reports them inconsistently; empty values mean "unknown".
//
// Fields:
//  Province – top-level division (e.g. a province or metropolitan city).
//  City     – city or borough within the province.
//  District – district within the city.
//  Dong     – neighbourhood within the district.
type Region struct {
	Province string `json:"province"`
	City     string `json:"city"`
	District string `json:"district"`
	Dong     string `json:"dong"`
}

// Location is a WGS84 coordinate pair for map display.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ParkingLot describes one lot as surfaced to the booking flow.  Instances
// are immutable once decoded from an upstream response; the flow controller
// holds at most one selected lot at a time.
//
// Fields:
//  ID             – upstream identifier, normalised to a string.
//  Name           – display name.
//  Address        – full street address.
//  AvailableSpots – number of currently free spaces.
//  BasePrice      – hourly base price in currency minor units.
//  Region         – administrative area, parsed from the address when the
//                   upstream omits explicit region fields.
//  Location       – map coordinates.
type ParkingLot struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	AvailableSpots int      `json:"available_spots"`
	BasePrice      int      `json:"base_price"`
	Region         Region   `json:"region"`
	Location       Location `json:"location"`
}

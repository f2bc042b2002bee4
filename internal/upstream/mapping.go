package upstream

// mapping.go declares the raw wire shapes of the upstream responses and
// their mapping onto the gateway's models.  Alias sets mirror what the
// backend has actually been observed to send; do not prune them without
// checking the deployed backend versions first.

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/parkspot/booking-front/internal/layout"
	"github.com/parkspot/booking-front/internal/model"
)

type rawLot struct {
	ParkinglotID *flexString `json:"parkinglotId"`
	ID           *flexString `json:"id"`
	Name         *string     `json:"name"`
	Address      *string     `json:"address"`

	AvailableCount *flexInt `json:"availableCount"`
	AvailableSpots *flexInt `json:"availableSpots"`
	Available      *flexInt `json:"available"`
	FreeCount      *flexInt `json:"freeCount"`

	UnitPrice      *flexInt `json:"unitPrice"`
	BasePrice      *flexInt `json:"basePrice"`
	UnitPriceSnake *flexInt `json:"unit_price"`

	Province *string `json:"province"`
	Sido     *string `json:"sido"`
	City     *string `json:"city"`
	Sigungu  *string `json:"sigungu"`
	District *string `json:"district"`
	Gu       *string `json:"gu"`
	Dong     *string `json:"dong"`

	Lat       *flexFloat `json:"lat"`
	Latitude  *flexFloat `json:"latitude"`
	Long      *flexFloat `json:"long"`
	Lng       *flexFloat `json:"lng"`
	Longitude *flexFloat `json:"longitude"`
}

// toLot normalises one raw lot.  idx feeds the positional fallback id so
// that a response without any identifier still yields distinct lots.
func (r rawLot) toLot(idx int) model.ParkingLot {
	address := firstPlain(r.Address)
	province, city, district, dong := parseRegionFromAddress(address)

	id := firstString(r.ParkinglotID, r.ID)
	if id == "" {
		id = strconv.Itoa(idx)
	}
	pick := func(explicit []*string, parsed string) string {
		if v := firstPlain(explicit...); v != "" {
			return v
		}
		return parsed
	}
	return model.ParkingLot{
		ID:             id,
		Name:           firstPlain(r.Name),
		Address:        address,
		AvailableSpots: firstInt(r.AvailableCount, r.AvailableSpots, r.Available, r.FreeCount),
		BasePrice:      firstInt(r.UnitPrice, r.BasePrice, r.UnitPriceSnake),
		Region: model.Region{
			Province: pick([]*string{r.Province, r.Sido}, province),
			City:     pick([]*string{r.City, r.Sigungu}, city),
			District: pick([]*string{r.District, r.Gu}, district),
			Dong:     pick([]*string{r.Dong}, dong),
		},
		Location: model.Location{
			Lat: firstFloat(r.Lat, r.Latitude),
			Lng: firstFloat(r.Long, r.Lng, r.Longitude),
		},
	}
}

type rawSpace struct {
	Code       *flexString `json:"code"`
	Floor      *flexInt    `json:"floor"`
	Type       *string     `json:"type"`
	CanRes     *flexBool   `json:"canRes"`
	CanReserve *flexBool   `json:"canReserve"`
	Available  *flexBool   `json:"available"`
}

func (r rawSpace) toSpace() layout.Space {
	return layout.Space{
		Code:       firstString(r.Code),
		Floor:      firstInt(r.Floor),
		Type:       firstPlain(r.Type),
		CanReserve: boolOf(r.CanRes, r.CanReserve),
		Available:  boolOf(r.Available),
	}
}

// rawUser covers both login response shapes: a nested "user" object or
// the identity fields flattened onto the top level.
type rawUser struct {
	UserID   *flexString `json:"userId"`
	ID       *flexString `json:"id"`
	Email    *string     `json:"email"`
	Name     *string     `json:"name"`
	Username *string     `json:"username"`
	Phone    *flexString `json:"phone"`
	PhoneNum *flexString `json:"phoneNumber"`
	Tel      *flexString `json:"tel"`
	Contact  *flexString `json:"contact"`
}

func (r rawUser) toUser() model.User {
	return model.User{
		ID:    firstString(r.UserID, r.ID),
		Email: firstPlain(r.Email),
		Name:  firstPlain(r.Name, r.Username),
		Phone: firstString(r.Phone, r.PhoneNum, r.Tel, r.Contact),
	}
}

type rawReservation struct {
	ID            *flexString `json:"id"`
	ReservationID *flexString `json:"reservationId"`

	UsageStart *string `json:"usageStart"`
	StartDate  *string `json:"startDate"`
	StartTime  *string `json:"startTime"`
	StartSnake *string `json:"start_date"`

	UsageEnd *string `json:"usageEnd"`
	EndDate  *string `json:"endDate"`
	EndTime  *string `json:"endTime"`
	EndSnake *string `json:"end_date"`

	ReservedDate *string `json:"reservedDate"`
	RegisterDate *string `json:"registerDate"`
	RegesterDate *string `json:"regesterDate"` // historic backend typo, still emitted

	SpaceCode  *string `json:"spaceCode"`
	SeatCode   *string `json:"seatCode"`
	SeatNumber *string `json:"seatNumber"`

	Status *string `json:"status"`

	ParkingLotID    *flexString `json:"parkingLotId"`
	ParkinglotID    *flexString `json:"parkinglotId"`
	ParkingLotSnake *flexString `json:"parking_lot_id"`
	LotName         *string     `json:"parkingLotName"`
	LotNameSnake    *string     `json:"parking_lot_name"`
	LotAddress      *string     `json:"parkingLotAddress"`
	LotAddressSnake *string     `json:"parking_lot_address"`

	AvailableSpots *flexInt `json:"availableSpots"`
	BasePrice      *flexInt `json:"basePrice"`
	EstPrice       *flexInt `json:"estPrice"`
}

// toReservation normalises one reservation record.  now anchors the
// completed/upcoming classification.
func (r rawReservation) toReservation(now time.Time) model.Reservation {
	start := parseUpstreamTime(firstPlain(r.UsageStart, r.StartDate, r.StartTime, r.StartSnake))
	if start.IsZero() {
		start = now
	}
	end := parseUpstreamTime(firstPlain(r.UsageEnd, r.EndDate, r.EndTime, r.EndSnake))
	if end.IsZero() {
		end = start
	}
	reserved := parseUpstreamTime(firstPlain(r.ReservedDate, r.RegisterDate, r.RegesterDate))
	if reserved.IsZero() {
		reserved = start
	}

	status := model.ReservationUpcoming
	if end.Before(now) {
		status = model.ReservationCompleted
	}
	if r.Status != nil && *r.Status == "CANCELLED" {
		status = model.ReservationCancelled
	}

	return model.Reservation{
		ID: firstString(r.ID, r.ReservationID),
		Lot: model.ParkingLot{
			ID:             firstString(r.ParkingLotID, r.ParkinglotID, r.ParkingLotSnake),
			Name:           firstPlain(r.LotName, r.LotNameSnake),
			Address:        firstPlain(r.LotAddress, r.LotAddressSnake),
			AvailableSpots: firstInt(r.AvailableSpots),
			BasePrice:      firstInt(r.BasePrice, r.EstPrice),
		},
		ReservedAt: reserved,
		UsageDate:  start,
		StartTime:  start.Format("15:04"),
		EndTime:    end.Format("15:04"),
		SeatCode:   firstPlain(r.SpaceCode, r.SeatCode, r.SeatNumber),
		Status:     status,
	}
}

type rawVehicle struct {
	VehicalID     *flexInt    `json:"vehicalId"`
	ID            *flexInt    `json:"id"`
	CarNumber     *flexString `json:"carNumber"`
	PlateNumber   *flexString `json:"plateNumber"`
	LicenseNumber *flexString `json:"licenseNumber"`
	Model         *string     `json:"model"`
	Name          *string     `json:"name"`
}

func (r rawVehicle) toVehicle() model.Vehicle {
	return model.Vehicle{
		ID:          int64(firstInt(r.VehicalID, r.ID)),
		PlateNumber: firstString(r.CarNumber, r.PlateNumber, r.LicenseNumber),
		Model:       firstPlain(r.Model, r.Name),
	}
}

// decodeUserPayload handles the two accepted login response layouts.
func decodeUserPayload(body []byte) (model.User, error) {
	var envelope struct {
		User json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return model.User{}, err
	}
	src := body
	if len(envelope.User) > 0 && string(envelope.User) != "null" {
		src = envelope.User
	}
	var ru rawUser
	if err := json.Unmarshal(src, &ru); err != nil {
		return model.User{}, err
	}
	return ru.toUser(), nil
}

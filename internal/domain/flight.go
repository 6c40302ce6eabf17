package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeLayout is the layout flight timestamps are entered in. It is shown to
// users but never enforced.
const TimeLayout = "YYYY-MM-DD HH:MM"

type Flight struct {
	SerialNo      int    `json:"S_NO,string"`
	Airline       string `json:"AIRLINES_NAME"`
	Departure     string `json:"DEPARTURE"`
	Destination   string `json:"DESTINATION"`
	FlightNo      string `json:"FLIGHT_NO"`
	DepartureTime string `json:"TIME_OF_DEPARTURE"`
	ArrivalTime   string `json:"TIME_OF_ARRIVAL"`
	Price         int    `json:"CHARGES"`
}

// FlightKey identifies a flight. Empty timings match any timing.
type FlightKey struct {
	FlightNo      string
	DepartureTime string
	ArrivalTime   string
}

type FlightField string

const (
	FieldAirline       FlightField = "airline"
	FieldDeparture     FlightField = "departure"
	FieldDestination   FlightField = "destination"
	FieldDepartureTime FlightField = "departure_time"
	FieldArrivalTime   FlightField = "arrival_time"
	FieldPrice         FlightField = "price"
)

// FlightFields lists the modifiable fields in menu order.
var FlightFields = []FlightField{
	FieldAirline,
	FieldDeparture,
	FieldDestination,
	FieldDepartureTime,
	FieldArrivalTime,
	FieldPrice,
}

func NewFlight(serialNo int, airline, departure, destination, flightNo, depTime, arrTime string, price int) (*Flight, error) {
	f := &Flight{
		SerialNo:      serialNo,
		Airline:       strings.TrimSpace(airline),
		Departure:     NormalizeCode(departure),
		Destination:   NormalizeCode(destination),
		FlightNo:      NormalizeFlightNo(flightNo),
		DepartureTime: strings.TrimSpace(depTime),
		ArrivalTime:   strings.TrimSpace(arrTime),
		Price:         price,
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Flight) Validate() error {
	if f.SerialNo <= 0 {
		return fmt.Errorf("%w: serial number must be a positive integer", ErrValidation)
	}
	if f.Price < 0 {
		return fmt.Errorf("%w: price must be a non-negative integer", ErrValidation)
	}
	if f.Airline == "" || f.Departure == "" || f.Destination == "" ||
		f.FlightNo == "" || f.DepartureTime == "" || f.ArrivalTime == "" {
		return fmt.Errorf("%w: all flight fields are required", ErrValidation)
	}
	return nil
}

func (f *Flight) Key() FlightKey {
	return FlightKey{FlightNo: f.FlightNo, DepartureTime: f.DepartureTime, ArrivalTime: f.ArrivalTime}
}

// Matches reports whether f is identified by key. The flight number is
// compared case-insensitively, timings exactly.
func (f *Flight) Matches(key FlightKey) bool {
	if !SameFlightNo(f.FlightNo, key.FlightNo) {
		return false
	}
	if key.DepartureTime != "" && f.DepartureTime != key.DepartureTime {
		return false
	}
	if key.ArrivalTime != "" && f.ArrivalTime != key.ArrivalTime {
		return false
	}
	return true
}

// Set assigns a single field from raw input.
func (f *Flight) Set(field FlightField, value string) error {
	value = strings.TrimSpace(value)
	if field != FieldPrice && value == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrValidation, field)
	}
	switch field {
	case FieldAirline:
		f.Airline = value
	case FieldDeparture:
		f.Departure = NormalizeCode(value)
	case FieldDestination:
		f.Destination = NormalizeCode(value)
	case FieldDepartureTime:
		f.DepartureTime = value
	case FieldArrivalTime:
		f.ArrivalTime = value
	case FieldPrice:
		price, err := ParsePrice(value)
		if err != nil {
			return err
		}
		f.Price = price
	default:
		return fmt.Errorf("%w: unknown field %q", ErrValidation, field)
	}
	return nil
}

func NormalizeFlightNo(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func SameFlightNo(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// ParseSerial accepts only a run of decimal digits denoting a positive number.
func ParseSerial(s string) (int, error) {
	n, ok := parseDigits(s)
	if !ok || n <= 0 {
		return 0, fmt.Errorf("%w: serial number must be a positive integer", ErrValidation)
	}
	return n, nil
}

// ParsePrice accepts only a run of decimal digits.
func ParsePrice(s string) (int, error) {
	n, ok := parseDigits(s)
	if !ok {
		return 0, fmt.Errorf("%w: price must be a non-negative integer", ErrValidation)
	}
	return n, nil
}

func parseDigits(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

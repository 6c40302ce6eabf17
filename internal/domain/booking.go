package domain

import (
	"fmt"
	"strings"
)

// Booking is a passenger record. Amount is the flight price at booking
// time and is never re-derived.
type Booking struct {
	Name     string `json:"NAME"`
	Phone    string `json:"PHONE"`
	Email    string `json:"EMAIL"`
	FlightNo string `json:"FLIGHT_NO"`
	Amount   int    `json:"AMOUNT"`
	Passport string `json:"PASSPORT"`
	Feedback string `json:"FEEDBACK"`
}

func NewBooking(user User, flight Flight, passport string) (*Booking, error) {
	if strings.TrimSpace(user.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if flight.FlightNo == "" {
		return nil, fmt.Errorf("%w: flight number is required", ErrValidation)
	}
	return &Booking{
		Name:     user.Name,
		Phone:    user.Phone,
		Email:    user.Email,
		FlightNo: flight.FlightNo,
		Amount:   flight.Price,
		Passport: strings.TrimSpace(passport),
	}, nil
}

func (b *Booking) BelongsTo(email string) bool {
	return SameEmail(b.Email, email)
}

func (b *Booking) For(email, flightNo string) bool {
	return b.BelongsTo(email) && SameFlightNo(b.FlightNo, flightNo)
}

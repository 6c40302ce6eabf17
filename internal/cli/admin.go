package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/Domenick1991/airdesk/internal/service/flights"
)

var fieldLabels = map[domain.FlightField]string{
	domain.FieldAirline:       "Airline Name",
	domain.FieldDeparture:     "Departure",
	domain.FieldDestination:   "Destination",
	domain.FieldDepartureTime: "Departure Time (" + domain.TimeLayout + ")",
	domain.FieldArrivalTime:   "Arrival Time (" + domain.TimeLayout + ")",
	domain.FieldPrice:         "Charges",
}

func (c *Controller) adminSession(ctx context.Context) error {
	username, err := c.prompt(ctx, "Enter Admin Username: ")
	if err != nil {
		return err
	}
	password, err := c.readPassword(ctx, "Enter Admin Password: ")
	if err != nil {
		return err
	}
	c.rule()
	if username != c.admin.Username || password != c.admin.Password {
		c.log.WithField("username", username).Warn("admin login rejected")
		c.failure("Access Denied!")
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.banner("✈ ADMIN MENU ✈")
		c.println("1) View Flights\n2) Add Flight\n3) Modify Flight\n4) Delete Flight\n5) View Passengers\n6) Exit")
		choice, err := c.choice(ctx)
		if err != nil {
			if !errors.Is(err, errNotNumber) {
				return err
			}
			c.failure("Invalid input!")
			continue
		}

		switch choice {
		case 1:
			err = c.viewFlights(ctx)
		case 2:
			err = c.addFlight(ctx)
		case 3:
			err = c.modifyFlight(ctx)
		case 4:
			err = c.deleteFlight(ctx)
		case 5:
			err = c.viewPassengers(ctx)
		case 6:
			return nil
		default:
			c.failure("Invalid choice!")
		}
		if err != nil {
			return err
		}
		c.rule()
	}
}

// viewFlights and the other menu actions return only input errors;
// operation errors are printed.
func (c *Controller) viewFlights(ctx context.Context) error {
	list, err := c.flights.List(ctx)
	if !c.report("list flights", err) {
		return nil
	}
	if len(list) == 0 {
		c.println("No flights available.")
		return nil
	}
	c.flightTable(list)
	return nil
}

func (c *Controller) addFlight(ctx context.Context) error {
	raw, err := c.prompt(ctx, "Enter S_NO: ")
	if err != nil {
		return err
	}
	serial, err := domain.ParseSerial(raw)
	if err != nil {
		c.failure("Invalid input! S_NO must be a number.")
		return nil
	}

	input := flights.AddFlightInput{SerialNo: serial}
	fields := []struct {
		label string
		dst   *string
	}{
		{"Enter Airline Name: ", &input.Airline},
		{"Enter Departure: ", &input.Departure},
		{"Enter Destination: ", &input.Destination},
		{"Enter Flight No: ", &input.FlightNo},
		{"Enter Departure Time (" + domain.TimeLayout + "): ", &input.DepartureTime},
		{"Enter Arrival Time (" + domain.TimeLayout + "): ", &input.ArrivalTime},
	}
	for _, f := range fields {
		if *f.dst, err = c.prompt(ctx, f.label); err != nil {
			return err
		}
	}

	raw, err = c.prompt(ctx, "Enter Charges: ")
	if err != nil {
		return err
	}
	if input.Price, err = domain.ParsePrice(raw); err != nil {
		c.failure("Invalid input! Charges must be a number.")
		return nil
	}

	flight, err := c.flights.Add(ctx, input)
	if !c.report("add flight", err) {
		return nil
	}
	c.success(fmt.Sprintf("Flight %s added successfully!", flight.FlightNo))
	return nil
}

func (c *Controller) modifyFlight(ctx context.Context) error {
	flightNo, err := c.prompt(ctx, "Enter Flight No to modify: ")
	if err != nil {
		return err
	}
	if _, err := c.flights.Lookup(ctx, domain.FlightKey{FlightNo: flightNo}); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.failure("Flight not found.")
			return nil
		}
		c.report("lookup flight", err)
		return nil
	}

	exit := len(domain.FlightFields) + 1
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.println("\nModify Options:")
		for i, field := range domain.FlightFields {
			c.println(fmt.Sprintf("%d) %s", i+1, fieldLabels[field]))
		}
		c.println(fmt.Sprintf("%d) Exit", exit))

		choice, err := c.choice(ctx)
		if err != nil {
			if !errors.Is(err, errNotNumber) {
				return err
			}
			c.failure(fmt.Sprintf("Invalid input! Enter a number between 1-%d.", exit))
			continue
		}
		if choice == exit {
			return nil
		}
		if choice < 1 || choice > len(domain.FlightFields) {
			c.failure("Invalid choice!")
			continue
		}

		field := domain.FlightFields[choice-1]
		value, err := c.prompt(ctx, "Enter new " + fieldLabels[field] + ": ")
		if err != nil {
			return err
		}
		if _, err := c.flights.ModifyField(ctx, flightNo, field, value); c.report("modify flight", err) {
			c.success("Flight modified successfully!")
		}
	}
}

func (c *Controller) deleteFlight(ctx context.Context) error {
	var key domain.FlightKey
	var err error
	if key.FlightNo, err = c.prompt(ctx, "Enter Flight No to delete: "); err != nil {
		return err
	}
	if key.DepartureTime, err = c.prompt(ctx, "Enter Departure Time (" + domain.TimeLayout + "): "); err != nil {
		return err
	}
	if key.ArrivalTime, err = c.prompt(ctx, "Enter Arrival Time (" + domain.TimeLayout + "): "); err != nil {
		return err
	}

	result, err := c.flights.Delete(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.failure(fmt.Sprintf("Flight %s with specified timings not found.", domain.NormalizeFlightNo(key.FlightNo)))
			return nil
		}
		c.report("delete flight", err)
		return nil
	}
	c.success(fmt.Sprintf("Flight %s deleted successfully!", domain.NormalizeFlightNo(key.FlightNo)))
	c.success(fmt.Sprintf("%d corresponding passenger booking(s) have also been removed.", result.BookingsRemoved))
	return nil
}

func (c *Controller) viewPassengers(ctx context.Context) error {
	list, err := c.bookings.ListAll(ctx)
	if !c.report("list passengers", err) {
		return nil
	}
	if len(list) == 0 {
		c.println("No passenger records.")
		return nil
	}
	c.bookingTable(list)
	return nil
}

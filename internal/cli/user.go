package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/Domenick1991/airdesk/internal/service/booking"
	"github.com/Domenick1991/airdesk/internal/service/users"
)

func (c *Controller) userSession(ctx context.Context) error {
	c.banner("✈ USER MENU ✈")
	c.println("\nUser Authentication:\n1) Login\n2) Register\n3) Back")
	choice, err := c.choice(ctx)
	if err != nil {
		if !errors.Is(err, errNotNumber) {
			return err
		}
		c.failure("Invalid input!")
		return nil
	}

	var user *domain.User
	switch choice {
	case 1:
		user, err = c.login(ctx)
	case 2:
		user, err = c.register(ctx)
	case 3:
		return nil
	default:
		c.failure("Invalid choice!")
		return nil
	}
	if err != nil || user == nil {
		return err
	}
	return c.travelerMenu(ctx, *user)
}

func (c *Controller) login(ctx context.Context) (*domain.User, error) {
	email, err := c.prompt(ctx, "Enter your Email: ")
	if err != nil {
		return nil, err
	}
	user, err := c.users.Login(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.failure("No user found with this email. Please register first.")
			return nil, nil
		}
		c.report("login", err)
		return nil, nil
	}
	c.success(fmt.Sprintf("Welcome back, %s!", user.Name))
	return user, nil
}

func (c *Controller) register(ctx context.Context) (*domain.User, error) {
	email, err := c.prompt(ctx, "Enter your Email: ")
	if err != nil {
		return nil, err
	}

	var inputErr error
	user, created, err := c.users.FindOrRegister(ctx, email, func(context.Context) (users.Profile, error) {
		var p users.Profile
		if p.Name, inputErr = c.prompt(ctx, "Enter your Name: "); inputErr != nil {
			return p, inputErr
		}
		if p.Phone, inputErr = c.prompt(ctx, "Enter your Phone Number: "); inputErr != nil {
			return p, inputErr
		}
		return p, nil
	})
	if inputErr != nil {
		return nil, inputErr
	}
	if !c.report("register", err) {
		return nil, nil
	}

	if created {
		c.success(fmt.Sprintf("User %s registered successfully!", user.Name))
	} else {
		c.warn("User already exists. Logging you in...")
	}
	return user, nil
}

// travelerMenu serves one logged-in user. The user is only held here and
// passed to each operation.
func (c *Controller) travelerMenu(ctx context.Context, user domain.User) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.banner("✈ USER MENU ✈")
		c.println("1) Book Flight\n2) View Booking\n3) Cancel Booking\n4) Feedback\n5) Logout")
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
			err = c.bookFlight(ctx, user)
		case 2:
			err = c.viewBookings(ctx, user)
		case 3:
			err = c.cancelBooking(ctx, user)
		case 4:
			err = c.feedback(ctx, user)
		case 5:
			c.println(fmt.Sprintf("Goodbye, %s!", user.Name))
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

func (c *Controller) bookFlight(ctx context.Context, user domain.User) error {
	list, err := c.flights.List(ctx)
	if !c.report("list flights", err) {
		return nil
	}
	if len(list) == 0 {
		c.failure("No flights available.")
		return nil
	}
	c.flightTable(list)

	flightNo, err := c.prompt(ctx, "Enter Flight No to book: ")
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
	owned, err := c.bookings.ListForUser(ctx, user.Email)
	if !c.report("list bookings", err) {
		return nil
	}
	for _, b := range owned {
		if domain.SameFlightNo(b.FlightNo, flightNo) {
			c.warn("You have already booked this flight.")
			return nil
		}
	}

	passport, err := c.prompt(ctx, "Enter your Passport No: ")
	if err != nil {
		return err
	}
	created, err := c.bookings.Book(ctx, user, booking.BookInput{FlightNo: flightNo, Passport: passport})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			c.warn("You have already booked this flight.")
			return nil
		}
		c.report("book flight", err)
		return nil
	}
	c.success(fmt.Sprintf("Flight %s booked successfully for %s!", created.FlightNo, user.Name))
	return nil
}

func (c *Controller) viewBookings(ctx context.Context, user domain.User) error {
	owned, err := c.bookings.ListForUser(ctx, user.Email)
	if !c.report("list bookings", err) {
		return nil
	}
	if len(owned) == 0 {
		c.failure("No booking found.")
		return nil
	}
	c.bookingTable(owned)
	return nil
}

func (c *Controller) cancelBooking(ctx context.Context, user domain.User) error {
	owned, err := c.bookings.ListForUser(ctx, user.Email)
	if !c.report("list bookings", err) {
		return nil
	}
	if len(owned) == 0 {
		c.failure("No booking found for your account.")
		return nil
	}

	c.println("\n— Your Current Bookings —")
	rows := make([][]string, 0, len(owned))
	for _, b := range owned {
		rows = append(rows, []string{b.FlightNo, strconv.Itoa(b.Amount)})
	}
	c.table([]string{"Flight No", "Price"}, rows)

	flightNo, err := c.prompt(ctx, "Enter the Flight No to cancel: ")
	if err != nil {
		return err
	}
	if _, err := c.bookings.Cancel(ctx, user.Email, flightNo); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.failure(fmt.Sprintf("Booking for Flight %s not found for your account.", domain.NormalizeFlightNo(flightNo)))
			return nil
		}
		c.report("cancel booking", err)
		return nil
	}
	c.success(fmt.Sprintf("Booking for Flight %s cancelled successfully!", domain.NormalizeFlightNo(flightNo)))
	return nil
}

func (c *Controller) feedback(ctx context.Context, user domain.User) error {
	flightNo, err := c.prompt(ctx, "Enter Flight No (leave blank for all your bookings): ")
	if err != nil {
		return err
	}
	text, err := c.prompt(ctx, "Enter Feedback: ")
	if err != nil {
		return err
	}

	if flightNo == "" {
		_, err = c.bookings.SetFeedback(ctx, user.Email, text)
	} else {
		err = c.bookings.SetFlightFeedback(ctx, user.Email, flightNo, text)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.failure("No booking found for your account.")
			return nil
		}
		c.report("feedback", err)
		return nil
	}
	c.success("Feedback saved.")
	return nil
}

// Package cli is the interactive menu. Every command is delegated to one
// catalog, directory or ledger operation; errors are printed and the menu
// continues.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Domenick1991/airdesk/config"
	"github.com/Domenick1991/airdesk/internal/logger"
	"github.com/Domenick1991/airdesk/internal/service/booking"
	"github.com/Domenick1991/airdesk/internal/service/flights"
	"github.com/Domenick1991/airdesk/internal/service/users"
	"github.com/sirupsen/logrus"
)

var (
	// errQuit is returned by prompts once input is exhausted.
	errQuit      = errors.New("input closed")
	errNotNumber = errors.New("not a number")
)

type inputLine struct {
	text string
	err  error
}

// PasswordReader reads a password without echoing it.
type PasswordReader func() (string, error)

type Controller struct {
	flights  flights.FlightUseCase
	bookings booking.BookingUseCase
	users    users.UserUseCase
	admin    config.AdminConfig

	in       *bufio.Reader
	lines    chan inputLine
	out      io.Writer
	password PasswordReader
	styles   styles
	log      logrus.FieldLogger
}

type Option func(*Controller)

func WithPasswordReader(fn PasswordReader) Option {
	return func(c *Controller) {
		c.password = fn
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

func New(
	flightSvc flights.FlightUseCase,
	bookingSvc booking.BookingUseCase,
	userSvc users.UserUseCase,
	admin config.AdminConfig,
	in io.Reader,
	out io.Writer,
	opts ...Option,
) *Controller {
	c := &Controller{
		flights:  flightSvc,
		bookings: bookingSvc,
		users:    userSvc,
		admin:    admin,
		in:       bufio.NewReader(in),
		out:      out,
		styles:   newStyles(out),
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run drives the top-level menu until the user exits or input ends.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.banner("✈ WELCOME TO AIRLINE TICKET BOOKING SYSTEM ✈")
		c.println("1) Admin\n2) User\n3) Exit")
		choice, err := c.choice(ctx)
		if err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			if !errors.Is(err, errNotNumber) {
				return err
			}
			c.failure("Invalid input! Please enter a number.")
			continue
		}
		c.rule()

		switch choice {
		case 1:
			err = c.adminSession(ctx)
		case 2:
			err = c.userSession(ctx)
		case 3:
			c.println("Exiting... Goodbye! Have a great day!")
			return nil
		default:
			c.failure("Invalid selection!")
		}
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		c.rule()
	}
}

// prompt prints label and waits for one line of input. It returns ctx.Err()
// as soon as ctx is done, even while the read is still blocked.
func (c *Controller) prompt(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(c.out, label)

	if c.lines == nil {
		c.lines = make(chan inputLine)
		go c.readLines()
	}
	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			fmt.Fprintln(c.out)
			return "", errQuit
		}
		if line.err != nil && !errors.Is(line.err, io.EOF) {
			return "", line.err
		}
		return strings.TrimSpace(line.text), nil
	}
}

// readLines feeds c.lines until input fails, then closes it. A final line
// without a newline is still delivered.
func (c *Controller) readLines() {
	defer close(c.lines)
	for {
		text, err := c.in.ReadString('\n')
		if err != nil {
			if text != "" || !errors.Is(err, io.EOF) {
				c.lines <- inputLine{text: text, err: err}
			}
			return
		}
		c.lines <- inputLine{text: text}
	}
}

func (c *Controller) readPassword(ctx context.Context, label string) (string, error) {
	if c.password == nil {
		return c.prompt(ctx, label)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(c.out, label)

	done := make(chan inputLine, 1)
	go func() {
		secret, err := c.password()
		done <- inputLine{text: secret, err: err}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", ctx.Err()
	case res := <-done:
		fmt.Fprintln(c.out)
		return res.text, res.err
	}
}

// choice reads a menu number. A non-numeric answer is reported as an
// ordinary error so the caller can re-prompt.
func (c *Controller) choice(ctx context.Context) (int, error) {
	answer, err := c.prompt(ctx, "Enter choice: ")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errNotNumber, answer)
	}
	return n, nil
}

// report prints err as an operation failure. It reports whether err was
// nil.
func (c *Controller) report(op string, err error) bool {
	if err == nil {
		return true
	}
	c.log.WithError(err).WithField("op", op).Debug("operation failed")
	c.failure(capitalize(err.Error()) + ".")
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

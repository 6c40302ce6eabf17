package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/Domenick1991/airdesk/internal/store"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const screenWidth = 100

type styles struct {
	banner  lipgloss.Style
	rule    lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	border  lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
}

// newStyles binds styles to out so colour is only emitted to terminals.
func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		banner:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Width(screenWidth).Align(lipgloss.Center),
		rule:    r.NewStyle().Foreground(lipgloss.Color("240")),
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
		failure: r.NewStyle().Foreground(lipgloss.Color("196")),
		warning: r.NewStyle().Foreground(lipgloss.Color("214")),
		border:  r.NewStyle().Foreground(lipgloss.Color("240")),
		header:  r.NewStyle().Bold(true).Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
	}
}

func (c *Controller) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Controller) banner(title string) {
	stars := strings.Repeat("*", screenWidth)
	c.println(c.styles.rule.Render(stars))
	c.println(c.styles.banner.Render(title))
	c.println(c.styles.rule.Render(stars))
}

func (c *Controller) rule() {
	c.println(c.styles.rule.Render(strings.Repeat("—", screenWidth)))
}

func (c *Controller) success(msg string) {
	c.println(c.styles.success.Render("✅ " + msg))
}

func (c *Controller) failure(msg string) {
	c.println(c.styles.failure.Render("❌ " + msg))
}

func (c *Controller) warn(msg string) {
	c.println(c.styles.warning.Render("⚠ " + msg))
}

func (c *Controller) table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(c.styles.border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return c.styles.header
			}
			return c.styles.cell
		}).
		Headers(headers...).
		Rows(rows...)
	c.println(t.String())
}

func (c *Controller) flightTable(flights []domain.Flight) {
	rows := make([][]string, 0, len(flights))
	for _, f := range flights {
		rows = append(rows, []string{
			strconv.Itoa(f.SerialNo), f.FlightNo, f.Airline, f.Departure, f.Destination,
			f.DepartureTime, f.ArrivalTime, strconv.Itoa(f.Price),
		})
	}
	c.table([]string{"S_NO", "Flight No", "Airline", "From", "To", "Departure", "Arrival", "Price"}, rows)
}

func (c *Controller) bookingTable(bookings []domain.Booking) {
	rows := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, []string{
			b.Name, b.Phone, b.Email, b.FlightNo, strconv.Itoa(b.Amount), b.Passport, b.Feedback,
		})
	}
	c.table([]string{"Name", "Phone", "Email", "Flight No", "Amount", "Passport", "Feedback"}, rows)
}

// WarnTo reports undecodable stores on out. It is meant for
// store.WithWarnFunc.
func WarnTo(out io.Writer) store.WarnFunc {
	st := newStyles(out)
	return func(name string, _ error) {
		fmt.Fprintln(out, st.warning.Render(fmt.Sprintf("⚠ Warning: could not decode %s, treating it as empty.", name)))
	}
}

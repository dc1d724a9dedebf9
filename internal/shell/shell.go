// Package shell runs the interactive text menu over an input/output pair.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"food-ordering/internal/catalog"
	"food-ordering/internal/logger"
	"food-ordering/internal/models"
	"food-ordering/internal/orderbook"
	"food-ordering/internal/validation"
)

type State int

const (
	StateMainMenu State = iota
	StateViewingRestaurants
	StatePlacingOrder
	StateViewingOrders
	StateExited
)

func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "MainMenu"
	case StateViewingRestaurants:
		return "ViewingRestaurants"
	case StatePlacingOrder:
		return "PlacingOrder"
	case StateViewingOrders:
		return "ViewingOrders"
	case StateExited:
		return "Exited"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const (
	choiceViewRestaurants = 1
	choicePlaceOrder      = 2
	choiceViewOrders      = 3
	choiceExit            = 4
)

const orderDivider = "----------------------"

// maxLineLength caps one line of input. Longer lines are rejected as malformed.
const maxLineLength = 4096

var errLineTooLong = errors.New("input line too long")

// Shell owns the app state for one session: the catalog it reads and the
// order book it writes.
type Shell struct {
	catalog   *catalog.Catalog
	orders    *orderbook.OrderBook
	in        *bufio.Reader
	out       io.Writer
	logger    *logger.Logger
	requestID string
	state     State
}

// New creates a shell. requestID tags every log line of the session.
func New(cat *catalog.Catalog, orders *orderbook.OrderBook, in io.Reader, out io.Writer, log *logger.Logger, requestID string) *Shell {
	return &Shell{
		catalog:   cat,
		orders:    orders,
		in:        bufio.NewReader(in),
		out:       out,
		logger:    log,
		requestID: requestID,
		state:     StateMainMenu,
	}
}

func (s *Shell) State() State {
	return s.state
}

// Run loops on the main menu until Exit is chosen or input ends.
func (s *Shell) Run(ctx context.Context) error {
	ctx = orderbook.WithRequestID(ctx, s.requestID)
	s.println("Welcome to the Food Delivery App!")

	for s.state != StateExited {
		if err := ctx.Err(); err != nil {
			s.state = StateExited
			return err
		}

		s.printMainMenu()
		var choice int
		line, err := s.readInput("choice")
		if err == nil {
			choice, err = validation.ParseChoice("choice", line)
		}
		if err != nil {
			if !isInputError(err) {
				return s.endOfInput(err)
			}
			s.rejectInput(err)
			s.println("Invalid choice. Please try again.")
			continue
		}

		switch choice {
		case choiceViewRestaurants:
			s.state = StateViewingRestaurants
			s.viewRestaurants()
		case choicePlaceOrder:
			s.state = StatePlacingOrder
			err = s.placeOrder(ctx)
		case choiceViewOrders:
			s.state = StateViewingOrders
			s.viewOrders()
		case choiceExit:
			s.state = StateExited
			s.println("Thank you for using the Food Delivery App!")
			return nil
		default:
			s.println("Invalid choice. Please try again.")
		}

		if err != nil {
			return s.endOfInput(err)
		}
		s.state = StateMainMenu
	}
	return nil
}

func (s *Shell) printMainMenu() {
	s.println("")
	s.println("1. View Restaurants")
	s.println("2. Place an Order")
	s.println("3. View Orders")
	s.println("4. Exit")
	s.print("Enter your choice: ")
}

func (s *Shell) viewRestaurants() {
	s.println("")
	s.println("Available Restaurants:")
	for i, r := range s.catalog.Restaurants() {
		s.printf("%d. %s\n", i+1, r)
	}
}

func (s *Shell) placeOrder(ctx context.Context) error {
	s.viewRestaurants()
	s.print("Select a restaurant (enter number): ")
	restaurant, err := s.selectRestaurant()
	if err != nil {
		if !isInputError(err) {
			return err
		}
		s.rejectInput(err)
		s.println("Invalid selection. Returning to main menu.")
		return nil
	}

	selected, err := s.selectMenuItems(restaurant)
	if err != nil {
		return err
	}

	order, err := s.orders.Place(ctx, restaurant.Name, selected)
	if errors.Is(err, orderbook.ErrEmptySelection) {
		s.logger.Info("order_rejected", "Order not placed: no items selected", s.requestID, map[string]any{
			"restaurant": restaurant.Name,
		})
		s.println("No items selected. Returning to main menu.")
		return nil
	}
	if err != nil {
		return err
	}

	s.println("")
	s.println("Order placed successfully!")
	s.println(order.String())
	return nil
}

func (s *Shell) selectRestaurant() (models.Restaurant, error) {
	line, err := s.readInput("restaurant")
	if err != nil {
		return models.Restaurant{}, err
	}
	index, err := validation.ParseSelection("restaurant", line, s.catalog.Len())
	if err != nil {
		return models.Restaurant{}, err
	}
	return s.catalog.Select(index)
}

// selectMenuItems collects items until 0 is entered. Bad input re-prompts.
func (s *Shell) selectMenuItems(r models.Restaurant) ([]models.MenuItem, error) {
	s.println("")
	s.printf("Menu of %s:\n", r.Name)
	for i, item := range r.Menu {
		s.printf("%d. %s\n", i+1, item)
	}

	var selected []models.MenuItem
	for {
		s.print("Enter item number to add to your order (0 to finish): ")
		var index int
		line, err := s.readInput("menu item")
		if err == nil {
			index, err = validation.ParseChoice("menu item", line)
		}
		if err == nil && index == 0 {
			return selected, nil
		}
		var item models.MenuItem
		if err == nil {
			item, err = catalog.SelectMenuItem(r, index)
		}
		if err != nil {
			if !isInputError(err) {
				return nil, err
			}
			s.rejectInput(err)
			s.println("Invalid selection. Please try again.")
			continue
		}

		selected = append(selected, item)
		s.printf("Added: %s\n", item)
	}
}

func (s *Shell) viewOrders() {
	orders := s.orders.Orders()
	if len(orders) == 0 {
		s.println("No orders have been placed yet.")
		return
	}

	s.println("")
	s.println("Your Orders:")
	for _, order := range orders {
		s.println(order.String())
		s.println(orderDivider)
	}
}

func (s *Shell) rejectInput(err error) {
	s.logger.Debug("invalid_input", err.Error(), s.requestID, map[string]any{
		"state": s.state.String(),
	})
}

// endOfInput treats a closed stdin like choosing Exit.
func (s *Shell) endOfInput(err error) error {
	s.state = StateExited
	if errors.Is(err, io.EOF) {
		s.println("")
		s.println("Thank you for using the Food Delivery App!")
		return nil
	}
	return err
}

func isInputError(err error) bool {
	var inputErr validation.InputError
	return errors.As(err, &inputErr)
}

// readInput reads one line for field. An oversized line is reported as a
// validation.InputError; any other error means input is gone.
func (s *Shell) readInput(field string) (string, error) {
	line, err := s.readLine()
	if errors.Is(err, errLineTooLong) {
		return "", validation.InputError{
			Field:   field,
			Kind:    validation.KindParse,
			Message: fmt.Sprintf("line longer than %d bytes", maxLineLength),
		}
	}
	return line, err
}

// readLine reads up to the next newline. The whole line is always consumed,
// even when it is over maxLineLength, so the next read starts on a fresh line.
func (s *Shell) readLine() (string, error) {
	var line []byte
	tooLong := false
	for {
		chunk, err := s.in.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(chunk) > maxLineLength+2 {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if len(line) == 0 && !tooLong {
				return "", io.EOF
			}
		case err != nil:
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		break
	}

	if tooLong {
		return "", errLineTooLong
	}
	return strings.TrimRight(string(line), "\r\n"), nil
}

func (s *Shell) print(a string) {
	fmt.Fprint(s.out, a)
}

func (s *Shell) println(a string) {
	fmt.Fprintln(s.out, a)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

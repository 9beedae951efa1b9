// Package session runs the interactive inventory menu.
//
// The menu is a small state machine: every handler reads its input, does its
// work and returns the next state. Invalid input returns the same state, so
// re-prompting never grows the call stack.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/inventory-cli/internal/backup"
	"github.com/rogerio-castellano/inventory-cli/internal/inventory"
	"github.com/rogerio-castellano/inventory-cli/internal/models"
	"github.com/rogerio-castellano/inventory-cli/internal/normalize"
	"github.com/rogerio-castellano/inventory-cli/internal/repo"
	"go.uber.org/zap"
)

type state int

const (
	stateMenu state = iota
	stateAdd
	stateView
	stateDelete
	stateBackup
	stateExit
)

const menuKeys = "abvq"

var menuItems = []struct {
	key   string
	label string
}{
	{"a", "add an entry"},
	{"v", "view an entry"},
	{"b", "backup the inventory to CSV"},
}

// Options configures a Session.
type Options struct {
	BackupPath string
	SwapFields bool
	Log        *zap.Logger
}

type Session struct {
	in       *bufio.Reader
	out      io.Writer
	products repo.ProductRepository
	service  *inventory.Service
	opts     Options
	log      *zap.Logger

	// current is the record shown by View and targeted by Delete.
	current models.Product
}

func New(in io.Reader, out io.Writer, products repo.ProductRepository, service *inventory.Service, opts Options) *Session {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	if opts.BackupPath == "" {
		opts.BackupPath = "backup.csv"
	}
	return &Session{
		in:       bufio.NewReader(in),
		out:      out,
		products: products,
		service:  service,
		opts:     opts,
		log:      log,
	}
}

// Run drives the menu until the user quits or input ends. Only store
// failures are returned.
func (s *Session) Run() error {
	st := stateMenu
	for st != stateExit {
		next, err := s.handle(st)
		if errors.Is(err, io.EOF) {
			s.log.Debug("input closed, leaving session")
			return nil
		}
		if err != nil {
			return err
		}
		st = next
	}
	return nil
}

func (s *Session) handle(st state) (state, error) {
	switch st {
	case stateAdd:
		return s.add()
	case stateView:
		return s.view()
	case stateDelete:
		return s.remove()
	case stateBackup:
		return s.runBackup()
	default:
		return s.menu()
	}
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) banner(title string) {
	s.printf("%s%s%s\n", strings.Repeat("-", 6), title, strings.Repeat("-", 6))
}

// prompt prints label and reads one line without its line ending. A final
// line without a newline is still returned; io.EOF comes on the next call.
func (s *Session) prompt(label string) (string, error) {
	s.printf("%s", label)
	line, err := s.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Session) menu() (state, error) {
	s.banner("MENU")
	s.printf("enter 'q' to quit.\n")
	for _, item := range menuItems {
		s.printf("%s) %s\n", item.key, item.label)
	}

	line, err := s.prompt("Action: ")
	if err != nil {
		return stateExit, err
	}
	choice := strings.ToLower(strings.TrimSpace(line))
	if strings.Trim(choice, menuKeys) != "" {
		s.printf("Oh no! That is not a valid input. Please try again\n")
		return stateMenu, nil
	}

	switch choice {
	case "a":
		return stateAdd, nil
	case "v":
		return stateView, nil
	case "b":
		return stateBackup, nil
	case "q":
		return stateExit, nil
	}
	return stateMenu, nil
}

func (s *Session) add() (state, error) {
	s.banner("ADD PRODUCT")
	name, err := s.prompt("What is the product name?\n>   ")
	if err != nil {
		return stateExit, err
	}
	price, err := s.prompt("What is the product_price?\n>   ")
	if err != nil {
		return stateExit, err
	}
	quantity, err := s.prompt("What is the product_quantity?\n>   ")
	if err != nil {
		return stateExit, err
	}
	s.printf("name: %s, price $%s, quantity %s \n", name, price, quantity)

	confirm, err := s.prompt("Save entry? [Yn]:   ")
	if err != nil {
		return stateExit, err
	}
	if strings.ToLower(confirm) == "n" {
		return stateMenu, nil
	}

	_, outcome, err := s.service.AddEntry(inventory.AddRequest{
		Name:       name,
		Price:      price,
		Quantity:   quantity,
		SwapFields: s.opts.SwapFields,
	})
	if errors.Is(err, inventory.ErrInvalidInput) {
		s.printf("One of the following inputs is incorrect: product_quantity, product_price or product_name! please try again!\n")
		return stateAdd, nil
	}
	if err != nil {
		return stateExit, err
	}

	if outcome == inventory.Updated {
		s.printf("Successfully Updated!\n")
	} else {
		s.printf("Successfully Created!\n")
	}
	return stateMenu, nil
}

func (s *Session) view() (state, error) {
	s.banner("VIEW PRODUCT")
	raw, err := s.prompt("Please select a product id:  ")
	if err != nil {
		return stateExit, err
	}
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		s.printf("Please input integer for product id!\n")
		return stateView, nil
	}

	p, err := s.products.GetByID(id)
	if errors.Is(err, repo.ErrProductNotFound) {
		s.printf("That record does not seem to exist!\n")
		return stateView, nil
	}
	if err != nil {
		return stateExit, fmt.Errorf("view product %d: %w", id, err)
	}
	total, err := s.products.Count()
	if err != nil {
		return stateExit, fmt.Errorf("count products: %w", err)
	}

	s.printf("%sHere are product details%s\n\n\n", strings.Repeat("*", 6), strings.Repeat("*", 6))
	s.printf("Product: %s\n", p.Name)
	s.printf("product_price: %d\n", p.PriceCents)
	s.printf("product_quantity: %d\n", p.Quantity)
	s.printf("date_updated: %s\n", normalize.FormatTimestamp(p.UpdatedAt))
	s.printf("There are %d items in this table\n", total)
	s.printf("input 'n' for view new record or 'd' to delete a product. Input any other letter to go back to the main menu\n")

	action, err := s.prompt("Action:  ")
	if err != nil {
		return stateExit, err
	}
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "n":
		return stateView, nil
	case "d":
		s.current = p
		return stateDelete, nil
	}
	return stateMenu, nil
}

func (s *Session) remove() (state, error) {
	confirm, err := s.prompt("Are you sure you want delete a product[yn]?")
	if err != nil {
		return stateExit, err
	}
	if strings.ToLower(confirm) != "y" {
		return stateMenu, nil
	}

	err = s.products.Delete(s.current.ID)
	if errors.Is(err, repo.ErrProductNotFound) {
		s.printf("That record does not seem to exist!\n")
		return stateMenu, nil
	}
	if err != nil {
		return stateExit, fmt.Errorf("delete product %d: %w", s.current.ID, err)
	}

	s.log.Info("product deleted", zap.Int("id", s.current.ID), zap.String("name", s.current.Name))
	s.printf("The entry was deleted successfully!\n")
	return stateMenu, nil
}

func (s *Session) runBackup() (state, error) {
	s.banner("BACKUP")
	n, err := backup.Export(s.products, s.opts.BackupPath)
	if err != nil {
		s.log.Error("backup failed", zap.String("file", s.opts.BackupPath), zap.Error(err))
		s.printf("Backup failed: %v\n", err)
		return stateMenu, nil
	}

	s.log.Info("backup written", zap.String("file", s.opts.BackupPath), zap.Int("products", n))
	s.printf("Backup was done successfully!\n")
	return stateMenu, nil
}

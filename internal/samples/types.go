// Package samples holds example beans together with the introspection code
// the generator emits for them. Importing the package registers every type
// with the default registry.
package samples

import (
	"errors"
	"math"
	"net"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Point is a mutable bean with a zero-argument constructor.
type Point struct {
	X int
	Y int
}

// Translate moves the point
func (p *Point) Translate(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// Distance returns the distance from the origin
func (p *Point) Distance() float64 {
	return math.Hypot(float64(p.X), float64(p.Y))
}

// Money is an immutable value. Amount is in minor units.
type Money struct {
	Amount   int64
	Currency string
}

// NewMoney creates a money value
func NewMoney(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// WithAmount returns a copy with a different amount
func (m Money) WithAmount(amount int64) Money {
	m.Amount = amount
	return m
}

// WithCurrency returns a copy with a different currency
func (m Money) WithCurrency(currency string) Money {
	m.Currency = currency
	return m
}

// ErrInsufficientFunds is returned by Withdraw
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidAmount is returned for non-positive amounts
var ErrInvalidAmount = errors.New("amount must be positive")

// Account is built through its constructor. The id is fixed at creation
// and the password can only be written.
type Account struct {
	id       string
	Owner    string
	Email    string
	password string
	Balance  int64
	Tags     []string
}

// NewAccount creates an account
func NewAccount(id, owner string) *Account {
	return &Account{id: id, Owner: owner}
}

// ID returns the account id
func (a *Account) ID() string {
	return a.id
}

// SetPassword replaces the password
func (a *Account) SetPassword(password string) {
	a.password = password
}

// CheckPassword reports whether password matches
func (a *Account) CheckPassword(password string) bool {
	return a.password != "" && a.password == password
}

// Deposit adds amount to the balance
func (a *Account) Deposit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	a.Balance += amount
	return nil
}

// Withdraw removes amount from the balance
func (a *Account) Withdraw(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > a.Balance {
		return ErrInsufficientFunds
	}
	a.Balance -= amount
	return nil
}

// TLS holds certificate settings of a ServerConfig.
type TLS struct {
	Enabled  bool
	CertFile string
	KeyFile  string
}

// ServerConfig is a nested configuration bean.
type ServerConfig struct {
	ID      uuid.UUID
	Name    string
	Host    string
	Port    int
	Timeout time.Duration
	TLS     *TLS
	Labels  map[string]string
}

// Address returns host:port
func (c *ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

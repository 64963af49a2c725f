// Package account keeps its ledger logic in unexported methods.
package account

import (
	"errors"
	"fmt"
)

var errOverdrawn = errors.New("overdrawn")

// Account is a running balance with a history of movements.
type Account struct {
	owner   string
	balance int
	history []int
}

// Open starts an account for owner.
func Open(owner string) *Account {
	return newAccount(owner, 0)
}

// Transfer moves amount from a to to.
func Transfer(from, to *Account, amount int) error {
	err := from.withdraw(amount + fee(amount))
	if err != nil {
		return fmt.Errorf("transfer from %s: %w", from.owner, err)
	}

	to.deposit(amount)

	return nil
}

func (a *Account) deposit(amount int) {
	a.balance += amount
	a.history = append(a.history, amount)
}

func (a *Account) withdraw(amount int) error {
	if amount > a.balance {
		return fmt.Errorf("%w: %d over %d", errOverdrawn, amount, a.balance)
	}

	a.balance -= amount
	a.history = append(a.history, -amount)

	return nil
}

func (a Account) summary(prefix string, extra ...string) string {
	out := fmt.Sprintf("%s%s: %d", prefix, a.owner, a.balance)
	for _, e := range extra {
		out += " " + e
	}

	return out
}

func newAccount(owner string, opening int) *Account {
	acc := &Account{owner: owner}
	if opening > 0 {
		acc.deposit(opening)
	}

	return acc
}

func fee(amount int) int {
	return amount / 100
}

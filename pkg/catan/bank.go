package catan

import "fmt"

// BankStart is the number of cards of each resource in a fresh bank.
const BankStart = 19

// Bank is the shared resource supply. Counts never go negative.
type Bank struct {
	Resources Resources
}

// NewBank returns a full bank.
func NewBank() Bank {
	var b Bank
	for i := range b.Resources {
		b.Resources[i] = BankStart
	}
	return b
}

// Supply returns the cards of r left in the bank.
func (b *Bank) Supply(r Resource) int {
	if !r.Valid() {
		return 0
	}
	return b.Resources[r]
}

// Withdraw removes n cards of r. It fails with ErrBankDepleted and leaves the
// bank unchanged when fewer than n remain.
func (b *Bank) Withdraw(r Resource, n int) error {
	if n < 0 || !r.Valid() {
		return fmt.Errorf("withdraw %d %s: %w", n, r, ErrInvalidTrade)
	}
	if b.Resources[r] < n {
		return fmt.Errorf("withdraw %d %s with %d left: %w", n, r, b.Resources[r], ErrBankDepleted)
	}
	b.Resources[r] -= n
	return nil
}

// WithdrawAll removes a whole hand, or nothing.
func (b *Bank) WithdrawAll(rs Resources) error {
	if !rs.nonNegative() {
		return fmt.Errorf("withdraw %v: %w", rs, ErrInvalidTrade)
	}
	if !b.Resources.Covers(rs) {
		return fmt.Errorf("withdraw %s: %w", rs, ErrBankDepleted)
	}
	b.Resources = b.Resources.Sub(rs)
	return nil
}

// Deposit returns n cards of r to the bank. Any valid deposit succeeds.
func (b *Bank) Deposit(r Resource, n int) error {
	if n < 0 || !r.Valid() {
		return fmt.Errorf("deposit %d %s: %w", n, r, ErrInvalidTrade)
	}
	b.Resources[r] += n
	return nil
}

// DepositAll returns a whole hand to the bank, or nothing.
func (b *Bank) DepositAll(rs Resources) error {
	if !rs.nonNegative() {
		return fmt.Errorf("deposit %v: %w", rs, ErrInvalidTrade)
	}
	b.Resources = b.Resources.Add(rs)
	return nil
}

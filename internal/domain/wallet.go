package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxTransactions bounds the transaction log; the oldest entries beyond the
// cap are dropped.
const MaxTransactions = 250

// Transaction is one ledger entry. Amount is the signed delta the mutation
// caused to the spendable balance, except for interest deposits which carry
// the staked-side credit.
type Transaction struct {
	ID          string
	Timestamp   time.Time
	Amount      decimal.Decimal
	Kind        TransactionKind
	Description string
}

// WalletState is the closed-economy ledger: spendable balance, staked
// balance, cumulative interest, cumulative passive boost, and a capped
// newest-first transaction log.
//
// Invariants: Balance and StakedBalance never go negative; every successful
// balance or staked mutation appends exactly one transaction.
type WalletState struct {
	Balance         decimal.Decimal
	StakedBalance   decimal.Decimal
	AccruedInterest decimal.Decimal
	PassiveBoost    decimal.Decimal
	Transactions    []Transaction
}

// NewWalletState returns an empty wallet.
func NewWalletState() WalletState {
	return WalletState{
		Balance:         decimal.Zero,
		StakedBalance:   decimal.Zero,
		AccruedInterest: decimal.Zero,
		PassiveBoost:    decimal.Zero,
	}
}

// Earn credits the spendable balance.
func (w *WalletState) Earn(amount decimal.Decimal, description string, now time.Time) {
	if amount.Sign() <= 0 {
		return
	}
	w.Balance = w.Balance.Add(amount)
	w.appendTransaction(amount, TxEarned, description, now)
}

// Spend debits the spendable balance. Returns false with no mutation when
// funds are insufficient.
func (w *WalletState) Spend(amount decimal.Decimal, description string, now time.Time) bool {
	if amount.Sign() <= 0 || amount.GreaterThan(w.Balance) {
		return false
	}
	w.Balance = w.Balance.Sub(amount)
	w.appendTransaction(amount.Neg(), TxSpent, description, now)
	return true
}

// Stake moves funds from the spendable balance into the staked balance.
// The transaction records the balance-side delta.
func (w *WalletState) Stake(amount decimal.Decimal, description string, now time.Time) bool {
	if amount.Sign() <= 0 || amount.GreaterThan(w.Balance) {
		return false
	}
	w.Balance = w.Balance.Sub(amount)
	w.StakedBalance = w.StakedBalance.Add(amount)
	w.appendTransaction(amount.Neg(), TxSpent, description, now)
	return true
}

// Unstake moves funds from the staked balance back to the spendable balance.
func (w *WalletState) Unstake(amount decimal.Decimal, description string, now time.Time) bool {
	if amount.Sign() <= 0 || amount.GreaterThan(w.StakedBalance) {
		return false
	}
	w.StakedBalance = w.StakedBalance.Sub(amount)
	w.Balance = w.Balance.Add(amount)
	w.appendTransaction(amount, TxEarned, description, now)
	return true
}

// ApplyPassiveBoost accumulates the lifetime passive-income bonus. It never
// touches the balances or the transaction log.
func (w *WalletState) ApplyPassiveBoost(delta decimal.Decimal) {
	if delta.Sign() <= 0 {
		return
	}
	w.PassiveBoost = w.PassiveBoost.Add(delta)
}

// DepositInterest compounds interest into the staked balance and tracks the
// cumulative total. The transaction carries the staked-side credit.
func (w *WalletState) DepositInterest(amount decimal.Decimal, description string, now time.Time) {
	if amount.Sign() <= 0 {
		return
	}
	w.StakedBalance = w.StakedBalance.Add(amount)
	w.AccruedInterest = w.AccruedInterest.Add(amount)
	w.appendTransaction(amount, TxEarned, description, now)
}

// RecordMarketTrade applies a signed balance delta from a market trade.
// Returns false with no mutation when a debit exceeds the balance.
func (w *WalletState) RecordMarketTrade(amount decimal.Decimal, description string, now time.Time) bool {
	if amount.Sign() == 0 {
		return false
	}
	if amount.Sign() < 0 && amount.Neg().GreaterThan(w.Balance) {
		return false
	}
	w.Balance = w.Balance.Add(amount)
	w.appendTransaction(amount, TxMarket, description, now)
	return true
}

func (w *WalletState) appendTransaction(amount decimal.Decimal, kind TransactionKind, description string, now time.Time) {
	tx := Transaction{
		ID:          uuid.New().String(),
		Timestamp:   now.UTC().Truncate(time.Second),
		Amount:      amount,
		Kind:        kind,
		Description: description,
	}
	w.Transactions = append([]Transaction{tx}, w.Transactions...)
	if len(w.Transactions) > MaxTransactions {
		w.Transactions = w.Transactions[:MaxTransactions]
	}
}

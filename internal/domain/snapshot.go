package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SnapshotVersion tags every snapshot so future fields can be added without
// breaking old persisted blobs.
const SnapshotVersion = 1

// Snapshot DTOs use optional fields throughout: restore coalesces anything
// missing or malformed to a sane default instead of failing, so a corrupt
// blob degrades to a (possibly reset) valid state.

type TimerConfigSnapshot struct {
	FocusMinutes            *int  `json:"focus_minutes,omitempty"`
	ShortBreakMinutes       *int  `json:"short_break_minutes,omitempty"`
	LongBreakMinutes        *int  `json:"long_break_minutes,omitempty"`
	SessionsBeforeLongBreak *int  `json:"sessions_before_long_break,omitempty"`
	AutoStartBreaks         *bool `json:"auto_start_breaks,omitempty"`
	DailyGoalSessions       *int  `json:"daily_goal_sessions,omitempty"`
}

type SessionRecordSnapshot struct {
	ID              *string `json:"id,omitempty"`
	Timestamp       *string `json:"timestamp,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Category        *string `json:"category,omitempty"`
	CoinsEarned     *string `json:"coins_earned,omitempty"`
}

type TimerSnapshot struct {
	Version          int                     `json:"version"`
	Phase            *string                 `json:"phase,omitempty"`
	RemainingSeconds *int                    `json:"remaining_seconds,omitempty"`
	IsRunning        *bool                   `json:"is_running,omitempty"`
	StartedAt        *string                 `json:"started_at,omitempty"`
	SuspendedAt      *string                 `json:"suspended_at,omitempty"`
	Category         *string                 `json:"category,omitempty"`
	CompletedToday   *int                    `json:"completed_today,omitempty"`
	LastGoalReset    *string                 `json:"last_goal_reset,omitempty"`
	Streak           *int                    `json:"streak,omitempty"`
	TotalCompleted   *int                    `json:"total_completed,omitempty"`
	FocusDays        []string                `json:"focus_days,omitempty"`
	History          []SessionRecordSnapshot `json:"history,omitempty"`
	Config           *TimerConfigSnapshot    `json:"config,omitempty"`
}

type TransactionSnapshot struct {
	ID          *string `json:"id,omitempty"`
	Timestamp   *string `json:"timestamp,omitempty"`
	Amount      *string `json:"amount,omitempty"`
	Kind        *string `json:"kind,omitempty"`
	Description *string `json:"description,omitempty"`
}

type WalletSnapshot struct {
	Version         int                   `json:"version"`
	Balance         *string               `json:"balance,omitempty"`
	StakedBalance   *string               `json:"staked_balance,omitempty"`
	AccruedInterest *string               `json:"accrued_interest,omitempty"`
	PassiveBoost    *string               `json:"passive_boost,omitempty"`
	Transactions    []TransactionSnapshot `json:"transactions,omitempty"`
}

type InstrumentSnapshot struct {
	Symbol       *string `json:"symbol,omitempty"`
	QuantityHeld *string `json:"quantity_held,omitempty"`
	CurrentPrice *string `json:"current_price,omitempty"`
	AverageCost  *string `json:"average_cost,omitempty"`
}

type PricePointSnapshot struct {
	Timestamp *string `json:"timestamp,omitempty"`
	Price     *string `json:"price,omitempty"`
}

type MarketSnapshot struct {
	Version       int                             `json:"version"`
	Instruments   []InstrumentSnapshot            `json:"instruments,omitempty"`
	History       map[string][]PricePointSnapshot `json:"history,omitempty"`
	LastRefreshAt *string                         `json:"last_refresh_at,omitempty"`
}

type BankSnapshot struct {
	Version               int     `json:"version"`
	AnnualInterestRate    *string `json:"annual_interest_rate,omitempty"`
	LastRateUpdateAt      *string `json:"last_rate_update_at,omitempty"`
	LastInterestAppliedAt *string `json:"last_interest_applied_at,omitempty"`
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func timeStr(t time.Time) *string {
	s := t.UTC().Truncate(time.Second).Format(time.RFC3339)
	return &s
}

func optTimeStr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return timeStr(*t)
}

func decStr(d decimal.Decimal) *string {
	s := d.String()
	return &s
}

// ToSnapshot returns an immutable snapshot of the timer state.
func (s TimerState) ToSnapshot() TimerSnapshot {
	cfg := s.Config
	snap := TimerSnapshot{
		Version:          SnapshotVersion,
		Phase:            strPtr(string(s.Phase)),
		RemainingSeconds: intPtr(s.RemainingSeconds),
		IsRunning:        boolPtr(s.IsRunning),
		StartedAt:        optTimeStr(s.StartedAt),
		SuspendedAt:      optTimeStr(s.SuspendedAt),
		Category:         strPtr(s.Category),
		CompletedToday:   intPtr(s.CompletedToday),
		LastGoalReset:    timeStr(s.LastGoalReset),
		Streak:           intPtr(s.Streak),
		TotalCompleted:   intPtr(s.TotalCompleted),
		Config: &TimerConfigSnapshot{
			FocusMinutes:            intPtr(cfg.FocusMinutes),
			ShortBreakMinutes:       intPtr(cfg.ShortBreakMinutes),
			LongBreakMinutes:        intPtr(cfg.LongBreakMinutes),
			SessionsBeforeLongBreak: intPtr(cfg.SessionsBeforeLongBreak),
			AutoStartBreaks:         boolPtr(cfg.AutoStartBreaks),
			DailyGoalSessions:       intPtr(cfg.DailyGoalSessions),
		},
	}
	for _, d := range s.FocusDays {
		snap.FocusDays = append(snap.FocusDays, *timeStr(d))
	}
	for _, rec := range s.History {
		snap.History = append(snap.History, SessionRecordSnapshot{
			ID:              strPtr(rec.ID),
			Timestamp:       timeStr(rec.Timestamp),
			DurationMinutes: intPtr(rec.DurationMinutes),
			Category:        strPtr(rec.Category),
			CoinsEarned:     decStr(rec.CoinsEarned),
		})
	}
	return snap
}

// RestoreTimerState rebuilds a valid timer state from a snapshot. Nil,
// partial, or inconsistent snapshots all yield a usable machine.
func RestoreTimerState(snap *TimerSnapshot) TimerState {
	defaults := DefaultTimerConfig()
	if snap == nil {
		return NewTimerState(defaults)
	}

	cfg := defaults
	if c := snap.Config; c != nil {
		cfg = TimerConfig{
			FocusMinutes:            IntFromPtrWithDefault(defaults.FocusMinutes, c.FocusMinutes),
			ShortBreakMinutes:       IntFromPtrWithDefault(defaults.ShortBreakMinutes, c.ShortBreakMinutes),
			LongBreakMinutes:        IntFromPtrWithDefault(defaults.LongBreakMinutes, c.LongBreakMinutes),
			SessionsBeforeLongBreak: IntFromPtrWithDefault(defaults.SessionsBeforeLongBreak, c.SessionsBeforeLongBreak),
			AutoStartBreaks:         BoolFromPtrWithDefault(defaults.AutoStartBreaks, c.AutoStartBreaks),
			DailyGoalSessions:       IntFromPtrWithDefault(defaults.DailyGoalSessions, c.DailyGoalSessions),
		}.Sanitize()
	}

	st := NewTimerState(cfg)

	phase := StrFromPtrWithDefault(string(PhaseIdle), snap.Phase)
	if ValidSessionPhases[phase] {
		st.Phase = SessionPhase(phase)
	}

	full := cfg.DurationSeconds(st.Phase)
	remaining := IntFromPtrWithDefault(full, snap.RemainingSeconds)
	if remaining < 0 {
		remaining = 0
	}
	if remaining > full {
		remaining = full
	}
	st.RemainingSeconds = remaining

	st.IsRunning = BoolFromPtrWithDefault(false, snap.IsRunning)
	st.StartedAt = TimePtrFromStr(snap.StartedAt)
	st.SuspendedAt = TimePtrFromStr(snap.SuspendedAt)
	st.Category = StrFromPtrWithDefault("general", snap.Category)
	if st.Phase == PhaseIdle || st.StartedAt == nil {
		st.IsRunning = false
	}
	if !st.IsRunning {
		st.StartedAt = nil
	}

	st.CompletedToday = maxInt(0, IntFromPtrWithDefault(0, snap.CompletedToday))
	st.Streak = maxInt(0, IntFromPtrWithDefault(0, snap.Streak))
	st.TotalCompleted = maxInt(0, IntFromPtrWithDefault(0, snap.TotalCompleted))
	st.LastGoalReset = TimeFromPtrWithDefault(time.Time{}, snap.LastGoalReset).Truncate(24 * time.Hour)

	for _, raw := range snap.FocusDays {
		day := TimePtrFromStr(&raw)
		if day == nil {
			continue
		}
		st.addFocusDay(*day)
	}

	for _, rec := range snap.History {
		if len(st.History) >= MaxSessionHistory {
			break
		}
		st.History = append(st.History, SessionRecord{
			ID:              StrFromPtrWithDefault("", rec.ID),
			Timestamp:       TimeFromPtrWithDefault(time.Time{}, rec.Timestamp),
			DurationMinutes: maxInt(0, IntFromPtrWithDefault(0, rec.DurationMinutes)),
			Category:        StrFromPtrWithDefault("general", rec.Category),
			CoinsEarned:     DecimalFromPtrWithDefault(decimal.Zero, rec.CoinsEarned),
		})
	}

	return st
}

// ToSnapshot returns an immutable snapshot of the wallet state.
func (w WalletState) ToSnapshot() WalletSnapshot {
	snap := WalletSnapshot{
		Version:         SnapshotVersion,
		Balance:         decStr(w.Balance),
		StakedBalance:   decStr(w.StakedBalance),
		AccruedInterest: decStr(w.AccruedInterest),
		PassiveBoost:    decStr(w.PassiveBoost),
	}
	for _, tx := range w.Transactions {
		snap.Transactions = append(snap.Transactions, TransactionSnapshot{
			ID:          strPtr(tx.ID),
			Timestamp:   timeStr(tx.Timestamp),
			Amount:      decStr(tx.Amount),
			Kind:        strPtr(string(tx.Kind)),
			Description: strPtr(tx.Description),
		})
	}
	return snap
}

// RestoreWalletState rebuilds a valid wallet from a snapshot. Negative
// balances in a corrupt blob are reset to zero.
func RestoreWalletState(snap *WalletSnapshot) WalletState {
	w := NewWalletState()
	if snap == nil {
		return w
	}
	w.Balance = nonNegative(DecimalFromPtrWithDefault(decimal.Zero, snap.Balance))
	w.StakedBalance = nonNegative(DecimalFromPtrWithDefault(decimal.Zero, snap.StakedBalance))
	w.AccruedInterest = nonNegative(DecimalFromPtrWithDefault(decimal.Zero, snap.AccruedInterest))
	w.PassiveBoost = nonNegative(DecimalFromPtrWithDefault(decimal.Zero, snap.PassiveBoost))

	for _, tx := range snap.Transactions {
		if len(w.Transactions) >= MaxTransactions {
			break
		}
		kind := StrFromPtrWithDefault(string(TxEarned), tx.Kind)
		if !ValidTransactionKinds[kind] {
			kind = string(TxEarned)
		}
		w.Transactions = append(w.Transactions, Transaction{
			ID:          StrFromPtrWithDefault("", tx.ID),
			Timestamp:   TimeFromPtrWithDefault(time.Time{}, tx.Timestamp),
			Amount:      DecimalFromPtrWithDefault(decimal.Zero, tx.Amount),
			Kind:        TransactionKind(kind),
			Description: StrFromPtrWithDefault("", tx.Description),
		})
	}
	return w
}

// ToSnapshot returns an immutable snapshot of the market state.
func (m MarketState) ToSnapshot() MarketSnapshot {
	snap := MarketSnapshot{
		Version:       SnapshotVersion,
		History:       map[string][]PricePointSnapshot{},
		LastRefreshAt: timeStr(m.LastRefreshAt),
	}
	for _, inst := range m.Instruments {
		snap.Instruments = append(snap.Instruments, InstrumentSnapshot{
			Symbol:       strPtr(inst.Symbol),
			QuantityHeld: decStr(inst.QuantityHeld),
			CurrentPrice: decStr(inst.CurrentPrice),
			AverageCost:  decStr(inst.AverageCost),
		})
	}
	for symbol, points := range m.History {
		for _, p := range points {
			snap.History[symbol] = append(snap.History[symbol], PricePointSnapshot{
				Timestamp: timeStr(p.Timestamp),
				Price:     decStr(p.Price),
			})
		}
	}
	return snap
}

// RestoreMarketState rebuilds the market over the fixed instrument set.
// Snapshot entries for unknown symbols are dropped; known instruments keep
// their constant identity and max supply.
func RestoreMarketState(snap *MarketSnapshot) MarketState {
	m := NewMarketState()
	if snap == nil {
		return m
	}
	for _, is := range snap.Instruments {
		symbol := StrFromPtrWithDefault("", is.Symbol)
		inst := m.Instrument(symbol)
		if inst == nil {
			continue
		}
		inst.QuantityHeld = nonNegative(DecimalFromPtrWithDefault(decimal.Zero, is.QuantityHeld))
		inst.AverageCost = nonNegative(DecimalFromPtrWithDefault(decimal.Zero, is.AverageCost))
		price := DecimalFromPtrWithDefault(inst.CurrentPrice, is.CurrentPrice)
		if price.Sign() > 0 {
			inst.CurrentPrice = price
		}
	}
	for symbol, points := range snap.History {
		if m.Instrument(symbol) == nil {
			continue
		}
		for _, p := range points {
			price := DecimalFromPtrWithDefault(decimal.Zero, p.Price)
			if price.Sign() <= 0 {
				continue
			}
			m.AppendPrice(symbol, price, TimeFromPtrWithDefault(time.Time{}, p.Timestamp))
		}
	}
	m.LastRefreshAt = TimeFromPtrWithDefault(time.Time{}, snap.LastRefreshAt)
	return m
}

// ToSnapshot returns an immutable snapshot of the bank state.
func (b BankState) ToSnapshot() BankSnapshot {
	return BankSnapshot{
		Version:               SnapshotVersion,
		AnnualInterestRate:    decStr(b.AnnualInterestRate),
		LastRateUpdateAt:      timeStr(b.LastRateUpdateAt),
		LastInterestAppliedAt: timeStr(b.LastInterestAppliedAt),
	}
}

// RestoreBankState rebuilds a valid bank from a snapshot, clamping the rate
// into its allowed band. now seeds the cadence clocks for fresh state.
func RestoreBankState(snap *BankSnapshot, now time.Time) BankState {
	b := NewBankState(now)
	if snap == nil {
		return b
	}
	b.AnnualInterestRate = ClampRate(DecimalFromPtrWithDefault(b.AnnualInterestRate, snap.AnnualInterestRate))
	b.LastRateUpdateAt = TimeFromPtrWithDefault(b.LastRateUpdateAt, snap.LastRateUpdateAt)
	b.LastInterestAppliedAt = TimeFromPtrWithDefault(b.LastInterestAppliedAt, snap.LastInterestAppliedAt)
	return b
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.Sign() < 0 {
		return decimal.Zero
	}
	return d
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

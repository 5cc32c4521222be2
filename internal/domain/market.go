package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxPriceHistory bounds each instrument's rolling price history.
const MaxPriceHistory = 60

// MinInstrumentPrice is the floor a daily random walk can never go below.
var MinInstrumentPrice = decimal.NewFromFloat(0.2)

// Instrument is one tradable virtual asset.
//
// Invariant: AverageCost changes only on a successful buy; MaxSupply is
// display-only and never enters trade arithmetic.
type Instrument struct {
	ID           string
	Name         string
	Symbol       string
	Icon         string
	QuantityHeld decimal.Decimal
	CurrentPrice decimal.Decimal
	AverageCost  decimal.Decimal
	MaxSupply    decimal.Decimal
}

// PricePoint is one entry in an instrument's price history.
type PricePoint struct {
	Timestamp time.Time
	Price     decimal.Decimal
}

// MarketState holds the fixed instrument set, per-symbol price history, and
// the day of the last price refresh.
type MarketState struct {
	Instruments   []Instrument
	History       map[string][]PricePoint
	LastRefreshAt time.Time
}

// DefaultInstruments returns the fixed tradable set with seed prices.
func DefaultInstruments() []Instrument {
	return []Instrument{
		{
			ID: "leaf", Name: "Leaf", Symbol: "LEAF", Icon: "leaf.fill",
			QuantityHeld: decimal.Zero,
			CurrentPrice: decimal.NewFromFloat(1.0),
			AverageCost:  decimal.Zero,
			MaxSupply:    decimal.NewFromInt(1_000_000),
		},
		{
			ID: "acorn", Name: "Acorn", Symbol: "ACRN", Icon: "circle.grid.hex.fill",
			QuantityHeld: decimal.Zero,
			CurrentPrice: decimal.NewFromFloat(4.5),
			AverageCost:  decimal.Zero,
			MaxSupply:    decimal.NewFromInt(250_000),
		},
		{
			ID: "dew", Name: "Dewdrop", Symbol: "DEW", Icon: "drop.fill",
			QuantityHeld: decimal.Zero,
			CurrentPrice: decimal.NewFromFloat(0.8),
			AverageCost:  decimal.Zero,
			MaxSupply:    decimal.NewFromInt(2_000_000),
		},
		{
			ID: "petal", Name: "Petal", Symbol: "PTL", Icon: "camera.macro",
			QuantityHeld: decimal.Zero,
			CurrentPrice: decimal.NewFromFloat(12.0),
			AverageCost:  decimal.Zero,
			MaxSupply:    decimal.NewFromInt(50_000),
		},
	}
}

// NewMarketState returns a market over the default instrument set.
func NewMarketState() MarketState {
	return MarketState{
		Instruments: DefaultInstruments(),
		History:     map[string][]PricePoint{},
	}
}

// Instrument returns a pointer to the instrument with the given symbol,
// or nil when the symbol is unknown.
func (m *MarketState) Instrument(symbol string) *Instrument {
	for i := range m.Instruments {
		if m.Instruments[i].Symbol == symbol {
			return &m.Instruments[i]
		}
	}
	return nil
}

// AppendPrice records a new price point for symbol, dropping the oldest
// entries beyond the cap.
func (m *MarketState) AppendPrice(symbol string, price decimal.Decimal, now time.Time) {
	if m.History == nil {
		m.History = map[string][]PricePoint{}
	}
	points := append(m.History[symbol], PricePoint{
		Timestamp: now.UTC().Truncate(time.Second),
		Price:     price,
	})
	if len(points) > MaxPriceHistory {
		points = points[len(points)-MaxPriceHistory:]
	}
	m.History[symbol] = points
}

// ApplyBuy converts spent currency into quantity at the current price and
// recomputes the weighted average cost.
func (inst *Instrument) ApplyBuy(spent decimal.Decimal) {
	bought := spent.Div(inst.CurrentPrice)
	newQuantity := inst.QuantityHeld.Add(bought)
	inst.AverageCost = inst.AverageCost.Mul(inst.QuantityHeld).Add(spent).Div(newQuantity)
	inst.QuantityHeld = newQuantity
}

// ApplySell removes quantity at the current price and returns the proceeds.
// The average cost is deliberately left unchanged.
func (inst *Instrument) ApplySell(quantity decimal.Decimal) decimal.Decimal {
	inst.QuantityHeld = inst.QuantityHeld.Sub(quantity)
	return quantity.Mul(inst.CurrentPrice)
}

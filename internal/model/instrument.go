package model

import "time"

type Instrument struct {
	ID         int64  `json:"id"`
	Symbol     string `json:"symbol"`
	BaseAsset  string `json:"base_asset"`
	QuoteAsset string `json:"quote_asset"`
	IsActive   bool   `json:"is_active"`
}

// Catalog is the loaded trading pair set, keyed by symbol. It is replaced
// wholesale on reload, never patched per field.
type Catalog struct {
	bySymbol map[string]Instrument
}

func NewCatalog(instruments []Instrument) Catalog {
	bySymbol := make(map[string]Instrument, len(instruments))
	for _, i := range instruments {
		bySymbol[i.Symbol] = i
	}
	return Catalog{bySymbol: bySymbol}
}

func (c Catalog) Lookup(symbol string) (Instrument, bool) {
	i, ok := c.bySymbol[symbol]
	return i, ok
}

func (c Catalog) Len() int {
	return len(c.bySymbol)
}

// PriceQuote is the latest known price for an instrument in the canonical
// unit. Quotes never expire; ObservedAt lets callers treat old ones as stale
// for display.
type PriceQuote struct {
	InstrumentID int64
	Symbol       string
	Price        float64
	ObservedAt   time.Time
}

package domain

import (
	"github.com/shopspring/decimal"
)

// PairKey identifies a source/target currency combination, e.g. "USD_EUR".
type PairKey string

const pairKeySeparator = "_"

// NewPairKey joins the codes as given; callers own case normalization.
func NewPairKey(source, target string) PairKey {
	return PairKey(source + pairKeySeparator + target)
}

type RatePair struct {
	Source string
	Target string
}

func (p RatePair) Key() PairKey {
	return NewPairKey(p.Source, p.Target)
}

func (p RatePair) Reversed() RatePair {
	return RatePair{
		Source: p.Target,
		Target: p.Source,
	}
}

type Conversion struct {
	Source    string
	Target    string
	Amount    decimal.Decimal
	Rate      float64
	Converted decimal.Decimal
}

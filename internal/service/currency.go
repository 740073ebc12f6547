package service

// ToForeign converts a base-currency amount with rate base units per foreign
// unit. A zero rate yields 0 instead of failing.
func ToForeign(amount, rate float64) float64 {
	if rate == 0 {
		return 0
	}
	return amount / rate
}

// RateSource supplies the current exchange rate.
type RateSource interface {
	GetRate() float64
}

// CurrencyConverter converts with the rate stored in configuration.
type CurrencyConverter struct {
	rates RateSource
}

func NewCurrencyConverter(rates RateSource) *CurrencyConverter {
	return &CurrencyConverter{rates: rates}
}

// Convert returns the foreign amount together with the rate used, so callers
// can print both.
func (c *CurrencyConverter) Convert(amount float64) (foreign, rate float64) {
	rate = c.rates.GetRate()
	return ToForeign(amount, rate), rate
}

func (c *CurrencyConverter) Rate() float64 {
	return c.rates.GetRate()
}

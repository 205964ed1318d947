package checkout

import "github.com/shopspring/decimal"

// CurrencyInfo describes the display currency for a shipping country. Rates
// are fixed conversion factors from the base currency, supplied by the
// static catalog; they are not live market rates.
type CurrencyInfo struct {
	Code   string
	Symbol string
	Rate   decimal.Decimal
}

var countryCurrencies = map[string]CurrencyInfo{
	"India":                {Code: "INR", Symbol: "₹", Rate: decimal.NewFromInt(1)},
	"United States":        {Code: "USD", Symbol: "$", Rate: decimal.NewFromFloat(0.012)},
	"United Kingdom":       {Code: "GBP", Symbol: "£", Rate: decimal.NewFromFloat(0.0097)},
	"European Union":       {Code: "EUR", Symbol: "€", Rate: decimal.NewFromFloat(0.011)},
	"Canada":               {Code: "CAD", Symbol: "CA$", Rate: decimal.NewFromFloat(0.016)},
	"Australia":            {Code: "AUD", Symbol: "A$", Rate: decimal.NewFromFloat(0.018)},
	"Japan":                {Code: "JPY", Symbol: "¥", Rate: decimal.NewFromFloat(1.67)},
	"China":                {Code: "CNY", Symbol: "¥", Rate: decimal.NewFromFloat(0.088)},
	"Singapore":            {Code: "SGD", Symbol: "S$", Rate: decimal.NewFromFloat(0.016)},
	"United Arab Emirates": {Code: "AED", Symbol: "د.إ", Rate: decimal.NewFromFloat(0.044)},
	"Switzerland":          {Code: "CHF", Symbol: "CHF", Rate: decimal.NewFromFloat(0.011)},
	"Russia":               {Code: "RUB", Symbol: "₽", Rate: decimal.NewFromFloat(0.96)},
	"South Korea":          {Code: "KRW", Symbol: "₩", Rate: decimal.NewFromFloat(15.68)},
	"Brazil":               {Code: "BRL", Symbol: "R$", Rate: decimal.NewFromFloat(0.059)},
	"South Africa":         {Code: "ZAR", Symbol: "R", Rate: decimal.NewFromFloat(0.22)},
}

// CurrencyForCountry resolves the display currency for a shipping country.
// Unknown countries fall back to the base currency rather than erroring;
// the breakdown is always re-derivable, so this is a resilience choice,
// not a data-integrity risk.
func CurrencyForCountry(country, baseCurrency string) CurrencyInfo {
	if info, ok := countryCurrencies[country]; ok {
		return info
	}
	return CurrencyInfo{Code: baseCurrency, Symbol: "₹", Rate: decimal.NewFromInt(1)}
}

// SymbolForCurrency finds the display symbol for a currency code, falling
// back to the base currency symbol.
func SymbolForCurrency(code string) string {
	for _, info := range countryCurrencies {
		if info.Code == code {
			return info.Symbol
		}
	}
	return "₹"
}

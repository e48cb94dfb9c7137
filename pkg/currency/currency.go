// Package currency holds the static ISO 4217 reference table used to
// validate currency codes before any upstream call is made.
package currency

import "regexp"

// DefaultCurrency is the fallback currency code (USD)
const DefaultCurrency = "USD"

var codeFormat = regexp.MustCompile(`^[A-Z]{3}$`)

// IsValidFormat returns true if the code is a well-formed ISO 4217 currency
// code (3 uppercase letters). Callers are expected to upper-case before calling.
func IsValidFormat(code string) bool {
	return codeFormat.MatchString(code)
}

// IsValidCode returns true if the code is present in the ISO 4217 reference
// table. The table is fixed at process start and never expires.
func IsValidCode(code string) bool {
	_, ok := isoCodes[code]
	return ok
}

// Codes returns every code in the reference table. Order is unspecified.
func Codes() []string {
	out := make([]string, 0, len(isoCodes))
	for code := range isoCodes {
		out = append(out, code)
	}
	return out
}

// isoCodes is the ISO 4217 active-code table.
var isoCodes = map[string]struct{}{
	"AED": {}, "AFN": {}, "ALL": {}, "AMD": {}, "ANG": {}, "AOA": {}, "ARS": {},
	"AUD": {}, "AWG": {}, "AZN": {}, "BAM": {}, "BBD": {}, "BDT": {}, "BGN": {},
	"BHD": {}, "BIF": {}, "BMD": {}, "BND": {}, "BOB": {}, "BRL": {}, "BSD": {},
	"BTN": {}, "BWP": {}, "BYN": {}, "BZD": {}, "CAD": {}, "CDF": {}, "CHF": {},
	"CLP": {}, "CNY": {}, "COP": {}, "CRC": {}, "CUC": {}, "CUP": {}, "CVE": {},
	"CZK": {}, "DJF": {}, "DKK": {}, "DOP": {}, "DZD": {}, "EGP": {}, "ERN": {},
	"ETB": {}, "EUR": {}, "FJD": {}, "FKP": {}, "GBP": {}, "GEL": {}, "GGP": {},
	"GHS": {}, "GIP": {}, "GMD": {}, "GNF": {}, "GTQ": {}, "GYD": {}, "HKD": {},
	"HNL": {}, "HRK": {}, "HTG": {}, "HUF": {}, "IDR": {}, "ILS": {}, "IMP": {},
	"INR": {}, "IQD": {}, "IRR": {}, "ISK": {}, "JEP": {}, "JMD": {}, "JOD": {},
	"JPY": {}, "KES": {}, "KGS": {}, "KHR": {}, "KMF": {}, "KPW": {}, "KRW": {},
	"KWD": {}, "KYD": {}, "KZT": {}, "LAK": {}, "LBP": {}, "LKR": {}, "LRD": {},
	"LSL": {}, "LYD": {}, "MAD": {}, "MDL": {}, "MGA": {}, "MKD": {}, "MMK": {},
	"MNT": {}, "MOP": {}, "MRU": {}, "MUR": {}, "MVR": {}, "MWK": {}, "MXN": {},
	"MYR": {}, "MZN": {}, "NAD": {}, "NGN": {}, "NIO": {}, "NOK": {}, "NPR": {},
	"NZD": {}, "OMR": {}, "PAB": {}, "PEN": {}, "PGK": {}, "PHP": {}, "PKR": {},
	"PLN": {}, "PYG": {}, "QAR": {}, "RON": {}, "RSD": {}, "RUB": {}, "RWF": {},
	"SAR": {}, "SBD": {}, "SCR": {}, "SDG": {}, "SEK": {}, "SGD": {}, "SHP": {},
	"SLE": {}, "SLL": {}, "SOS": {}, "SRD": {}, "SSP": {}, "STN": {}, "SVC": {},
	"SYP": {}, "SZL": {}, "THB": {}, "TJS": {}, "TMT": {}, "TND": {}, "TOP": {},
	"TRY": {}, "TTD": {}, "TWD": {}, "TZS": {}, "UAH": {}, "UGX": {}, "USD": {},
	"UYU": {}, "UZS": {}, "VES": {}, "VND": {}, "VUV": {}, "WST": {}, "XAF": {},
	"XAG": {}, "XAU": {}, "XCD": {}, "XDR": {}, "XOF": {}, "XPD": {}, "XPF": {},
	"XPT": {}, "YER": {}, "ZAR": {}, "ZMW": {}, "ZWL": {},
}

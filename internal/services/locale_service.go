package services

import "strings"

// LocaleServiceInterface resolves free-text destinations to ISO country
// codes and local currencies. The tables are a curated data asset, not
// pipeline logic; unresolvable destinations fall back to the configured
// default currency.
type LocaleServiceInterface interface {
	CountryCode(destination string) string
	CurrencyForCountry(countryCode string) string
	LocalCurrency(destination, countryCodeHint string) string
}

type LocaleService struct {
	fallbackCurrency string
}

func NewLocaleService(fallbackCurrency string) LocaleServiceInterface {
	if fallbackCurrency == "" {
		fallbackCurrency = "USD"
	}
	return &LocaleService{fallbackCurrency: fallbackCurrency}
}

func (l *LocaleService) CountryCode(destination string) string {
	return cityToCountry[strings.ToLower(strings.TrimSpace(destination))]
}

func (l *LocaleService) CurrencyForCountry(countryCode string) string {
	if ccy, ok := countryToCurrency[strings.ToUpper(countryCode)]; ok {
		return ccy
	}
	return l.fallbackCurrency
}

// LocalCurrency prefers a geocoded country-code hint over the curated
// city table.
func (l *LocaleService) LocalCurrency(destination, countryCodeHint string) string {
	cc := strings.ToUpper(strings.TrimSpace(countryCodeHint))
	if cc == "" {
		cc = l.CountryCode(destination)
	}
	return l.CurrencyForCountry(cc)
}

// Curated destination heuristics for common city/country spellings.
var cityToCountry = map[string]string{
	// Portugal
	"lisbon": "PT", "porto": "PT", "portugal": "PT", "algarve": "PT",
	// Spain
	"barcelona": "ES", "madrid": "ES", "sevilla": "ES", "seville": "ES", "valencia": "ES", "spain": "ES",
	// Germany
	"berlin": "DE", "munich": "DE", "frankfurt": "DE", "germany": "DE",
	// France
	"paris": "FR", "lyon": "FR", "nice": "FR", "france": "FR",
	// Italy
	"rome": "IT", "milan": "IT", "venice": "IT", "florence": "IT", "italy": "IT",
	// UK
	"london": "GB", "manchester": "GB", "edinburgh": "GB", "uk": "GB", "united kingdom": "GB", "england": "GB",
	// Netherlands
	"amsterdam": "NL", "rotterdam": "NL", "netherlands": "NL",
	// Central / northern Europe
	"vienna": "AT", "austria": "AT",
	"prague": "CZ", "czech republic": "CZ",
	"budapest": "HU", "hungary": "HU",
	"athens": "GR", "greece": "GR",
	"zurich": "CH", "switzerland": "CH",
	"oslo": "NO", "norway": "NO",
	"stockholm": "SE", "sweden": "SE",
	"copenhagen": "DK", "denmark": "DK",
	"dublin": "IE", "ireland": "IE",
	"reykjavik": "IS", "iceland": "IS",
	"warsaw": "PL", "krakow": "PL", "poland": "PL",
	"brussels": "BE", "belgium": "BE",
	// Americas
	"new york": "US", "los angeles": "US", "san francisco": "US", "chicago": "US", "usa": "US", "united states": "US",
	"toronto": "CA", "vancouver": "CA", "montreal": "CA", "canada": "CA",
	"mexico city": "MX", "cancun": "MX", "mexico": "MX",
	"rio de janeiro": "BR", "sao paulo": "BR", "brazil": "BR",
	"buenos aires": "AR", "argentina": "AR",
	"lima": "PE", "peru": "PE",
	"bogota": "CO", "colombia": "CO",
	"santiago": "CL", "chile": "CL",
	// Asia / Pacific
	"tokyo": "JP", "kyoto": "JP", "osaka": "JP", "japan": "JP",
	"seoul": "KR", "south korea": "KR",
	"beijing": "CN", "shanghai": "CN", "china": "CN",
	"hong kong": "HK",
	"taipei": "TW", "taiwan": "TW",
	"bangkok": "TH", "chiang mai": "TH", "thailand": "TH",
	"hanoi": "VN", "ho chi minh city": "VN", "vietnam": "VN",
	"singapore": "SG",
	"kuala lumpur": "MY", "malaysia": "MY",
	"bali": "ID", "jakarta": "ID", "indonesia": "ID",
	"manila": "PH", "philippines": "PH",
	"delhi": "IN", "mumbai": "IN", "india": "IN",
	"dubai": "AE", "abu dhabi": "AE",
	"tel aviv": "IL", "jerusalem": "IL", "israel": "IL",
	"istanbul": "TR", "turkey": "TR",
	"sydney": "AU", "melbourne": "AU", "australia": "AU",
	"auckland": "NZ", "new zealand": "NZ",
	// Africa
	"cairo": "EG", "egypt": "EG",
	"marrakech": "MA", "casablanca": "MA", "morocco": "MA",
	"cape town": "ZA", "johannesburg": "ZA", "south africa": "ZA",
	"nairobi": "KE", "kenya": "KE",
}

// ISO country code to local currency, near-global coverage.
var countryToCurrency = map[string]string{
	// Europe
	"GB": "GBP", "IE": "EUR", "FR": "EUR", "PT": "EUR", "ES": "EUR", "DE": "EUR",
	"IT": "EUR", "NL": "EUR", "BE": "EUR", "AT": "EUR", "CH": "CHF", "DK": "DKK",
	"SE": "SEK", "NO": "NOK", "PL": "PLN", "CZ": "CZK", "HU": "HUF", "GR": "EUR",
	"FI": "EUR", "EE": "EUR", "LV": "EUR", "LT": "EUR", "SK": "EUR", "SI": "EUR",
	"HR": "EUR", "RO": "RON", "BG": "BGN", "RS": "RSD", "ME": "EUR", "MK": "MKD",
	"AL": "ALL", "BA": "BAM", "MD": "MDL", "UA": "UAH", "BY": "BYN", "RU": "RUB",
	"IS": "ISK", "TR": "TRY", "CY": "EUR", "MT": "EUR", "LU": "EUR", "MC": "EUR",
	// North America
	"US": "USD", "CA": "CAD", "MX": "MXN", "GT": "GTQ", "BZ": "BZD", "SV": "USD",
	"HN": "HNL", "NI": "NIO", "CR": "CRC", "PA": "PAB", "CU": "CUP", "JM": "JMD",
	"HT": "HTG", "DO": "DOP", "PR": "USD", "BS": "BSD", "BB": "BBD", "TT": "TTD",
	// South America
	"BR": "BRL", "AR": "ARS", "CL": "CLP", "PE": "PEN", "CO": "COP", "VE": "VES",
	"EC": "USD", "BO": "BOB", "PY": "PYG", "UY": "UYU", "SR": "SRD", "GY": "GYD",
	"FK": "FKP", "GF": "EUR",
	// Asia
	"CN": "CNY", "JP": "JPY", "KR": "KRW", "IN": "INR", "TH": "THB", "VN": "VND",
	"PH": "PHP", "ID": "IDR", "MY": "MYR", "SG": "SGD", "HK": "HKD", "TW": "TWD",
	"MO": "MOP", "KH": "KHR", "LA": "LAK", "MM": "MMK", "BD": "BDT", "LK": "LKR",
	"NP": "NPR", "BT": "BTN", "MV": "MVR", "AF": "AFN", "PK": "PKR", "IR": "IRR",
	"IQ": "IQD", "SY": "SYP", "LB": "LBP", "JO": "JOD", "IL": "ILS", "PS": "ILS",
	"SA": "SAR", "AE": "AED", "QA": "QAR", "BH": "BHD", "KW": "KWD", "OM": "OMR",
	"YE": "YER", "UZ": "UZS", "KZ": "KZT", "KG": "KGS", "TJ": "TJS", "TM": "TMT",
	"MN": "MNT", "KP": "KPW",
	// Africa
	"EG": "EGP", "LY": "LYD", "TN": "TND", "DZ": "DZD", "MA": "MAD", "SD": "SDG",
	"SS": "SSP", "ET": "ETB", "ER": "ERN", "DJ": "DJF", "SO": "SOS", "KE": "KES",
	"UG": "UGX", "TZ": "TZS", "RW": "RWF", "BI": "BIF", "MG": "MGA", "MU": "MUR",
	"SC": "SCR", "KM": "KMF", "MW": "MWK", "ZM": "ZMW", "ZW": "ZWL", "BW": "BWP",
	"NA": "NAD", "ZA": "ZAR", "LS": "LSL", "SZ": "SZL", "AO": "AOA", "MZ": "MZN",
	"CD": "CDF", "CG": "XAF", "CF": "XAF", "CM": "XAF", "TD": "XAF", "GQ": "XAF",
	"GA": "XAF", "ST": "STN", "GH": "GHS", "TG": "XOF", "BJ": "XOF", "NE": "XOF",
	"BF": "XOF", "ML": "XOF", "SN": "XOF", "GN": "GNF", "SL": "SLL", "LR": "LRD",
	"CI": "XOF", "GM": "GMD", "GW": "XOF", "CV": "CVE", "MR": "MRU", "NG": "NGN",
	// Oceania
	"AU": "AUD", "NZ": "NZD", "FJ": "FJD", "PG": "PGK", "SB": "SBD", "VU": "VUV",
	"NC": "XPF", "PF": "XPF", "WS": "WST", "TO": "TOP", "KI": "AUD", "TV": "AUD",
	"NR": "AUD", "PW": "USD", "FM": "USD", "MH": "USD", "GU": "USD", "AS": "USD",
	"MP": "USD",
}

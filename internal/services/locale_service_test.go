package services

import "testing"

func TestLocalCurrencyPrefersGeocodedHint(t *testing.T) {
	svc := NewLocaleService("")

	// hint wins even when the city table disagrees with the spelling
	if got := svc.LocalCurrency("Lisboa", "PT"); got != "EUR" {
		t.Errorf("LocalCurrency(Lisboa, PT) = %s, want EUR", got)
	}
	// no hint: curated city table
	if got := svc.LocalCurrency("tokyo", ""); got != "JPY" {
		t.Errorf("LocalCurrency(tokyo) = %s, want JPY", got)
	}
	if got := svc.LocalCurrency("London", ""); got != "GBP" {
		t.Errorf("LocalCurrency(London) = %s, want GBP", got)
	}
}

func TestLocalCurrencyFallback(t *testing.T) {
	if got := NewLocaleService("").LocalCurrency("Atlantis", ""); got != "USD" {
		t.Errorf("unknown destination = %s, want default USD", got)
	}
	if got := NewLocaleService("EUR").LocalCurrency("Atlantis", ""); got != "EUR" {
		t.Errorf("configured fallback ignored, got %s", got)
	}
}

func TestCountryCodeNormalizesInput(t *testing.T) {
	svc := NewLocaleService("")
	if got := svc.CountryCode("  BARCELONA  "); got != "ES" {
		t.Errorf("CountryCode = %q, want ES", got)
	}
	if got := svc.CountryCode("nowhere"); got != "" {
		t.Errorf("unknown city = %q, want empty", got)
	}
}

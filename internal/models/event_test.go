package models

import (
	"testing"
	"time"
)

func TestIdentityDeterministic(t *testing.T) {
	loc, _ := time.LoadLocation("America/New_York")
	at := time.Date(2026, 8, 28, 8, 30, 0, 0, loc)

	a := Identity(at, "USD", "Non-Farm Payrolls")
	b := Identity(at, "USD", "Non-Farm Payrolls")
	if a != b {
		t.Fatalf("identity not stable: %q vs %q", a, b)
	}
	if a != "2026-08-28t08:30:00-04:00|usd|non-farm payrolls" {
		t.Fatalf("unexpected identity %q", a)
	}
}

func TestIdentityNormalizesCasing(t *testing.T) {
	at := time.Date(2026, 8, 28, 13, 30, 0, 0, time.UTC)
	if Identity(at, "usd", "CPI y/y") != Identity(at, "USD", "cpi Y/Y") {
		t.Fatalf("casing variants must collapse to one identity")
	}
}

func TestIdentityDistinguishesFields(t *testing.T) {
	at := time.Date(2026, 8, 28, 13, 30, 0, 0, time.UTC)
	base := Identity(at, "USD", "CPI y/y")
	if Identity(at.Add(time.Minute), "USD", "CPI y/y") == base {
		t.Fatalf("instant must affect identity")
	}
	if Identity(at, "GBP", "CPI y/y") == base {
		t.Fatalf("currency must affect identity")
	}
	if Identity(at, "USD", "CPI m/m") == base {
		t.Fatalf("title must affect identity")
	}
}

func TestNewEventNormalization(t *testing.T) {
	at := time.Date(2026, 8, 28, 13, 30, 0, 0, time.UTC)
	ev := NewEvent(at, " gbp ", "  CPI y/y ", "", "0.2%")
	if ev.Currency != "GBP" {
		t.Fatalf("currency = %q, want GBP", ev.Currency)
	}
	if ev.Title != "CPI y/y" {
		t.Fatalf("title = %q", ev.Title)
	}
	if ev.Forecast != ValuePlaceholder {
		t.Fatalf("empty forecast should render placeholder, got %q", ev.Forecast)
	}
	if ev.Previous != "0.2%" {
		t.Fatalf("previous = %q", ev.Previous)
	}
	if ev.Identity != Identity(at, "GBP", "CPI y/y") {
		t.Fatalf("identity mismatch: %q", ev.Identity)
	}
}

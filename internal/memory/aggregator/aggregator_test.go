package aggregator

import (
	"testing"

	"mortgagemind/internal/models"
)

func facts(texts ...string) []models.Fact {
	out := make([]models.Fact, 0, len(texts))
	for _, text := range texts {
		out = append(out, models.Fact{Text: text})
	}
	return out
}

func TestAggregateEmptySequence(t *testing.T) {
	profile := Aggregate("user-1", nil)

	if profile.UserID != "user-1" {
		t.Errorf("expected userId 'user-1', got %q", profile.UserID)
	}
	if profile.IsReturningUser {
		t.Error("expected isReturningUser to be false")
	}
	if profile.UserName != "" {
		t.Errorf("expected no userName, got %q", profile.UserName)
	}
	if len(profile.MortgagePreferences) != 0 {
		t.Errorf("expected empty preferences, got %v", profile.MortgagePreferences)
	}
	if profile.Facts == nil || len(profile.Facts) != 0 {
		t.Errorf("expected empty fact slice, got %v", profile.Facts)
	}
}

func TestAggregateNameFirstMatchWins(t *testing.T) {
	profile := Aggregate("user-1", facts("name is bob", "name is carol"))

	if profile.UserName != "Bob" {
		t.Errorf("expected userName 'Bob', got %q", profile.UserName)
	}
}

func TestAggregatePreferenceLastWriteWins(t *testing.T) {
	profile := Aggregate("user-1", facts("budget is £100,000", "budget is £200,000"))

	if got := profile.MortgagePreferences[models.PrefBudget]; got != "200000" {
		t.Errorf("expected budget '200000', got %q", got)
	}
}

func TestAggregatePreferenceKeysAreIndependent(t *testing.T) {
	profile := Aggregate("user-1", facts(
		"budget is £250,000",
		"wants to live in Leeds",
	))

	if got := profile.MortgagePreferences[models.PrefBudget]; got != "250000" {
		t.Errorf("expected earlier budget to survive, got %q", got)
	}
	if got := profile.MortgagePreferences[models.PrefLocation]; got != "Leeds" {
		t.Errorf("expected location 'Leeds', got %q", got)
	}
}

func TestAggregateReturningUserAndTraceability(t *testing.T) {
	in := facts("name is alice", "is a first-time buyer")
	profile := Aggregate("user-1", in)

	if !profile.IsReturningUser {
		t.Error("expected isReturningUser to be true")
	}
	if len(profile.Facts) != len(in) {
		t.Errorf("expected rawFacts to be retained, got %d of %d", len(profile.Facts), len(in))
	}
	if got := profile.MortgagePreferences[models.PrefFirstTimeBuyer]; got != "true" {
		t.Errorf("expected firstTimeBuyer 'true', got %q", got)
	}
}

func TestAggregateUnrecognizedTextAddsNoKeys(t *testing.T) {
	profile := Aggregate("user-1", facts("enjoys long walks on the beach"))

	if len(profile.MortgagePreferences) != 0 {
		t.Errorf("expected no preference keys, got %v", profile.MortgagePreferences)
	}
	if !profile.IsReturningUser {
		t.Error("expected isReturningUser true for non-empty fact set")
	}
}

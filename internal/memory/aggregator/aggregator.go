// Package aggregator folds a sequence of extracted facts into one
// consolidated user profile.
package aggregator

import (
	"mortgagemind/internal/memory/extractor"
	"mortgagemind/internal/models"
)

// Aggregate derives a UserProfile from the facts the store returned for
// userID, in the store's relevance order. The display name is taken from
// the first fact that contributes one; each preference key is taken from
// the last fact that contributes it, independently per key. An empty fact
// sequence yields the deterministic empty profile, never an error.
func Aggregate(userID string, facts []models.Fact) *models.UserProfile {
	profile := models.EmptyProfile(userID)
	if len(facts) == 0 {
		return profile
	}

	profile.IsReturningUser = true
	profile.Facts = facts

	for _, fact := range facts {
		ex := extractor.Extract(fact.Text)

		if profile.UserName == "" && ex.Name != "" {
			profile.UserName = ex.Name
		}
		if ex.Budget != "" {
			profile.MortgagePreferences[models.PrefBudget] = ex.Budget
		}
		if ex.FirstTimeBuyer {
			profile.MortgagePreferences[models.PrefFirstTimeBuyer] = "true"
		}
		if ex.PropertyType != "" {
			profile.MortgagePreferences[models.PrefPropertyType] = ex.PropertyType
		}
		if ex.Location != "" {
			profile.MortgagePreferences[models.PrefLocation] = ex.Location
		}
	}

	return profile
}

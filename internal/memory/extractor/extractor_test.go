package extractor

import "testing"

func TestExtractNoTriggers(t *testing.T) {
	ex := Extract("the weather was nice on Tuesday")
	if ex != (Extraction{}) {
		t.Errorf("expected empty extraction, got %+v", ex)
	}
}

func TestExtractName(t *testing.T) {
	ex := Extract("name is alice")
	if ex.Name != "Alice" {
		t.Errorf("expected name 'Alice', got %q", ex.Name)
	}

	ex = Extract("The user is called bob")
	if ex.Name != "Bob" {
		t.Errorf("expected name 'Bob', got %q", ex.Name)
	}
}

func TestExtractNamePatternOrder(t *testing.T) {
	// "name is" is tried before "called", regardless of position in the
	// text.
	ex := Extract("called bob, but his name is carol")
	if ex.Name != "Carol" {
		t.Errorf("expected name 'Carol', got %q", ex.Name)
	}
}

func TestExtractNameTitleCasing(t *testing.T) {
	// Matching runs over the lower-cased fact, so shouted names come out
	// title-cased.
	ex := Extract("name is ALICE")
	if ex.Name != "Alice" {
		t.Errorf("expected name 'Alice', got %q", ex.Name)
	}
}

func TestExtractMultiCategory(t *testing.T) {
	ex := Extract("Budget is £350,000 for a first-time buyer flat in London")

	if ex.Budget != "350000" {
		t.Errorf("expected budget '350000', got %q", ex.Budget)
	}
	if !ex.FirstTimeBuyer {
		t.Error("expected firstTimeBuyer to be set")
	}
	if ex.PropertyType != "flat" {
		t.Errorf("expected propertyType 'flat', got %q", ex.PropertyType)
	}
	if ex.Location != "London" {
		t.Errorf("expected location 'London', got %q", ex.Location)
	}
}

func TestExtractBudgetTriggerWithoutAmount(t *testing.T) {
	ex := Extract("can afford quite a lot")
	if ex.Budget != "" {
		t.Errorf("expected no budget, got %q", ex.Budget)
	}
}

func TestExtractBudgetPlainAmount(t *testing.T) {
	ex := Extract("wants to spend 250000 on a home")
	if ex.Budget != "250000" {
		t.Errorf("expected budget '250000', got %q", ex.Budget)
	}
}

func TestExtractFirstTimeBuyerVariants(t *testing.T) {
	for _, fact := range []string{
		"is a first-time buyer",
		"is a first time buyer",
		"First-Time Buyer looking in Leeds",
	} {
		if ex := Extract(fact); !ex.FirstTimeBuyer {
			t.Errorf("expected firstTimeBuyer for %q", fact)
		}
	}
}

func TestExtractFirstTimeBuyerAbsenceIsNotNegation(t *testing.T) {
	ex := Extract("owns two houses already")
	if ex.FirstTimeBuyer {
		t.Error("expected firstTimeBuyer to stay unset")
	}
}

func TestExtractPropertyTriggerWithoutConcreteType(t *testing.T) {
	ex := Extract("is looking for a property")
	if ex.PropertyType != "" {
		t.Errorf("expected no propertyType, got %q", ex.PropertyType)
	}
}

func TestExtractPropertyTypeLowerCased(t *testing.T) {
	ex := Extract("interested in a Detached house")
	if ex.PropertyType != "detached" {
		t.Errorf("expected propertyType 'detached', got %q", ex.PropertyType)
	}
}

func TestExtractLocationKeepsMatchedCasing(t *testing.T) {
	ex := Extract("wants to live in london")
	if ex.Location != "london" {
		t.Errorf("expected location 'london', got %q", ex.Location)
	}

	ex = Extract("works in Manchester")
	if ex.Location != "Manchester" {
		t.Errorf("expected location 'Manchester', got %q", ex.Location)
	}
}

func TestExtractUnknownCityContributesNothing(t *testing.T) {
	ex := Extract("moving to Glasgow next year")
	if ex.Location != "" {
		t.Errorf("expected no location, got %q", ex.Location)
	}
}

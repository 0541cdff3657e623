package models

// Fact is an atomic natural-language assertion about a user, produced by
// the graph store's own extraction when conversation turns are ingested.
// Facts are immutable once returned; the text is their only local identity.
type Fact struct {
	UUID      string `json:"uuid,omitempty"`
	Text      string `json:"fact"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Preference keys recognised by the extractor. mortgagePreferences never
// contains a key outside this set.
const (
	PrefBudget         = "budget"
	PrefFirstTimeBuyer = "firstTimeBuyer"
	PrefPropertyType   = "propertyType"
	PrefLocation       = "location"
)

// UserProfile is the consolidated view of a user, recomputed from the
// current fact set on every request and never persisted locally.
type UserProfile struct {
	UserID              string            `json:"userId"`
	IsReturningUser     bool              `json:"isReturningUser"`
	Facts               []Fact            `json:"facts"`
	UserName            string            `json:"userName,omitempty"`
	MortgagePreferences map[string]string `json:"mortgagePreferences"`
}

// EmptyProfile returns the deterministic default shape served when the
// store has no data for the user or cannot be reached.
func EmptyProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:              userID,
		IsReturningUser:     false,
		Facts:               []Fact{},
		MortgagePreferences: map[string]string{},
	}
}

// TurnEvent is one conversation turn submitted for ingestion, either via
// the HTTP API or the Kafka topic. It is forwarded to the store and not
// persisted by this service.
type TurnEvent struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
	Role    string `json:"role"`
	Name    string `json:"name,omitempty"`
}

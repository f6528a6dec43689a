package shared

// SeedTrip is a demo trip loaded by cmd/seeder so a fresh environment has
// something to recommend against.
type SeedTrip struct {
	City       string
	Country    string
	StartDate  string // YYYY-MM-DD
	EndDate    string
	Currency   string
	Members    []SeedMember
	Activities []string
}

type SeedMember struct {
	ID                string
	Origin            string
	NightlyBudgetMin  float64
	NightlyBudgetMax  float64
	Interests         []string
	FlightFlexibility string
	BudgetSensitivity string
}

var SeedTrips = []SeedTrip{
	{
		City: "Lisbon", Country: "PT", StartDate: "2026-09-10", EndDate: "2026-09-14", Currency: "USD",
		Members: []SeedMember{
			{ID: "ana", Origin: "SFO", NightlyBudgetMin: 80, NightlyBudgetMax: 160, Interests: []string{"food", "surf"}, FlightFlexibility: "medium", BudgetSensitivity: "medium"},
			{ID: "ben", Origin: "JFK", NightlyBudgetMin: 100, NightlyBudgetMax: 200, Interests: []string{"food", "museums"}, FlightFlexibility: "low", BudgetSensitivity: "high"},
			{ID: "chloe", Origin: "JFK", NightlyBudgetMin: 90, NightlyBudgetMax: 180, Interests: []string{"nightlife"}, FlightFlexibility: "high", BudgetSensitivity: "low"},
		},
		Activities: []string{"Tram 28 ride", "Sintra day trip", "Fado dinner"},
	},
	{
		City: "Tokyo", Country: "JP", StartDate: "2026-11-02", EndDate: "2026-11-09", Currency: "USD",
		Members: []SeedMember{
			{ID: "dev", Origin: "LAX", NightlyBudgetMin: 120, NightlyBudgetMax: 250, Interests: []string{"food", "tech"}, FlightFlexibility: "medium", BudgetSensitivity: "medium"},
			{ID: "emi", Origin: "SEA", NightlyBudgetMin: 100, NightlyBudgetMax: 220, Interests: []string{"food", "temples"}, FlightFlexibility: "medium", BudgetSensitivity: "medium"},
		},
		Activities: []string{"Tsukiji food walk", "Ghibli Museum", "Day trip to Nikko"},
	},
	{
		City: "Mexico City", Country: "MX", StartDate: "2027-02-18", EndDate: "2027-02-22", Currency: "USD",
		Members: []SeedMember{
			{ID: "finn", Origin: "ORD", NightlyBudgetMin: 60, NightlyBudgetMax: 140, Interests: []string{"food"}, FlightFlexibility: "high", BudgetSensitivity: "high"},
			{ID: "gia", Origin: "ORD", NightlyBudgetMin: 70, NightlyBudgetMax: 150, Interests: []string{"art", "food"}, FlightFlexibility: "high", BudgetSensitivity: "medium"},
			{ID: "hugo", Origin: "DFW", NightlyBudgetMin: 50, NightlyBudgetMax: 130, Interests: []string{"lucha libre"}, FlightFlexibility: "low", BudgetSensitivity: "high"},
		},
		Activities: []string{"Teotihuacan sunrise", "Frida Kahlo museum", "Street taco crawl"},
	},
}

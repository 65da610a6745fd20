package domain

// History is a customer together with every destination it owns,
// ordered by start date. It is the input of the history document writers.
type History struct {
	Customer     Customer
	Destinations []Destination
}

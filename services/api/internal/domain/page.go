package domain

// Page selects a page of a list. Zero fields mean "backend default".
type Page struct {
	Page  int
	Limit int
}

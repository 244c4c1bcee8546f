package domain

type Vehicle struct {
	ID           int64
	Name         string
	Price        string
	Transmission string
	Seats        int
	Luggage      int
	Year         string
}

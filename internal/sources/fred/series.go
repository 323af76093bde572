package fred

import "math/rand/v2"

// Series identifies a FRED data series by its API ID and display title.
type Series struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Pool is the rotation of labor-market series sampled for report context.
var Pool = []Series{
	{ID: "UNRATE", Title: "Unemployment Rate"},
	{ID: "INDPRO", Title: "Industrial Production Index"},
	{ID: "PAYEMS", Title: "Total Nonfarm Payrolls"},
	{ID: "CES0500000003", Title: "Average Hourly Earnings"},
	{ID: "AWHAETP", Title: "Average Weekly Hours"},
}

// Selector picks one series from a pool. Injectable so tests can pin the choice.
type Selector func(pool []Series) Series

// RandomSelector picks a series uniformly at random.
func RandomSelector(pool []Series) Series {
	return pool[rand.IntN(len(pool))]
}

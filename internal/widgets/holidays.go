package widgets

import (
	"time"
)

// Holiday is a fixed-date Swedish holiday. Date is MM-DD.
type Holiday struct {
	Date        string
	Name        string
	Description string
}

// Holidays is sorted by Date. Midsummer moves every year; the common dates
// are used.
var Holidays = []Holiday{
	{Date: "01-01", Name: "New Year's Day", Description: "Start of the new year, often quiet in Sweden as people recover from the night before."},
	{Date: "01-06", Name: "Epiphany (Trettondedag jul)", Description: "A public holiday marking the end of the Christmas season."},
	{Date: "04-30", Name: "Walpurgis Night (Valborg)", Description: "Welcoming spring with large bonfires and choir singing."},
	{Date: "06-06", Name: "National Day of Sweden", Description: "Celebrated with flags and ceremonies, though a newer holiday tradition."},
	{Date: "06-21", Name: "Midsummer Eve", Description: "A major Swedish celebration with dancing around a maypole, herring, and strawberries."},
	{Date: "06-22", Name: "Midsummer Day", Description: "Resting day after the celebrations."},
	{Date: "12-13", Name: "Lucia", Description: "Festival of Light featuring saffron buns and candle-lit processions."},
	{Date: "12-24", Name: "Christmas Eve (Julafton)", Description: "The main day Swedes celebrate Christmas with Donald Duck on TV and gifts."},
	{Date: "12-25", Name: "Christmas Day", Description: "A quiet family day."},
	{Date: "12-31", Name: "New Year's Eve", Description: "Celebrated with friends, dinner, and fireworks."},
}

// HolidaysAround returns the holiday falling on t, if any, and the first
// holiday strictly after t, wrapping into next year.
func HolidaysAround(t time.Time) (*Holiday, Holiday) {
	today := t.Format("01-02")
	var current *Holiday
	for i := range Holidays {
		if Holidays[i].Date == today {
			h := Holidays[i]
			current = &h
			break
		}
	}
	for _, h := range Holidays {
		if h.Date > today {
			return current, h
		}
	}
	return current, Holidays[0]
}

// ShortDate renders MM-DD as "Jan 2".
func (h Holiday) ShortDate() string {
	d, err := time.Parse("01-02", h.Date)
	if err != nil {
		return h.Date
	}
	return d.Format("Jan 2")
}

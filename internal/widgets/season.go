package widgets

import (
	"time"

	"github.com/sandeepkv93/studyviking/internal/model"
)

type SeasonName string

const (
	Winter SeasonName = "Winter"
	Spring SeasonName = "Spring"
	Summer SeasonName = "Summer"
	Autumn SeasonName = "Autumn"
)

// Season is what the weather card shows for the current month.
type Season struct {
	Name     SeasonName
	Icon     string
	Clothing string
	Tip      string
}

func SeasonFor(t time.Time) Season {
	switch m := t.Month(); {
	case m >= time.March && m <= time.May:
		return Season{Name: Spring, Icon: "🌧", Clothing: "Light jacket, umbrella, layers.", Tip: "The weather changes fast. Be prepared for rain."}
	case m >= time.June && m <= time.August:
		return Season{Name: Summer, Icon: "☀", Clothing: "T-shirt, light sweater for evenings.", Tip: "Long days! Enjoy the midnight sun."}
	case m >= time.September && m <= time.November:
		return Season{Name: Autumn, Icon: "🍂", Clothing: "Waterproof jacket, boots.", Tip: "It gets windy and dark. Stay cozy."}
	default:
		return Season{Name: Winter, Icon: "❄", Clothing: "Warm coat, hat, gloves, scarf.", Tip: "Reflectors are important in the dark!"}
	}
}

// LocationLabel is the weather card heading.
func LocationLabel(p model.UserProfile) string {
	switch {
	case p.City != "":
		return "Weather in " + p.City
	case p.InSweden:
		return "Current Season"
	default:
		return "Expected in Sweden"
	}
}

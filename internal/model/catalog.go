package model

import (
	"math/rand/v2"
	"strings"
)

var Countries = []string{
	"Afghanistan", "Albania", "Algeria", "Andorra", "Angola", "Antigua and Barbuda", "Argentina", "Armenia", "Australia", "Austria", "Azerbaijan",
	"Bahamas", "Bahrain", "Bangladesh", "Barbados", "Belarus", "Belgium", "Belize", "Benin", "Bhutan", "Bolivia", "Bosnia and Herzegovina", "Botswana", "Brazil", "Brunei", "Bulgaria", "Burkina Faso", "Burundi",
	"Cabo Verde", "Cambodia", "Cameroon", "Canada", "Central African Republic", "Chad", "Chile", "China", "Colombia", "Comoros", "Congo (Congo-Brazzaville)", "Costa Rica", "Croatia", "Cuba", "Cyprus", "Czechia (Czech Republic)",
	"Democratic Republic of the Congo", "Denmark", "Djibouti", "Dominica", "Dominican Republic",
	"East Timor (Timor-Leste)", "Ecuador", "Egypt", "El Salvador", "Equatorial Guinea", "Eritrea", "Estonia", "Eswatini", "Ethiopia",
	"Fiji", "Finland", "France",
	"Gabon", "Gambia", "Georgia", "Germany", "Ghana", "Greece", "Grenada", "Guatemala", "Guinea", "Guinea-Bissau", "Guyana",
	"Haiti", "Honduras", "Hungary",
	"Iceland", "India", "Indonesia", "Iran", "Iraq", "Ireland", "Israel", "Italy", "Ivory Coast",
	"Jamaica", "Japan", "Jordan",
	"Kazakhstan", "Kenya", "Kiribati", "Kosovo", "Kuwait", "Kyrgyzstan",
	"Laos", "Latvia", "Lebanon", "Lesotho", "Liberia", "Libya", "Liechtenstein", "Lithuania", "Luxembourg",
	"Madagascar", "Malawi", "Malaysia", "Maldives", "Mali", "Malta", "Marshall Islands", "Mauritania", "Mauritius", "Mexico", "Micronesia", "Moldova", "Monaco", "Mongolia", "Montenegro", "Morocco", "Mozambique", "Myanmar (Burma)",
	"Namibia", "Nauru", "Nepal", "Netherlands", "New Zealand", "Nicaragua", "Niger", "Nigeria", "North Korea", "North Macedonia", "Norway",
	"Oman",
	"Pakistan", "Palau", "Palestine", "Panama", "Papua New Guinea", "Paraguay", "Peru", "Philippines", "Poland", "Portugal",
	"Qatar",
	"Romania", "Russia", "Rwanda",
	"Saint Kitts and Nevis", "Saint Lucia", "Saint Vincent and the Grenadines", "Samoa", "San Marino", "Sao Tome and Principe", "Saudi Arabia", "Senegal", "Serbia", "Seychelles", "Sierra Leone", "Singapore", "Slovakia", "Slovenia", "Solomon Islands", "Somalia", "South Africa", "South Korea", "South Sudan", "Spain", "Sri Lanka", "Sudan", "Suriname", "Sweden", "Switzerland", "Syria",
	"Taiwan", "Tajikistan", "Tanzania", "Thailand", "Togo", "Tonga", "Trinidad and Tobago", "Tunisia", "Turkey", "Turkmenistan", "Tuvalu",
	"Uganda", "Ukraine", "United Arab Emirates", "United Kingdom", "United States", "Uruguay", "Uzbekistan",
	"Vanuatu", "Vatican City", "Venezuela", "Vietnam",
	"Yemen",
	"Zambia", "Zimbabwe",
	"Other",
}

func IsKnownCountry(name string) bool {
	for _, c := range Countries {
		if c == name {
			return true
		}
	}
	return false
}

// MatchCountries returns countries containing filter, case-insensitively.
// An empty filter matches everything.
func MatchCountries(filter string) []string {
	f := strings.ToLower(strings.TrimSpace(filter))
	if f == "" {
		return append([]string(nil), Countries...)
	}
	out := make([]string, 0)
	for _, c := range Countries {
		if strings.Contains(strings.ToLower(c), f) {
			out = append(out, c)
		}
	}
	return out
}

var ExampleUsernames = []string{
	"StudyViking", "NewInSweden", "NordicExplorer", "FikaFan", "SveaStudent",
	"AuroraChaser", "LagomLife", "StockholmSoul", "ScandiScholar", "VikingVoyager",
	"SnowyOwl", "BalticBreeze", "MooseTracker", "MidnightSun", "ArchipelagoAdventurer",
	"MetroRider", "BikeCommuter", "ForestWalker", "LakeLover", "BunEater",
	"NorthStar", "IceBreaker", "GothenburgGuest", "MalmoMover", "UppsalaUser",
}

// SuggestUsernames picks n distinct example names.
func SuggestUsernames(rng *rand.Rand, n int) []string {
	if n <= 0 {
		return nil
	}
	pool := append([]string(nil), ExampleUsernames...)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}

type City struct {
	Name string
	Lat  float64
	Lng  float64
}

var SwedishCities = []City{
	{Name: "Stockholm", Lat: 59.3293, Lng: 18.0686},
	{Name: "Gothenburg", Lat: 57.7089, Lng: 11.9746},
	{Name: "Malmö", Lat: 55.6050, Lng: 13.0038},
	{Name: "Uppsala", Lat: 59.8586, Lng: 17.6389},
	{Name: "Lund", Lat: 55.7047, Lng: 13.1910},
	{Name: "Linköping", Lat: 58.4108, Lng: 15.6214},
	{Name: "Umeå", Lat: 63.8258, Lng: 20.2630},
	{Name: "Örebro", Lat: 59.2753, Lng: 15.2134},
	{Name: "Västerås", Lat: 59.6099, Lng: 16.5448},
	{Name: "Luleå", Lat: 65.5848, Lng: 22.1547},
	{Name: "Karlstad", Lat: 59.4022, Lng: 13.5115},
	{Name: "Växjö", Lat: 56.8777, Lng: 14.8091},
	{Name: "Jönköping", Lat: 57.7826, Lng: 14.1618},
	{Name: "Halmstad", Lat: 56.6745, Lng: 12.8578},
	{Name: "Sundsvall", Lat: 62.3908, Lng: 17.3069},
	{Name: "Kiruna", Lat: 67.8558, Lng: 20.2253},
}

func FindCity(name string) (City, bool) {
	for _, c := range SwedishCities {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return City{}, false
}

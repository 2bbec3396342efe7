package widgets

import (
	"math/rand/v2"
	"time"
)

type Phrase struct {
	Phrase        string
	Pronunciation string
	Phonetic      string
	Meaning       string
}

var Phrases = []Phrase{
	{"Fika", "fee-kah", "/ˈfiːˌka/", "A Swedish coffee break with pastries, often shared with friends."},
	{"Lagom", "lah-gom", "/ˈlɑːˌɡɔm/", "Not too much, not too little. Just the right amount."},
	{"Hej", "hey", "/hɛj/", "Hello. Friendly and works in almost every situation."},
	{"Tack", "tack", "/tak/", "Thank you. You will say this a lot!"},
	{"Ursäkta", "ur-shek-ta", "/ˈʉːˌʂɛkːta/", "Excuse me. Useful when asking for help or bumping into someone."},
	{"Skål", "skohl", "/skoːl/", "Cheers! Used when toasting with drinks."},
	{"Välkommen", "vel-kom-men", "/ˈvɛːlˌkɔmːɛn/", "Welcome."},
	{"Trevligt att träffas", "trev-ligt at tre-fas", "/ˈtreːvˌlɪt at ˈtrɛfːas/", "Nice to meet you."},
	{"Var ligger...", "var lig-ger", "/vɑːr ˈlɪɡːɛr/", "Where is...? (Used for asking directions)"},
	{"En kanelbulle, tack", "en ka-nel-bul-le tack", "/ɛn kaˈneːlˌbɵlːɛ tak/", "A cinnamon bun, please."},
	{"Jag förstår inte", "yag fur-shtor in-te", "/jɑːɡ fœˈʂʈoːr ˈɪnˌtɛ/", "I don't understand."},
	{"Pratar du engelska?", "prah-tar du eng-el-ska", "/ˈprɑːˌtar dʉː ˈɛŋːɛlˌska/", "Do you speak English?"},
	{"Vad kostar det?", "vad kos-tar de", "/vɑːd ˈkɔsˌtar deː/", "How much does it cost?"},
	{"Tunnelbana", "tun-nel-bah-na", "/ˈtɵnːɛlˌbɑːna/", "Subway or Metro."},
	{"Systembolaget", "sis-tem-bo-lah-get", "/sʏˈsteːmbʊˌlɑːɡɛt/", "The government-owned alcohol store."},
	{"Svenska kronor", "sven-ska kro-nor", "/ˈsvɛnˌska ˈkroːˌnʊr/", "Swedish crowns (the currency)."},
	{"Hur mår du?", "hur mor du", "/hʉːr moːr dʉː/", "How are you?"},
	{"Bra, tack", "brah tack", "/brɑː tak/", "Good, thanks."},
}

// DailyPhraseIndex picks the phrase of the day from the day of month.
func DailyPhraseIndex(t time.Time) int {
	return t.Day() % len(Phrases)
}

// NextPhraseIndex returns a random index different from current.
func NextPhraseIndex(rng *rand.Rand, current int) int {
	if len(Phrases) < 2 {
		return 0
	}
	next := rng.IntN(len(Phrases) - 1)
	if next >= current {
		next++
	}
	return next
}

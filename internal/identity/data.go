package identity

const (
	minAge = 18
	maxAge = 100
)

// country is one entry of the fixed country table. stems and suffixes are
// only set for countries go-randomdata has no street names for; those
// streets are written as one word, stem then suffix.
type country struct {
	name     string
	code     string
	cities   []string
	stems    []string
	suffixes []string
}

// countries is the country→city table. A city is only ever drawn from the
// list of the country drawn before it.
var countries = []country{
	{
		name:     "Germany",
		code:     "DE",
		cities:   []string{"Göttingen", "Berlin", "Munich", "Hamburg", "Cologne"},
		stems:    []string{"Haupt", "Bahnhof", "Schul", "Garten", "Linden", "Berg", "Kirch", "Wald", "Goethe", "Schiller", "Mühlen", "Ring"},
		suffixes: []string{"straße", "weg", "allee", "gasse", "platz"},
	},
	{
		name:     "Netherlands",
		code:     "NL",
		cities:   []string{"Amsterdam", "Rotterdam", "The Hague", "Utrecht", "Eindhoven"},
		stems:    []string{"Kerk", "Dorps", "Molen", "School", "Nieuwe", "Wilhelmina", "Juliana", "Beatrix", "Oranje", "Prinsen", "Heeren", "Linden"},
		suffixes: []string{"straat", "laan", "weg", "plein", "gracht", "singel"},
	},
	{
		name:   "UK",
		code:   "GB",
		cities: []string{"London", "Manchester", "Nottingham", "Liverpool", "Edinburgh"},
	},
}

// systemTriplets are the platform triplets a device can report.
var systemTriplets = []string{
	"x86_64-pc-linux-gnu",
	"i686-pc-linux-gnu",
	"aarch64-pc-linux-gnu",
	"x86_64-pc-macosx",
	"x86_64-pc-win32",
	"x86_64-pc-win64",
	"x86_64-pc-android",
	"armv7l-pc-android",
	"x86_64-pc-freebsd",
	"i686-pc-freebsd",
}

// emailDomains are reserved for documentation (RFC 2606) so generated
// addresses never reach a real mailbox.
var emailDomains = []string{"example.com", "example.org", "example.net"}

// adjectives for handle generation
var adjectives = []string{
	"swift", "bold", "calm", "dark", "keen", "wild", "warm", "cool",
	"fast", "slow", "deep", "tall", "wide", "thin", "flat", "long",
	"soft", "hard", "pure", "rare", "safe", "fair", "fine", "free",
	"glad", "kind", "vast", "wise", "true", "pale", "gold", "iron",
	"blue", "gray", "jade", "ruby", "sage", "teal", "aqua", "mint",
	"dusk", "dawn", "moon", "star", "fern", "reed", "snow", "rain",
	"haze", "glow",
}

// nouns for handle generation
var nouns = []string{
	"wolf", "hawk", "bear", "deer", "lynx", "fox", "owl", "crow",
	"pike", "bass", "wren", "dove", "lark", "swan", "moth", "wasp",
	"frog", "toad", "crab", "clam", "orca", "seal", "hare", "mole",
	"vole", "newt", "ibis", "kite", "jay", "ant", "bee", "ram",
	"oak", "elm", "ash", "bay", "fir", "yew", "ivy", "reed",
	"moss", "sage", "lily", "rose", "iris", "vine", "fern", "palm",
	"cliff", "ridge",
}

// Countries returns the names of all countries records are drawn from.
func Countries() []string {
	names := make([]string, len(countries))
	for i, c := range countries {
		names[i] = c.name
	}
	return names
}

// Cities returns the cities of the named country, or nil if the country is
// not in the table.
func Cities(name string) []string {
	for _, c := range countries {
		if c.name == name {
			return append([]string(nil), c.cities...)
		}
	}
	return nil
}

// SystemTriplets returns every platform triplet a device can report.
func SystemTriplets() []string {
	return append([]string(nil), systemTriplets...)
}

// ValidLocation reports whether city belongs to country's city list.
func ValidLocation(countryName, city string) bool {
	for _, c := range Cities(countryName) {
		if c == city {
			return true
		}
	}
	return false
}

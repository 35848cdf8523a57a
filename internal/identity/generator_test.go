package identity

import (
	"context"
	"errors"
	"net/netip"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// stubFaker returns fixed text so patterns can be asserted exactly.
type stubFaker struct {
	postCode string
}

func (stubFaker) FirstName() string { return "Alice" }
func (stubFaker) LastName() string { return "Wonder" }
func (s stubFaker) PostCode(string) string { return s.postCode }
func (stubFaker) Street(code string) string {
	if code == "GB" {
		return "Baker Street"
	}
	return ""
}
func (stubFaker) PhoneNumber() string { return "+1 555 0100" }

// failingReader simulates an exhausted entropy source.
type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func newTestGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	g, err := New(opts...)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	return g
}

func generateOne(t *testing.T, g *Generator) User {
	t.Helper()
	u, err := g.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return u
}

var (
	macRe   = regexp.MustCompile(`^([0-9A-F]{2}:){5}[0-9A-F]{2}$`)
	localRe = regexp.MustCompile(`^[a-z0-9.]+$`)
)

func TestGenerate(t *testing.T) {
	g := newTestGenerator(t)
	u := generateOne(t, g)

	tests := []struct {
		name  string
		check func() bool
	}{
		{"UserID is uuid v4", func() bool { return isUUIDv4(u.UserID) }},
		{"DeviceUUID is uuid v4", func() bool { return isUUIDv4(u.Device.DeviceUUID) }},
		{"UserID differs from DeviceUUID", func() bool { return u.UserID != u.Device.DeviceUUID }},
		{"UserName non-empty", func() bool { return u.UserName != "" }},
		{"FirstName non-empty", func() bool { return u.FirstName != "" }},
		{"LastName non-empty", func() bool { return u.LastName != "" }},
		{"Age in range", func() bool { return u.Age >= 18 && u.Age <= 100 }},
		{"HouseNumber numeric", func() bool { n, err := strconv.Atoi(u.Address.HouseNumber); return err == nil && n >= 1 && n <= 999 }},
		{"StreetName non-empty", func() bool { return u.Address.StreetName != "" }},
		{"City in country", func() bool { return ValidLocation(u.Address.Country, u.Address.City) }},
		{"PostCode non-empty", func() bool { return u.Address.PostCode != "" }},
		{"Email has @ sign", func() bool { return strings.Count(u.EmailAddress, "@") == 1 }},
		{"Phone non-empty", func() bool { return u.PhoneNumber != "" }},
		{"IPv4 parses", func() bool { a, err := netip.ParseAddr(u.Device.IPv4Address); return err == nil && a.Is4() }},
		{"IPv6 parses", func() bool { a, err := netip.ParseAddr(u.Device.IPv6Address); return err == nil && a.Is6() }},
		{"MAC format", func() bool { return macRe.MatchString(u.Device.MACAddress) }},
		{"SystemTriplet known", func() bool { return slices.Contains(SystemTriplets(), u.Device.SystemTriplet) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check() {
				t.Errorf("check failed for user: %+v", u)
			}
		})
	}
}

func isUUIDv4(s string) bool {
	id, err := uuid.Parse(s)
	return err == nil && id.Version() == 4 && id.Variant() == uuid.RFC4122
}

func TestGenerateInvariants(t *testing.T) {
	g := newTestGenerator(t)
	seenCountries := make(map[string]bool)

	for range 500 {
		u := generateOne(t, g)
		seenCountries[u.Address.Country] = true

		if !ValidLocation(u.Address.Country, u.Address.City) {
			t.Fatalf("city %q not in %q", u.Address.City, u.Address.Country)
		}
		if u.Age < 18 || u.Age > 100 {
			t.Fatalf("age %d out of range", u.Age)
		}
		if !slices.Contains(SystemTriplets(), u.Device.SystemTriplet) {
			t.Fatalf("unknown triplet %q", u.Device.SystemTriplet)
		}
	}

	// three countries, 500 draws
	if len(seenCountries) != len(Countries()) {
		t.Errorf("saw %d countries, want %d", len(seenCountries), len(Countries()))
	}
}

func TestIPv4Octets(t *testing.T) {
	g := newTestGenerator(t)
	for range 200 {
		a := netip.MustParseAddr(g.ipv4())
		for _, b := range a.As4() {
			if b == 0 {
				t.Fatalf("octet 0 in %s", a)
			}
		}
	}
}

func TestGenerateRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       int
	}{
		{"small", 0, 4, 4},
		{"offset", 10, 15, 5},
		{"empty", 7, 7, 0},
		{"large", 0, 5000, 5000},
	}

	g := newTestGenerator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := g.GenerateRange(context.Background(), tt.start, tt.end)
			if err != nil {
				t.Fatalf("GenerateRange(%d, %d): %v", tt.start, tt.end, err)
			}
			if len(users) != tt.want {
				t.Errorf("GenerateRange(%d, %d) len = %d, want %d", tt.start, tt.end, len(users), tt.want)
			}
		})
	}
}

func TestGenerateRangeInvalid(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
	}{
		{"reversed", 5, 4},
		{"negative start", -1, 3},
	}

	g := newTestGenerator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.GenerateRange(context.Background(), tt.start, tt.end)
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("err = %v, want ErrInvalidRange", err)
			}
		})
	}
}

func TestGenerateRangeCancelled(t *testing.T) {
	g := newTestGenerator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.GenerateRange(ctx, 0, 10)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestGenerateEntropyFailure(t *testing.T) {
	exhausted := errors.New("entropy exhausted")
	g := newTestGenerator(t, WithEntropy(failingReader{err: exhausted}))

	if _, err := g.Generate(); !errors.Is(err, exhausted) {
		t.Errorf("Generate err = %v, want %v", err, exhausted)
	}
	if _, err := g.GenerateRange(context.Background(), 0, 3); !errors.Is(err, exhausted) {
		t.Errorf("GenerateRange err = %v, want %v", err, exhausted)
	}
}

func TestGenerateUniqueIDs(t *testing.T) {
	g := newTestGenerator(t)
	users, err := g.GenerateRange(context.Background(), 0, 2000)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	seen := make(map[string]bool, len(users))
	for _, u := range users {
		if seen[u.UserID] {
			t.Fatalf("duplicate user id %s", u.UserID)
		}
		seen[u.UserID] = true
	}
}

func TestPostCodeFallback(t *testing.T) {
	g := newTestGenerator(t, WithFaker(stubFaker{}))
	re := regexp.MustCompile(`^\d{5}$`)
	for range 20 {
		u := generateOne(t, g)
		if !re.MatchString(u.Address.PostCode) {
			t.Errorf("fallback post code %q is not five digits", u.Address.PostCode)
		}
	}
}

func TestPostCodeFromFaker(t *testing.T) {
	g := newTestGenerator(t, WithFaker(stubFaker{postCode: "1234 AB"}))
	u := generateOne(t, g)
	if u.Address.PostCode != "1234 AB" {
		t.Errorf("post code = %q, want faker value", u.Address.PostCode)
	}
}

func TestEmailPatterns(t *testing.T) {
	g := newTestGenerator(t)

	patterns := []struct {
		name string
		re   *regexp.Regexp
	}{
		{"first.last", regexp.MustCompile(`^alice\.wonder$`)},
		{"flast", regexp.MustCompile(`^awonder$`)},
		{"firstlast", regexp.MustCompile(`^alicewonder$`)},
		{"first.last+digits", regexp.MustCompile(`^alice\.wonder\d{2}$`)},
		{"flast+digits", regexp.MustCompile(`^awonder\d{2}$`)},
		{"f.last", regexp.MustCompile(`^a\.wonder$`)},
		{"last.first", regexp.MustCompile(`^wonder\.alice$`)},
		{"adjective+noun+digits", regexp.MustCompile(`^[a-z]+\d{4}$`)},
	}

	seen := make(map[int]bool)
	for range 500 {
		email := g.Email("Alice", "Wonder")

		local, domain, ok := strings.Cut(email, "@")
		if !ok {
			t.Fatalf("no @ in %q", email)
		}
		if !slices.Contains(emailDomains, domain) {
			t.Fatalf("unexpected domain in %q", email)
		}
		if !localRe.MatchString(local) {
			t.Fatalf("local part %q contains unexpected characters", local)
		}

		for i, p := range patterns {
			if p.re.MatchString(local) {
				seen[i] = true
				break
			}
		}
	}

	// with 8 patterns and 500 iterations every pattern shows up
	if len(seen) < len(patterns)-1 {
		t.Errorf("expected variety in email patterns, only saw %d distinct patterns", len(seen))
	}
}

func TestEmailUnusableName(t *testing.T) {
	g := newTestGenerator(t)
	re := regexp.MustCompile(`^[a-z]+\d{4}@`)
	for range 20 {
		email := g.Email("", "Ø")
		if !re.MatchString(email) {
			t.Errorf("expected handle for unusable name, got %q", email)
		}
	}
}

func TestUserNameLowercase(t *testing.T) {
	g := newTestGenerator(t)
	for range 100 {
		u := generateOne(t, g)
		if u.UserName != strings.ToLower(u.UserName) {
			t.Errorf("user name should be lowercase, got %q", u.UserName)
		}
	}
}

func TestName(t *testing.T) {
	g := newTestGenerator(t)
	for range 20 {
		first, last := g.Name()
		if first == "" {
			t.Error("first name is empty")
		}
		if last == "" {
			t.Error("last name is empty")
		}
	}
}

func TestStreetMatchesCountry(t *testing.T) {
	g := newTestGenerator(t)
	for _, c := range countries {
		for range 20 {
			s := g.street(c)
			if s == "" {
				t.Fatalf("%s street is empty", c.name)
			}
			if c.code == "GB" {
				if !strings.Contains(s, " ") {
					t.Errorf("GB street %q should be name and type", s)
				}
				continue
			}
			if strings.Contains(s, " ") {
				t.Errorf("%s street %q should be one word", c.name, s)
			}
			if !slices.ContainsFunc(c.suffixes, func(suf string) bool { return strings.HasSuffix(s, suf) }) {
				t.Errorf("%s street %q has no known suffix", c.name, s)
			}
		}
	}
}

func TestStreetPrefersFaker(t *testing.T) {
	g := newTestGenerator(t, WithFaker(stubFaker{}))
	for _, c := range countries {
		s := g.street(c)
		switch c.code {
		case "GB":
			if s != "Baker Street" {
				t.Errorf("GB street = %q, want faker value", s)
			}
		default:
			if s == "" || s == "Baker Street" {
				t.Errorf("%s street = %q, want table value", c.name, s)
			}
		}
	}
}

func TestGeneratorsAreIndependent(t *testing.T) {
	a := newTestGenerator(t)
	b := newTestGenerator(t)

	ua := generateOne(t, a)
	ub := generateOne(t, b)
	if ua.UserID == ub.UserID {
		t.Errorf("independent generators produced the same id %s", ua.UserID)
	}
	if ua.Device.IPv6Address == ub.Device.IPv6Address {
		t.Errorf("independent generators share a stream: %s", ua.Device.IPv6Address)
	}
}

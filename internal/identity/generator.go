package identity

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/netip"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/zarlcorp/core/pkg/zcrypto"
)

// seedSize is the ChaCha8 seed length in bytes.
const seedSize = 32

// ErrInvalidRange is returned when a range starts below zero or ends
// before it starts.
var ErrInvalidRange = errors.New("invalid range")

// Generator produces user records from its own ChaCha8 stream seeded with
// crypto/rand. A Generator is not safe for concurrent use: give each worker
// its own.
type Generator struct {
	rng     *rand.Rand
	entropy io.Reader
	faker   Faker
}

// Option configures a Generator.
type Option func(*Generator)

// WithEntropy sets the reader UUIDs are drawn from. It defaults to the
// generator's own stream.
func WithEntropy(r io.Reader) Option {
	return func(g *Generator) {
		g.entropy = r
	}
}

// WithFaker replaces the source of names, post codes and phone numbers.
func WithFaker(f Faker) Option {
	return func(g *Generator) {
		g.faker = f
	}
}

// New creates a generator with a freshly seeded random stream.
func New(opts ...Option) (*Generator, error) {
	seed, err := zcrypto.RandBytes(seedSize)
	if err != nil {
		return nil, fmt.Errorf("seed generator: %w", err)
	}
	src := rand.NewChaCha8([seedSize]byte(seed))
	zcrypto.Erase(seed)

	g := &Generator{
		rng:     rand.New(src),
		entropy: src,
		faker:   randomdataFaker{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// GenerateRange produces end-start records. The indices only set the count;
// records carry no trace of their position.
func (g *Generator) GenerateRange(ctx context.Context, start, end int) ([]User, error) {
	if start < 0 || end < start {
		return nil, fmt.Errorf("generate range [%d, %d): %w", start, end, ErrInvalidRange)
	}

	users := make([]User, 0, end-start)
	for i := start; i < end; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		u, err := g.Generate()
		if err != nil {
			return nil, fmt.Errorf("generate record %d: %w", i, err)
		}
		users = append(users, u)
	}
	return users, nil
}

// Generate produces a single record.
func (g *Generator) Generate() (User, error) {
	userID, err := g.uuid()
	if err != nil {
		return User{}, fmt.Errorf("user id: %w", err)
	}
	deviceID, err := g.uuid()
	if err != nil {
		return User{}, fmt.Errorf("device uuid: %w", err)
	}

	first, last := g.Name()
	c := countries[g.rng.IntN(len(countries))]

	return User{
		UserID:    userID,
		UserName:  g.localPart(first, last),
		FirstName: first,
		LastName:  last,
		Age:       minAge + g.rng.IntN(maxAge-minAge+1),
		Address: Address{
			HouseNumber: strconv.Itoa(1 + g.rng.IntN(999)),
			StreetName:  g.street(c),
			City:        pick(g.rng, c.cities),
			Country:     c.name,
			PostCode:    g.postCode(c),
		},
		EmailAddress: g.Email(first, last),
		PhoneNumber:  g.faker.PhoneNumber(),
		Device: Device{
			IPv4Address:   g.ipv4(),
			IPv6Address:   g.ipv6(),
			MACAddress:    g.mac(),
			DeviceUUID:    deviceID,
			SystemTriplet: pick(g.rng, systemTriplets),
		},
	}, nil
}

// Name generates a random first/last name pair.
func (g *Generator) Name() (first, last string) {
	return g.faker.FirstName(), g.faker.LastName()
}

// Email generates an address whose local part is usually derived from the
// given name, at one of the reserved example domains.
func (g *Generator) Email(first, last string) string {
	return g.localPart(first, last) + "@" + pick(g.rng, emailDomains)
}

// localPart picks one of eight lowercase patterns. Seven use the name; the
// last is an adjective+noun handle.
func (g *Generator) localPart(first, last string) string {
	f, l := slug(first), slug(last)
	if f == "" || l == "" {
		return g.handle()
	}

	switch g.rng.IntN(8) {
	case 0:
		return f + "." + l
	case 1:
		return f[:1] + l
	case 2:
		return f + l
	case 3:
		return f + "." + l + g.digits(2)
	case 4:
		return f[:1] + l + g.digits(2)
	case 5:
		return f[:1] + "." + l
	case 6:
		return l + "." + f
	default:
		return g.handle()
	}
}

// handle generates <adjective><noun><4digits>.
func (g *Generator) handle() string {
	return pick(g.rng, adjectives) + pick(g.rng, nouns) + g.digits(4)
}

func (g *Generator) digits(n int) string {
	var b strings.Builder
	for range n {
		b.WriteByte(byte('0' + g.rng.IntN(10)))
	}
	return b.String()
}

// street prefers the faker and falls back to the country's stem and suffix
// tables.
func (g *Generator) street(c country) string {
	if s := g.faker.Street(c.code); s != "" {
		return s
	}
	if len(c.stems) == 0 || len(c.suffixes) == 0 {
		return ""
	}
	return pick(g.rng, c.stems) + pick(g.rng, c.suffixes)
}

// postCode asks the faker for a country format and falls back to five
// digits when it has none.
func (g *Generator) postCode(c country) string {
	if pc := g.faker.PostCode(c.code); pc != "" {
		return pc
	}
	return g.digits(5)
}

// ipv4 draws every octet from [1, 255].
func (g *Generator) ipv4() string {
	var b [4]byte
	for i := range b {
		b[i] = byte(1 + g.rng.IntN(255))
	}
	return netip.AddrFrom4(b).String()
}

func (g *Generator) ipv6() string {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], g.rng.Uint64())
	binary.BigEndian.PutUint64(b[8:], g.rng.Uint64())
	return netip.AddrFrom16(b).String()
}

// mac renders six random octets as upper-case colon-separated hex.
func (g *Generator) mac() string {
	b := make(net.HardwareAddr, 6)
	binary.BigEndian.PutUint32(b[:4], g.rng.Uint32())
	binary.BigEndian.PutUint16(b[4:], uint16(g.rng.Uint32()))
	return strings.ToUpper(b.String())
}

func (g *Generator) uuid() (string, error) {
	id, err := uuid.NewRandomFromReader(g.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// pick returns a random element from a string slice.
func pick(rng *rand.Rand, s []string) string {
	return s[rng.IntN(len(s))]
}

// slug lowercases s and drops everything but ASCII letters and digits.
func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

package identity

import "github.com/Pallinder/go-randomdata"

// Faker supplies the free-text fields of a record.
type Faker interface {
	FirstName() string
	LastName() string
	// PostCode returns a post code for an ISO 3166 alpha-2 country code, or
	// "" if the format is unknown.
	PostCode(countryCode string) string
	// Street returns a street name for a country code, or "" if the faker
	// has no street data for it.
	Street(countryCode string) string
	PhoneNumber() string
}

// randomdataFaker is backed by go-randomdata, which guards its own source
// with a lock.
type randomdataFaker struct{}

func (randomdataFaker) FirstName() string {
	return randomdata.FirstName(randomdata.RandomGender)
}

func (randomdataFaker) LastName() string {
	return randomdata.LastName()
}

func (randomdataFaker) PostCode(countryCode string) string {
	return randomdata.PostalCode(countryCode)
}

func (randomdataFaker) Street(countryCode string) string {
	return randomdata.StreetForCountry(countryCode)
}

func (randomdataFaker) PhoneNumber() string {
	return randomdata.PhoneNumber()
}

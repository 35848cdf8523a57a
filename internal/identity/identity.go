// Package identity generates synthetic user records for test fixtures.
// Every generator owns its random stream; nothing is shared between workers.
package identity

// User holds one generated user record.
type User struct {
	UserID       string  `json:"user_id"`
	UserName     string  `json:"user_name"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Age          int     `json:"age"`
	Address      Address `json:"address"`
	EmailAddress string  `json:"email_address"`
	PhoneNumber  string  `json:"phone_number"`
	Device       Device  `json:"device"`
}

// Address is the postal part of a User.
type Address struct {
	HouseNumber string `json:"house_number"`
	StreetName  string `json:"street_name"`
	City        string `json:"city"`
	Country     string `json:"country"`
	PostCode    string `json:"post_code"`
}

// Device describes the machine a User is attached to.
type Device struct {
	IPv4Address   string `json:"ipv4_address"`
	IPv6Address   string `json:"ipv6_address"`
	MACAddress    string `json:"mac_address"`
	DeviceUUID    string `json:"device_uuid"`
	SystemTriplet string `json:"system_triplet"`
}

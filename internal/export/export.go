// Package export serializes generated user batches as JSON, JSON Lines or
// CSV, to a writer or to a file on a zfilesystem.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zfixture/internal/identity"
)

// Format is an output encoding.
type Format string

const (
	JSON  Format = "json"
	JSONL Format = "jsonl"
	CSV   Format = "csv"
)

// ErrUnknownFormat is returned for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown format")

// Formats lists every supported format.
var Formats = []Format{JSON, JSONL, CSV}

// csvHeader flattens nested fields with dotted names.
var csvHeader = []string{
	"user_id", "user_name", "first_name", "last_name", "age",
	"address.house_number", "address.street_name", "address.city", "address.country", "address.post_code",
	"email_address", "phone_number",
	"device.ipv4_address", "device.ipv6_address", "device.mac_address", "device.device_uuid", "device.system_triplet",
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

// FormatFromPath infers a format from a file extension.
func FormatFromPath(name string) (Format, bool) {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext == "ndjson" {
		return JSONL, true
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", false
	}
	return f, true
}

// Write encodes users to w.
func Write(w io.Writer, f Format, users []identity.User) error {
	switch f {
	case JSON:
		return writeJSON(w, users)
	case JSONL:
		return writeJSONL(w, users)
	case CSV:
		return writeCSV(w, users)
	}
	return fmt.Errorf("write: %w %q", ErrUnknownFormat, f)
}

// WriteFile encodes users and writes them to name on fsys, creating parent
// directories as needed.
func WriteFile(fsys zfilesystem.ReadWriteFileFS, name string, f Format, users []identity.User) error {
	var buf bytes.Buffer
	if err := Write(&buf, f, users); err != nil {
		return err
	}

	if dir := path.Dir(name); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write %s: create dir: %w", name, err)
		}
	}

	if err := fsys.WriteFile(name, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func writeJSON(w io.Writer, users []identity.User) error {
	if users == nil {
		users = []identity.User{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(users); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeJSONL(w io.Writer, users []identity.User) error {
	enc := json.NewEncoder(w)
	for i, u := range users {
		if err := enc.Encode(u); err != nil {
			return fmt.Errorf("encode json line %d: %w", i, err)
		}
	}
	return nil
}

func writeCSV(w io.Writer, users []identity.User) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("encode csv header: %w", err)
	}
	for i, u := range users {
		if err := cw.Write(csvRow(u)); err != nil {
			return fmt.Errorf("encode csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return nil
}

func csvRow(u identity.User) []string {
	return []string{
		u.UserID, u.UserName, u.FirstName, u.LastName, strconv.Itoa(u.Age),
		u.Address.HouseNumber, u.Address.StreetName, u.Address.City, u.Address.Country, u.Address.PostCode,
		u.EmailAddress, u.PhoneNumber,
		u.Device.IPv4Address, u.Device.IPv6Address, u.Device.MACAddress, u.Device.DeviceUUID, u.Device.SystemTriplet,
	}
}

package contact

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAddress is wrapped by all address validation failures.
var ErrInvalidAddress = errors.New("invalid address")

// Contact represents a member of a group or individual chat.
// A contact can send from several addresses (multiple devices, phone + email).
type Contact struct {
	Name      string
	Addresses []string
}

// New creates a Contact after validating every address.
// An address containing "@" is treated as an email and lowercased;
// anything else is treated as a phone number, which is stripped to
// digits and must end up with 10-15 of them (country code optional).
func New(name string, addresses ...string) (Contact, error) {
	if len(addresses) == 0 {
		return Contact{}, fmt.Errorf("%w: contact %q has no addresses", ErrInvalidAddress, name)
	}

	cleaned := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		c, err := CleanAddress(addr)
		if err != nil {
			return Contact{}, err
		}
		cleaned = append(cleaned, c)
	}

	return Contact{Name: name, Addresses: cleaned}, nil
}

// MustNew is New but panics on invalid input. Intended for fixtures.
func MustNew(name string, addresses ...string) Contact {
	c, err := New(name, addresses...)
	if err != nil {
		panic(err)
	}
	return c
}

// CleanAddress normalizes a single address so it can be used to query
// the chat DB. Formatting characters in phone numbers are ignored, so
// inputs like "(123)456-7890" are fine.
func CleanAddress(address string) (string, error) {
	if strings.Contains(address, "@") {
		return strings.ToLower(strings.TrimSpace(address)), nil
	}
	return cleanPhoneNumber(address)
}

func cleanPhoneNumber(phone string) (string, error) {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) < 10 {
		return "", fmt.Errorf("%w: phone number %q is too short", ErrInvalidAddress, phone)
	}
	if len(digits) > 15 {
		return "", fmt.Errorf("%w: phone number %q is too long", ErrInvalidAddress, phone)
	}
	return digits, nil
}

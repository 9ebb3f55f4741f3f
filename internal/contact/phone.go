// Package contact normalizes customer contact details.
package contact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when no region is configured.
const DefaultRegion = "US"

var ErrInvalidPhone = errors.New("invalid phone number")

// PhoneNormalizer formats phone numbers as E.164, resolving numbers without a
// country code against Region.
type PhoneNormalizer struct {
	Region string
}

func NewPhoneNormalizer(region string) *PhoneNormalizer {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = DefaultRegion
	}
	return &PhoneNormalizer{Region: region}
}

func (n *PhoneNormalizer) Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidPhone
	}
	num, err := phonenumbers.Parse(raw, n.Region)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidPhone
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

package values

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// PhoneNumber represents a validated, normalized dial string value object.
// Normal form: optional leading "+" followed by 8 to 15 digits.
type PhoneNumber struct {
	number string
}

// Dial strings after normalization: optional leading +, 8-15 digits.
var dialStringRegex = regexp.MustCompile(`^\+?\d{8,15}$`)

// NewPhoneNumber creates a PhoneNumber value object from raw user input.
// Formatting characters (spaces, hyphens, parentheses, periods) are stripped,
// as is any "+" that is not the first character.
func NewPhoneNumber(raw string) (PhoneNumber, error) {
	normalized := Normalize(raw)
	if normalized == "" {
		return PhoneNumber{}, fmt.Errorf("phone number cannot be empty")
	}
	if !dialStringRegex.MatchString(normalized) {
		return PhoneNumber{}, fmt.Errorf("invalid phone number format: %q", raw)
	}
	return PhoneNumber{number: normalized}, nil
}

// MustNewPhoneNumber creates a PhoneNumber and panics on error (for tests)
func MustNewPhoneNumber(raw string) PhoneNumber {
	phone, err := NewPhoneNumber(raw)
	if err != nil {
		panic(err)
	}
	return phone
}

// Normalize reduces raw input to canonical dial-string form without
// validating it. Idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	p := strings.TrimSpace(raw)

	var b strings.Builder
	b.Grow(len(p))
	for i, r := range p {
		switch r {
		case ' ', '\t', '-', '(', ')', '.':
			continue
		case '+':
			if i == 0 {
				b.WriteRune(r)
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValid reports whether raw input normalizes to a dialable number:
// 8-15 digits after an optional leading +.
func IsValid(raw string) bool {
	_, err := NewPhoneNumber(raw)
	return err == nil
}

// String returns the normalized dial string
func (p PhoneNumber) String() string {
	return p.number
}

// Digits returns the number without a leading +
func (p PhoneNumber) Digits() string {
	return strings.TrimPrefix(p.number, "+")
}

// Hash returns the hex SHA-256 of the normalized number. Audit records
// store this instead of the raw number.
func (p PhoneNumber) Hash() string {
	sum := sha256.Sum256([]byte(p.number))
	return hex.EncodeToString(sum[:])
}

// IsEmpty checks if the phone number is empty
func (p PhoneNumber) IsEmpty() bool {
	return p.number == ""
}

// Equal checks if two PhoneNumber values are equal
func (p PhoneNumber) Equal(other PhoneNumber) bool {
	return p.number == other.number
}

// MarshalJSON implements JSON marshaling
func (p PhoneNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.number)
}

// UnmarshalJSON implements JSON unmarshaling
func (p *PhoneNumber) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	phone, err := NewPhoneNumber(raw)
	if err != nil {
		return err
	}

	*p = phone
	return nil
}

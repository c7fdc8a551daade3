package services

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
	"unicode"

	"dentlab/internal/core/domain/model/kernel"
)

// numberPrefix opens every generated order number.
const numberPrefix = "DL"

// suffixAlphabet excludes easily confused characters (0/O, 1/I/L) so numbers
// survive being read over the phone and written on work slips.
const suffixAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	initialsLength  = 3
	doctorRefLength = 4
	suffixLength    = 4
)

// OrderNumberGenerator derives human-meaningful candidate order numbers at
// creation time.
//
// A candidate has the shape
//
//	DL-20260901-4C2A-GAR-7F3K
//	│  │        │    │   └ random disambiguating suffix
//	│  │        │    └ patient initials
//	│  │        └ doctor reference (leading hex of the doctor id)
//	│  └ creation date
//	└ fixed lab prefix
//
// Everything but the suffix is deterministic for a given doctor, patient, and
// day, so concurrent creations for the same inputs may collide; the caller is
// expected to retry with a freshly generated candidate when the persistence
// layer reports a number-uniqueness conflict.
type OrderNumberGenerator struct{}

// NewOrderNumberGenerator creates a new OrderNumberGenerator instance.
func NewOrderNumberGenerator() OrderNumberGenerator {
	return OrderNumberGenerator{}
}

// Generate derives one candidate order number.
//
// Parameters:
//   - doctorID: the prescribing doctor (must be a valid UUID)
//   - patientName: free-form patient name; its initials become part of the number
//   - now: the creation instant, determining the date component
func (g OrderNumberGenerator) Generate(
	doctorID kernel.UUID,
	patientName string,
	now time.Time,
) (kernel.OrderNumber, error) {
	if err := doctorID.Validate(); err != nil {
		return kernel.OrderNumber{}, err
	}

	suffix, err := randomSuffix(suffixLength)
	if err != nil {
		return kernel.OrderNumber{}, fmt.Errorf("generating order number suffix: %w", err)
	}

	candidate := fmt.Sprintf("%s-%s-%s-%s-%s",
		numberPrefix,
		now.Format("20060102"),
		doctorRef(doctorID),
		patientInitials(patientName),
		suffix,
	)

	return kernel.NewOrderNumber(candidate)
}

// doctorRef takes the leading hex digits of the doctor id, uppercased.
func doctorRef(doctorID kernel.UUID) string {
	hex := strings.ReplaceAll(doctorID.String(), "-", "")
	return strings.ToUpper(hex[:doctorRefLength])
}

// patientInitials collects the first letter of each name part, uppercased and
// padded with 'X' to a fixed width. Non-letter characters are skipped entirely.
func patientInitials(patientName string) string {
	var initials []rune
	for _, part := range strings.Fields(patientName) {
		for _, r := range part {
			if unicode.IsLetter(r) {
				initials = append(initials, unicode.ToUpper(r))
				break
			}
		}
		if len(initials) == initialsLength {
			break
		}
	}
	for len(initials) < initialsLength {
		initials = append(initials, 'X')
	}
	return asciiFold(string(initials))
}

// asciiFold replaces letters outside A-Z with 'X' so the result always fits
// the order number alphabet.
func asciiFold(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		} else {
			b.WriteRune('X')
		}
	}
	return b.String()
}

func randomSuffix(length int) (string, error) {
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	out := make([]byte, length)
	for i, b := range raw {
		out[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}
	return string(out), nil
}

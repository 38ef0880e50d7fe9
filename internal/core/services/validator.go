package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/vncsmyrnk/raffle/internal/core/domain"
)

const (
	minPersonLength = 3
	maxPersonLength = 25
	minFriendLength = 1
	maxFriendLength = 25

	macedonianAlphabet = "абвгдѓежзѕијклљмнњопрстќуфхцчџш"
)

var (
	personPattern = regexp.MustCompile(`^[a-z0-9 ` + macedonianAlphabet + `]*$`)
	friendPattern = regexp.MustCompile(`^[a-z0-9 +` + macedonianAlphabet + `]*$`)
)

// NormalizeName lowercases name and collapses every whitespace run to a
// single space, trimming both ends.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// ValidateNames normalizes the raw names and applies the entry rules in
// order, returning the first violation as a *domain.ValidationError.
func ValidateNames(person, friend *string) (string, domain.Friend, error) {
	if person == nil {
		return "", domain.NoFriend(), &domain.ValidationError{Field: "person", Reason: domain.ReasonMissing}
	}

	normalizedPerson := NormalizeName(*person)
	if err := checkLength("person", normalizedPerson, minPersonLength, maxPersonLength); err != nil {
		return "", domain.NoFriend(), err
	}

	normalizedFriend := domain.SelfEntry
	if friend != nil {
		normalizedFriend = NormalizeName(*friend)
		if err := checkLength("friend", normalizedFriend, minFriendLength, maxFriendLength); err != nil {
			return "", domain.NoFriend(), err
		}
	}

	if !personPattern.MatchString(normalizedPerson) {
		return "", domain.NoFriend(), &domain.ValidationError{Field: "person", Reason: domain.ReasonInvalidCharacters}
	}

	if normalizedFriend != domain.SelfEntry && !friendPattern.MatchString(normalizedFriend) {
		return "", domain.NoFriend(), &domain.ValidationError{Field: "friend", Reason: domain.ReasonInvalidCharacters}
	}

	return normalizedPerson, domain.FriendNamed(normalizedFriend), nil
}

func checkLength(field, value string, minLen, maxLen int) error {
	n := utf8.RuneCountInString(value)
	if n < minLen {
		return &domain.ValidationError{Field: field, Reason: domain.ReasonTooShort}
	}
	if n > maxLen {
		return &domain.ValidationError{Field: field, Reason: domain.ReasonTooLong}
	}
	return nil
}

package usecase

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	domainErrors "github.com/omarsel/flashmart/internal/domain/errors"
	"github.com/omarsel/flashmart/internal/domain/model"
)

var classLabelPattern = regexp.MustCompile(`^[0-9]{1,2}[A-Z]?$`)

// ValidateBuyerName accepts trimmed names of 2-100 characters restricted to
// letters, spaces, apostrophes and hyphens.
func ValidateBuyerName(name string) error {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		return domainErrors.ValidationError{Field: "buyer_name", Reason: "must be 2-100 characters"}
	}
	for _, r := range name {
		if unicode.IsLetter(r) || r == ' ' || r == '\'' || r == '-' {
			continue
		}
		return domainErrors.ValidationError{Field: "buyer_name", Reason: "only letters, spaces, apostrophes and hyphens allowed"}
	}
	return nil
}

// ValidateClassLabel accepts class labels like "9" or "10A": one or two
// digits optionally followed by one uppercase letter.
func ValidateClassLabel(label string) error {
	label = strings.TrimSpace(label)
	if n := len(label); n < 1 || n > 20 {
		return domainErrors.ValidationError{Field: "class_label", Reason: "must be 1-20 characters"}
	}
	if !classLabelPattern.MatchString(label) {
		return domainErrors.ValidationError{Field: "class_label", Reason: "must be 1-2 digits optionally followed by one uppercase letter"}
	}
	return nil
}

// ValidateStudentNumber accepts 1-10 digits.
func ValidateStudentNumber(number string) error {
	number = strings.TrimSpace(number)
	if n := len(number); n < 1 || n > 10 {
		return domainErrors.ValidationError{Field: "student_number", Reason: "must be 1-10 digits"}
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return domainErrors.ValidationError{Field: "student_number", Reason: "digits only"}
		}
	}
	return nil
}

// ValidateCheckout runs all field validators in form order and returns the
// request with trimmed fields. The first violated rule aborts validation.
func ValidateCheckout(req model.CheckoutRequest) (model.CheckoutRequest, error) {
	if err := ValidateBuyerName(req.BuyerName); err != nil {
		return req, err
	}
	if err := ValidateClassLabel(req.ClassLabel); err != nil {
		return req, err
	}
	if err := ValidateStudentNumber(req.StudentNumber); err != nil {
		return req, err
	}

	req.BuyerName = strings.TrimSpace(req.BuyerName)
	req.ClassLabel = strings.TrimSpace(req.ClassLabel)
	req.StudentNumber = strings.TrimSpace(req.StudentNumber)
	return req, nil
}

package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// INE pattern - letter N followed by exactly 11 digits
	InePattern = `^N\d{11}$`

	// Name pattern - letters including accented characters
	NamePattern = `^[A-Za-zÀ-ÖØ-öø-ÿ]+$`

	// Filiere pattern - letters including accented characters and spaces
	FilierePattern = `^[A-Za-zÀ-ÖØ-öø-ÿ ]+$`

	// Phone pattern - 8 to 15 digits
	PhonePattern = `^\d{8,15}$`

	// Email pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Name/filiere length bounds
	NameMinLength = 2
	NameMaxLength = 50

	// Age bounds
	AgeMin = 12
	AgeMax = 99

	// Password min length on registration
	PasswordMinLength = 6
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Ine     *regexp.Regexp
	Name    *regexp.Regexp
	Filiere *regexp.Regexp
	Phone   *regexp.Regexp
	Email   *regexp.Regexp
}{
	Ine:     regexp.MustCompile(InePattern),
	Name:    regexp.MustCompile(NamePattern),
	Filiere: regexp.MustCompile(FilierePattern),
	Phone:   regexp.MustCompile(PhonePattern),
	Email:   regexp.MustCompile(EmailPattern),
}

// IsIneValid reports whether a string is a well-formed INE
// (letter N followed by exactly 11 digits).
func IsIneValid(ine string) bool {
	return CompiledPatterns.Ine.MatchString(ine)
}

// IsNameValid reports whether a name (nom, prénom) is well formed:
// letters only, accents allowed, length between 2 and 50 runes.
func IsNameValid(name string) bool {
	if !lengthBetween(name, NameMinLength, NameMaxLength) {
		return false
	}
	return CompiledPatterns.Name.MatchString(name)
}

// IsFiliereValid reports whether a filière label is well formed:
// letters and spaces, accents allowed, length between 2 and 50 runes.
func IsFiliereValid(filiere string) bool {
	if !lengthBetween(filiere, NameMinLength, NameMaxLength) {
		return false
	}
	return CompiledPatterns.Filiere.MatchString(filiere)
}

// IsAgeValid reports whether an age is within the accepted range.
func IsAgeValid(age int) bool {
	return age >= AgeMin && age <= AgeMax
}

// IsPhoneValid reports whether a phone number is 8 to 15 digits.
func IsPhoneValid(phone string) bool {
	return CompiledPatterns.Phone.MatchString(phone)
}

// IsSexeValid reports whether a sex value is exactly M or F.
func IsSexeValid(sexe string) bool {
	return sexe == "M" || sexe == "F"
}

// IsEmailValid reports whether an email address is well formed.
func IsEmailValid(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

func lengthBetween(s string, min, max int) bool {
	n := len([]rune(s))
	return n >= min && n <= max
}

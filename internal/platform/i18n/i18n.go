// Package i18n provides localized copy and formatting helpers.
package i18n

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// DefaultTag is the locale used when none is configured.
var DefaultTag = language.MustParse("pt-BR")

// ParseTag normalizes a configured locale string to a supported tag.
// Unparseable or unsupported values fall back to the default locale.
func ParseTag(value string) language.Tag {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag
	}
	return tag
}

func isPortuguese(tag language.Tag) bool {
	if tag == language.MustParse("pt-BR") {
		return true
	}
	base, _ := tag.Base()
	portugueseBase, _ := language.Portuguese.Base()
	return base == portugueseBase
}

var monthsPTBR = [...]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

var monthsEN = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// JoinLabel formats a join timestamp as a short month-and-year membership
// label for the provided locale.
func JoinLabel(joined time.Time, tag language.Tag) string {
	if joined.IsZero() {
		return ""
	}
	month := int(joined.Month()) - 1
	if isPortuguese(tag) {
		return fmt.Sprintf("Membro desde %s %d", monthsPTBR[month], joined.Year())
	}
	return fmt.Sprintf("Member since %s %d", monthsEN[month], joined.Year())
}

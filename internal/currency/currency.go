package currency

import (
	"sort"
	"strings"
)

// DefaultCode is returned for currency ids the table does not know
const DefaultCode = "USD"

var codes = map[int]string{
	1: "EUR",
	2: "USD",
	9: "GBP",
}

// CodeOf returns the three-letter code for a wallet API currency id
func CodeOf(id int) string {
	if code, ok := codes[id]; ok {
		return code
	}
	return DefaultCode
}

// IdOf returns the currency id for a code, matching case-insensitively
func IdOf(code string) (int, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for id, c := range codes {
		if c == code {
			return id, true
		}
	}
	return 0, false
}

// Codes lists the supported currency codes in alphabetical order
func Codes() []string {
	list := make([]string, 0, len(codes))
	for _, c := range codes {
		list = append(list, c)
	}
	sort.Strings(list)
	return list
}

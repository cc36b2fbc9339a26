package deeplink

import (
	"net/url"
	"strings"
)

const (
	Scheme = "native-teams-wallet"

	ScreenTransactionDetails = "TransactionDetails"

	txHost = "tx"
)

// Target is the screen a deep link opens
type Target struct {
	Screen string
	Id     string
}

// Parse resolves "native-teams-wallet://tx/{id}" and any URL whose path
// contains "/tx/{id}". Other links return false.
func Parse(raw string) (Target, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, false
	}

	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })

	if u.Host == txHost && len(segments) > 0 {
		return Target{Screen: ScreenTransactionDetails, Id: segments[0]}, true
	}

	for i, seg := range segments {
		if seg == txHost && i+1 < len(segments) {
			return Target{Screen: ScreenTransactionDetails, Id: segments[i+1]}, true
		}
	}

	return Target{}, false
}

// Create builds the link for a screen. Only transaction details carry an id.
func Create(screen, id string) string {
	if screen == ScreenTransactionDetails && id != "" {
		return ForTransaction(id)
	}
	return Scheme + "://" + screen
}

func ForTransaction(id string) string {
	return Scheme + "://" + txHost + "/" + url.PathEscape(id)
}

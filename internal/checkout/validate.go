package checkout

import (
	"strings"
	"unicode"

	"storefront-orders/internal/domain"
	"storefront-orders/internal/i18n"
)

// FormInput carries the raw checkout form fields as entered by the user.
type FormInput struct {
	FullName string
	Phone    string
	City     string
	Notes    string
}

// validate checks the form and cart snapshot before any network activity.
// Order is fixed (name, phone, city, cart) and short-circuits on the first
// failure, so at most one rejection key is ever surfaced per attempt.
func validate(in FormInput, items []domain.CartItem) (string, bool) {
	if strings.TrimSpace(in.FullName) == "" {
		return i18n.KeyNameRequired, false
	}
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return i18n.KeyPhoneRequired, false
	}
	if !validPhone(phone) {
		return i18n.KeyPhoneInvalid, false
	}
	if strings.TrimSpace(in.City) == "" {
		return i18n.KeyCityRequired, false
	}
	if len(items) == 0 {
		return i18n.KeyCartEmpty, false
	}
	return "", true
}

// validPhone accepts digits, '+', '-' and whitespace only.
func validPhone(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '+' || r == '-':
		case unicode.IsSpace(r):
		default:
			return false
		}
	}
	return true
}

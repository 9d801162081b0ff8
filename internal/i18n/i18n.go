// Package i18n resolves user-facing message keys, falling back to fixed
// default strings when no localization source is wired in.
package i18n

// Lookup resolves a message key to a localized string. An empty result means
// the key is unknown to the source.
type Lookup func(key string) string

// Message keys used by the submission flow.
const (
	KeyNameRequired  = "checkout.name_required"
	KeyPhoneRequired = "checkout.phone_required"
	KeyPhoneInvalid  = "checkout.phone_invalid"
	KeyCityRequired  = "checkout.city_required"
	KeyCartEmpty     = "checkout.cart_empty"
	KeyOrderAccepted = "checkout.order_accepted"
	KeyOrderFailed   = "checkout.order_failed"
)

var defaults = map[string]string{
	KeyNameRequired:  "Please enter your full name.",
	KeyPhoneRequired: "Please enter your phone number.",
	KeyPhoneInvalid:  "Phone number may only contain digits, spaces, + and -.",
	KeyCityRequired:  "Please enter your city.",
	KeyCartEmpty:     "Your cart is empty.",
	KeyOrderAccepted: "Thank you! Your order has been received.",
	KeyOrderFailed:   "We could not send your order. Please check your connection and try again.",
}

// Resolve returns lookup(key) when a lookup is wired and knows the key, and
// the fixed default otherwise.
func Resolve(lookup Lookup, key string) string {
	if lookup != nil {
		if s := lookup(key); s != "" {
			return s
		}
	}
	return defaults[key]
}

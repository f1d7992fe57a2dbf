package domain

// ProductIDLength is the length of the marketplace backend's listing identifiers
// (hex encoded 12 byte object ids).
const ProductIDLength = 24

// ValidProductID reports whether id has the backend identifier format. Carts holding
// other ids make order creation fail upstream, so such lines never enter a cart.
func ValidProductID(id string) bool {
	if len(id) != ProductIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

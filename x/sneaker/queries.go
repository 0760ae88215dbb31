package sneaker

// Precomputed interface signatures for the capability introspection call.
// The values are the canonical 4 byte codes of the introspection standard
// itself and of the ownership protocol this registry implements.
var (
	sigIntrospection = [4]byte{0x01, 0xff, 0xc9, 0xa7}
	sigOwnership     = [4]byte{0x9a, 0x20, 0x48, 0x3d}
)

// SupportsInterface reports whether this registry implements the protocol
// identified by the given 4 byte signature. This is a pure check with no
// state access.
func SupportsInterface(signature [4]byte) bool {
	return signature == sigIntrospection || signature == sigOwnership
}

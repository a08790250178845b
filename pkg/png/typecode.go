package png

import "fmt"

// TypeCode is the 4-byte chunk type. The case of each byte carries one
// property bit (bit 5 of the byte):
//
//	byte 0: uppercase = critical,  lowercase = ancillary
//	byte 1: uppercase = public,    lowercase = private
//	byte 2: uppercase = reserved bit valid (must be uppercase)
//	byte 3: uppercase = unsafe to copy, lowercase = safe to copy
type TypeCode [4]byte

// Standard chunk types.
var (
	IHDR = TypeCode{'I', 'H', 'D', 'R'}
	PLTE = TypeCode{'P', 'L', 'T', 'E'}
	IDAT = TypeCode{'I', 'D', 'A', 'T'}
	IEND = TypeCode{'I', 'E', 'N', 'D'}
	TEXT = TypeCode{'t', 'E', 'X', 't'}
)

// ParseTypeCode builds a TypeCode from its 4-letter text form.
func ParseTypeCode(s string) (TypeCode, error) {
	if len(s) != 4 {
		return TypeCode{}, fmt.Errorf("%w: %q must be 4 bytes long", ErrInvalidTypeCode, s)
	}
	var b [4]byte
	copy(b[:], s)
	return TypeCodeFromBytes(b)
}

// TypeCodeFromBytes builds a TypeCode from raw bytes. Every byte must be an
// ASCII letter, the same rule ParseTypeCode applies.
func TypeCodeFromBytes(b [4]byte) (TypeCode, error) {
	for i, c := range b {
		if !isASCIILetter(c) {
			return TypeCode{}, fmt.Errorf("%w: byte %d (%#02x) is not an ASCII letter", ErrInvalidTypeCode, i, c)
		}
	}
	return TypeCode(b), nil
}

// MustTypeCode is like ParseTypeCode but panics on invalid input.
func MustTypeCode(s string) TypeCode {
	t, err := ParseTypeCode(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Bytes returns the four raw type bytes.
func (t TypeCode) Bytes() [4]byte {
	return t
}

// String returns the type code as text, e.g. "IHDR".
func (t TypeCode) String() string {
	return string(t[:])
}

// IsCritical reports whether the ancillary bit is clear (first letter upper case).
func (t TypeCode) IsCritical() bool {
	return isUpper(t[0])
}

// IsPublic reports whether the private bit is clear (second letter upper case).
func (t TypeCode) IsPublic() bool {
	return isUpper(t[1])
}

// IsReservedBitValid reports whether the third letter is upper case.
func (t TypeCode) IsReservedBitValid() bool {
	return isUpper(t[2])
}

// IsSafeToCopy reports whether the fourth letter is lower case.
func (t TypeCode) IsSafeToCopy() bool {
	return isLower(t[3])
}

// IsValid reports whether all bytes are ASCII letters and the reserved bit is
// valid. A zero TypeCode is not valid.
func (t TypeCode) IsValid() bool {
	for _, c := range t {
		if !isASCIILetter(c) {
			return false
		}
	}
	return t.IsReservedBitValid()
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

func isASCIILetter(c byte) bool {
	return isUpper(c) || isLower(c)
}

package png

import (
	"errors"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

func TestTypeCodeFromBytes(t *testing.T) {
	t.Parallel()

	got, err := TypeCodeFromBytes([4]byte{82, 117, 83, 116})
	require.NoError(t, err)
	require.Equal(t, [4]byte{82, 117, 83, 116}, got.Bytes())

	fromText, err := ParseTypeCode("RuSt")
	require.NoError(t, err)
	require.Equal(t, got, fromText)
	require.Equal(t, "RuSt", got.String())
}

func TestParseTypeCodeRejects(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "Rus", "RuStt", "Ru1t", "Ru t", "RuS\xff", "Ru\x00t"} {
		_, err := ParseTypeCode(in)
		if !errors.Is(err, ErrInvalidTypeCode) {
			t.Fatalf("ParseTypeCode(%q): got %v want ErrInvalidTypeCode", in, err)
		}
	}

	// Non-letter ASCII is rejected from raw bytes too.
	_, err := TypeCodeFromBytes([4]byte{'R', 'u', '1', 't'})
	require.ErrorIs(t, err, ErrInvalidTypeCode)
	_, err = TypeCodeFromBytes([4]byte{'R', 'u', 'S', 0x80})
	require.ErrorIs(t, err, ErrInvalidTypeCode)
}

func TestMustTypeCodePanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { MustTypeCode("R2D2") })
	require.Equal(t, TEXT, MustTypeCode("tEXt"))
}

func TestTypeCodeProperties(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code       string
		critical   bool
		public     bool
		reserved   bool
		safeToCopy bool
		valid      bool
	}{
		{"RuSt", true, false, true, true, true},
		{"ruSt", false, false, true, true, true},
		{"RUSt", true, true, true, true, true},
		{"Rust", true, false, false, true, false},
		{"RuST", true, false, true, false, true},
		{"IHDR", true, true, true, false, true},
		{"tEXt", false, true, true, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			typ := MustTypeCode(tc.code)
			require.Equal(t, tc.critical, typ.IsCritical(), "critical")
			require.Equal(t, tc.public, typ.IsPublic(), "public")
			require.Equal(t, tc.reserved, typ.IsReservedBitValid(), "reserved bit")
			require.Equal(t, tc.safeToCopy, typ.IsSafeToCopy(), "safe to copy")
			require.Equal(t, tc.valid, typ.IsValid(), "valid")
		})
	}
}

func TestTypeCodeValidityRandomQuads(t *testing.T) {
	t.Parallel()

	letter := func(c byte) bool { return (c|0x20) >= 'a' && (c|0x20) <= 'z' }

	f := fuzz.NewWithSeed(1).NilChance(0)
	for i := 0; i < 20000; i++ {
		var raw [4]byte
		f.Fuzz(&raw)
		// Bias half the samples towards letters so both branches get exercised.
		if i%2 == 0 {
			for j := range raw {
				raw[j] = "AaZzMmQqbB"[int(raw[j])%10]
			}
		}

		allLetters := letter(raw[0]) && letter(raw[1]) && letter(raw[2]) && letter(raw[3])
		want := allLetters && raw[2] >= 'A' && raw[2] <= 'Z'
		if got := TypeCode(raw).IsValid(); got != want {
			t.Fatalf("IsValid(%q): got %v want %v", raw[:], got, want)
		}

		_, err := TypeCodeFromBytes(raw)
		if allLetters && err != nil {
			t.Fatalf("TypeCodeFromBytes(%q): unexpected error %v", raw[:], err)
		}
		if !allLetters && !errors.Is(err, ErrInvalidTypeCode) {
			t.Fatalf("TypeCodeFromBytes(%q): got %v want ErrInvalidTypeCode", raw[:], err)
		}
	}
}

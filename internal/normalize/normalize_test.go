package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlate_EquivalenceClasses(t *testing.T) {
	want := "3A-1111"
	for _, raw := range []string{
		"3a 1111",
		"3A.1111",
		"3A-1111",
		" 3a_1111 ",
		"3a//1111",
		"3A:1111",
		"3a;1111",
		`3a\1111`,
		"-3A--1111-",
	} {
		assert.Equal(t, want, Plate(raw), "raw=%q", raw)
	}
}

func TestPlate_Idempotent(t *testing.T) {
	inputs := []string{"3a 1111", "PP-04-KH 9999", "  ", "кх 123", "3a . _ 1111"}
	for _, raw := range inputs {
		once := Plate(raw)
		assert.Equal(t, once, Plate(once), "raw=%q", raw)
	}
}

func TestPlate_Empty(t *testing.T) {
	assert.Equal(t, "", Plate(""))
	assert.Equal(t, "", Plate("  .-_  "))
}

func TestText_StripsInvisibleRunes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"zero width space", "Pi​pe", "Pipe"},
		{"zero width joiner", "Co‍il", "Coil"},
		{"variation selector", "Roofing️", "Roofing"},
		{"whitespace runs", "  Pipe   and   Coil ", "Pipe and Coil"},
		{"clean passthrough", "Trading", "Trading"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Text(tc.raw))
		})
	}
}

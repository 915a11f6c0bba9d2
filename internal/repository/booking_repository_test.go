package repository

import (
	"reflect"
	"testing"
)

func TestParseSeatIDs(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []uint64
	}{
		{"json array", "[12,34,56]", []uint64{12, 34, 56}},
		{"json array with spaces", "[12, 34, 56]", []uint64{12, 34, 56}},
		{"csv", "12,34,56", []uint64{12, 34, 56}},
		{"bracketed csv with spaces", "[ 12, 34 ,56 ]", []uint64{12, 34, 56}},
		{"single id", "7", []uint64{7}},
		{"trailing comma", "12,34,", []uint64{12, 34}},
		{"empty string", "", nil},
		{"whitespace only", "   ", nil},
		{"empty brackets", "[]", []uint64{}},
		{"non-numeric", "A1,B2", nil},
		{"mixed garbage", "[12,oops]", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseSeatIDs(tc.raw)
			if len(got) == 0 && len(tc.want) == 0 {
				if (got == nil) != (tc.want == nil) {
					t.Errorf("ParseSeatIDs(%q) nil-ness = %v, want %v", tc.raw, got == nil, tc.want == nil)
				}
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseSeatIDs(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

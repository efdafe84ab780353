package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in    string
		cents uint32
	}{
		{"10", 1000},
		{"10.5", 1050},
		{"10.50", 1050},
		{"0.05", 5},
		{" 12.00 ", 1200},
	}
	for _, c := range cases {
		got, err := ParsePrice(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.cents, got, c.in)
	}
}

func TestParsePriceRejects(t *testing.T) {
	for _, in := range []string{"", "-1", "10.505", "10.", "ten", "1,50"} {
		_, err := ParsePrice(in)
		assert.Error(t, err, in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "10.00", FormatPrice(1000))
	assert.Equal(t, "10.05", FormatPrice(1005))
	assert.Equal(t, "0.99", FormatPrice(99))
}

func TestPriceRoundTrip(t *testing.T) {
	for _, cents := range []uint32{0, 1, 99, 100, 1050, 123456} {
		got, err := ParsePrice(FormatPrice(cents))
		require.NoError(t, err)
		assert.Equal(t, cents, got)
	}
}

func TestSeatListRoundTrip(t *testing.T) {
	assert.Equal(t, "A1,A2,B3", JoinSeats([]string{"A1", "A2", "B3"}))
	assert.Equal(t, []string{"A1", "A2", "B3"}, SplitSeats("A1,A2,B3"))
	assert.Nil(t, SplitSeats(""))
}

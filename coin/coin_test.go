package coin

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/iov-one/barter/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinArithmetic(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		add     bool
		want    Coin
		wantErr *errors.Error
	}{
		"add": {
			a: NewCoin(40, "MCK"), b: NewCoin(2, "MCK"), add: true,
			want: NewCoin(42, "MCK"),
		},
		"add overflow": {
			a: NewCoin(math.MaxUint64, "MCK"), b: NewCoin(1, "MCK"), add: true,
			wantErr: errors.ErrOverflow,
		},
		"add different mints": {
			a: NewCoin(1, "MCK"), b: NewCoin(1, "NCK"), add: true,
			wantErr: errors.ErrCurrency,
		},
		"subtract": {
			a: NewCoin(100, "MCK"), b: NewCoin(40, "MCK"),
			want: NewCoin(60, "MCK"),
		},
		"subtract to zero": {
			a: NewCoin(5, "NCK"), b: NewCoin(5, "NCK"),
			want: NewCoin(0, "NCK"),
		},
		"subtract too much": {
			a: NewCoin(5, "NCK"), b: NewCoin(10, "NCK"),
			wantErr: errors.ErrInsufficientAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var (
				got Coin
				err error
			)
			if tc.add {
				got, err = tc.a.Add(tc.b)
			} else {
				got, err = tc.a.Subtract(tc.b)
			}
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseCoin(t *testing.T) {
	c, err := ParseCoin("40 MCK")
	require.NoError(t, err)
	assert.Equal(t, NewCoin(40, "MCK"), c)
	assert.Equal(t, "40 MCK", c.String())

	_, err = ParseCoin("40")
	assert.True(t, errors.ErrInput.Is(err))
	_, err = ParseCoin("-1 MCK")
	assert.True(t, errors.ErrAmount.Is(err))
	_, err = ParseCoin("1 mck")
	assert.True(t, errors.ErrCurrency.Is(err))
}

func TestCoinJSON(t *testing.T) {
	raw, err := json.Marshal(NewCoin(7, "NCK"))
	require.NoError(t, err)
	assert.Equal(t, `"7 NCK"`, string(raw))

	var c Coin
	require.NoError(t, json.Unmarshal(raw, &c))
	assert.Equal(t, NewCoin(7, "NCK"), c)
}

func TestCoinFormat(t *testing.T) {
	assert.Equal(t, "12.34 MCK", NewCoin(1234, "MCK").Format(2))
	assert.Equal(t, "0.05 MCK", NewCoin(5, "MCK").Format(2))
	assert.Equal(t, "0.000 MCK", NewCoin(0, "MCK").Format(3))
	assert.Equal(t, "9 MCK", NewCoin(9, "MCK").Format(0))
}

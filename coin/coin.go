/*
Package coin defines the asset amounts moved by the ledger. A coin is an
amount of indivisible base units of a single mint, identified by its ticker.
Display scaling by the mint decimals is a presentation concern and never
affects stored amounts.
*/
package coin

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/iov-one/barter/errors"
)

// IsCC is the RegExp to ensure valid currency codes
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// Coin is an amount of a single mint.
type Coin struct {
	Ticker string
	Amount uint64
}

// NewCoin creates a new coin object
func NewCoin(amount uint64, ticker string) Coin {
	return Coin{
		Ticker: ticker,
		Amount: amount,
	}
}

// Validate ensures that the ticker is a valid currency code.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", c.Ticker)
	}
	return nil
}

// IsZero returns true if the amount is zero.
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// SameType returns true if both coins are of the same mint.
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Add returns the sum of two coins of the same mint.
func (c Coin) Add(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Ticker, c.Ticker)
	}
	sum, err := Add(c.Amount, o.Amount)
	if err != nil {
		return Coin{}, err
	}
	return NewCoin(sum, c.Ticker), nil
}

// Subtract returns the difference of two coins of the same mint. Going below
// zero fails with ErrInsufficientAmount.
func (c Coin) Subtract(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "subtracting %s from %s", o.Ticker, c.Ticker)
	}
	diff, err := Sub(c.Amount, o.Amount)
	if err != nil {
		return Coin{}, err
	}
	return NewCoin(diff, c.Ticker), nil
}

// String returns a human readable representation, for example "40 MCK".
func (c Coin) String() string {
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

// Format returns the amount scaled by given decimals, for example 1234 with
// 2 decimals is "12.34 MCK".
func (c Coin) Format(decimals int) string {
	if decimals <= 0 {
		return c.String()
	}
	raw := strconv.FormatUint(c.Amount, 10)
	if len(raw) <= decimals {
		raw = strings.Repeat("0", decimals-len(raw)+1) + raw
	}
	whole, frac := raw[:len(raw)-decimals], raw[len(raw)-decimals:]
	return fmt.Sprintf("%s.%s %s", whole, frac, c.Ticker)
}

// ParseCoin parses the "<amount> <ticker>" representation.
func ParseCoin(s string) (Coin, error) {
	chunks := strings.Fields(s)
	if len(chunks) != 2 {
		return Coin{}, errors.Wrapf(errors.ErrInput, "coin %q", s)
	}
	amount, err := strconv.ParseUint(chunks[0], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrAmount, "coin %q: %s", s, err)
	}
	c := NewCoin(amount, chunks[1])
	if err := c.Validate(); err != nil {
		return Coin{}, err
	}
	return c, nil
}

// MarshalJSON uses the human readable representation.
func (c Coin) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts the human readable representation.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrapf(errors.ErrInput, "coin: %s", err)
	}
	parsed, err := ParseCoin(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Add returns a + b or ErrOverflow.
func Add(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return a + b, nil
}

// Sub returns a - b or ErrInsufficientAmount if b is greater than a.
func Sub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, errors.Wrapf(errors.ErrInsufficientAmount, "%d is less than %d", a, b)
	}
	return a - b, nil
}

package numgen

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/ShiraazMoollatjie/goluhn"
)

const (
	accountNumberLength = 16
	balanceSeqLength    = 4
	codeLength          = 6
)

// Generator produces account numbers and confirmation codes. The
// randomness source is injected so tests can supply a deterministic
// digit stream; production uses crypto/rand.
type Generator struct {
	src io.Reader
}

func New() *Generator {
	return &Generator{src: rand.Reader}
}

func NewWithSource(src io.Reader) *Generator {
	return &Generator{src: src}
}

func (g *Generator) digits(n int) (string, error) {
	buf := make([]byte, 0, n)
	b := make([]byte, 1)
	for len(buf) < n {
		if _, err := io.ReadFull(g.src, b); err != nil {
			return "", fmt.Errorf("read random digits: %w", err)
		}
		// reject the tail of the byte range to keep digits uniform
		if b[0] >= 250 {
			continue
		}
		buf = append(buf, '0'+b[0]%10)
	}
	return string(buf), nil
}

// AccountNumber returns 15 random digits plus a Luhn check digit,
// 16 digits total.
func (g *Generator) AccountNumber() (string, error) {
	body, err := g.digits(accountNumberLength - 1)
	if err != nil {
		return "", err
	}
	_, number, err := goluhn.Calculate(body)
	if err != nil {
		return "", fmt.Errorf("calculate check digit: %w", err)
	}
	return number, nil
}

// BalanceNumber appends the zero-padded sequence to the account number,
// 20 digits total.
func BalanceNumber(accountNumber string, sequence int) string {
	return fmt.Sprintf("%s%0*d", accountNumber, balanceSeqLength, sequence)
}

// ConfirmationCode returns a 6-digit one-time code.
func (g *Generator) ConfirmationCode() (string, error) {
	return g.digits(codeLength)
}

package applicant

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	codeMin  = 100000
	codeSpan = 900000
)

// CodeGenerator returns a six digit verification code.
type CodeGenerator func() (string, error)

// RandomCode draws uniformly from [100000, 999999].
func RandomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

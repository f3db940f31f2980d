package idhash

import (
	"crypto/sha256"
	"math/big"
	"strings"

	"github.com/jxskiss/base62"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// IdHash hashes a string with sha256, takes the first 119 bits and
// converts that to base62. Returns a 20-character long string that is
// stable across restarts, so it can be used in URLs.
func IdHash(name string) string {
	hash256 := sha256.Sum256([]byte(name))

	num := new(big.Int).SetBytes(hash256[:16])
	num.Rsh(num, 9)

	const62 := big.NewInt(62)
	mod := new(big.Int)

	var id strings.Builder
	for i := 0; i < 20; i++ {
		num.DivMod(num, const62, mod)
		id.WriteByte(idAlphabet[mod.Int64()])
	}
	return id.String()
}

// Hash returns a base62-encoded id, based upon sha256 of string.
func Hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return base62.StdEncoding.EncodeToString(sum[:16])
}

// Encapsulate Stellar's keypair package
//
// Council members and room owners are identified by stellar public
// addresses; the CLI signs in with a secret seed.
package keypair

import (
	stellar "github.com/stellar/go/keypair"
)

// Aliases to stellar types
type Full = stellar.Full
type FromAddress = stellar.FromAddress
type KP = stellar.KP

// Aliases to stellar functions
var Parse = stellar.Parse
var RandomCanFail = stellar.Random

// IsAddress checks that `s` is a public address, not a seed.
func IsAddress(s string) bool {
	kp, err := Parse(s)
	if err != nil {
		return false
	}

	_, ok := kp.(*FromAddress)
	return ok
}

// ParseSeed returns the full keypair of the secret seed.
func ParseSeed(seed string) (*Full, bool) {
	kp, err := Parse(seed)
	if err != nil {
		return nil, false
	}

	full, ok := kp.(*Full)
	return full, ok
}

package iotamodel

import "strings"

// Direction is one of the six angles a pattern can turn at each step.
type Direction byte

const (
	Q Direction = 'q' // north-west
	A Direction = 'a' // west
	S Direction = 's' // south-west (start-only, never a turn)
	D Direction = 'd' // east
	E Direction = 'e' // north-east
	W Direction = 'w' // north
)

// validDirections is used to validate a signature string parsed from
// source or config.
var validDirections = map[byte]bool{'q': true, 'a': true, 's': true, 'd': true, 'e': true, 'w': true}

// Signature is the ordered sequence of turns that draws a pattern.
type Signature string

// ParseSignature validates that s contains only {q,a,s,d,e,w} and
// returns it as a Signature.
func ParseSignature(s string) (Signature, bool) {
	for i := 0; i < len(s); i++ {
		if !validDirections[s[i]] {
			return "", false
		}
	}
	return Signature(strings.ToLower(s)), true
}

func (s Signature) String() string { return string(s) }

// Equal is signature equality, used both by the registry lookup and by
// Pattern.Tolerates.
func (s Signature) Equal(other Signature) bool { return s == other }

// Reserved internal names for the bracket machinery; their signatures
// are fixed regardless of any Great_Spells override, since overriding
// quote/unquote would break every compiled program's bracket balance.
const (
	OpenParenSignature  Signature = "qqq"
	CloseParenSignature Signature = "eee"
)

package utils

import (
	"crypto/rand"
)

// Alphabet for human-facing order numbers. 0/O, 1/I and similar pairs are
// excluded so the code survives being read over the phone.
const orderNumberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const OrderNumberLength = 8

// GenerateOrderNumber returns a random 8-character order code.
func GenerateOrderNumber() string {
	b := make([]byte, OrderNumberLength)
	rand.Read(b)
	out := make([]byte, OrderNumberLength)
	for i := range b {
		out[i] = orderNumberAlphabet[int(b[i])%len(orderNumberAlphabet)]
	}
	return string(out)
}

package loyalty

import (
	"crypto/rand"
	"fmt"
)

// Gift codes share the ticket alphabet so printed vouchers stay unambiguous.
const (
	giftCodePrefix      = "GIFT-"
	giftCodeLength      = 6
	giftCodeAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	maxGiftCodeAttempts = 10
)

func randomGiftCode() (string, error) {
	buf := make([]byte, giftCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating gift code: %w", err)
	}
	out := make([]byte, giftCodeLength)
	for i, b := range buf {
		out[i] = giftCodeAlphabet[int(b)%len(giftCodeAlphabet)]
	}
	return giftCodePrefix + string(out), nil
}

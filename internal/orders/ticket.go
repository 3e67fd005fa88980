package orders

import (
	"context"
	"crypto/rand"
	"fmt"
)

// ticketAlphabet avoids 0/O/1/I so printed tickets stay unambiguous.
const (
	ticketAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	ticketLength      = 6
	maxTicketAttempts = 10
)

type ticketChecker interface {
	TicketExists(ctx context.Context, ticket string) (bool, error)
}

// newTicket draws random tickets until one is unused.
func newTicket(ctx context.Context, repo ticketChecker) (string, error) {
	for attempt := 0; attempt < maxTicketAttempts; attempt++ {
		candidate, err := randomTicket()
		if err != nil {
			return "", err
		}
		exists, err := repo.TicketExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("checking ticket uniqueness: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("exhausted %d ticket attempts", maxTicketAttempts)
}

func randomTicket() (string, error) {
	buf := make([]byte, ticketLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating ticket: %w", err)
	}
	out := make([]byte, ticketLength)
	for i, b := range buf {
		out[i] = ticketAlphabet[int(b)%len(ticketAlphabet)]
	}
	return string(out), nil
}

// qrRef is the stable reference encoded into the printed QR artifact.
func qrRef(ticket string) string {
	return "order_" + ticket
}

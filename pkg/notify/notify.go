// Package notify decides whether an extracted price warrants an alert and
// delivers it by email.
package notify

import (
	"bytes"
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"pricewatch/pkg/scraper"
)

const subject = "Price decrease on product you're watching!"

// Outcome reports what a run did with an extracted snapshot.
type Outcome int

const (
	// OutcomeNoDrop means the price was above target; nothing was sent.
	OutcomeNoDrop Outcome = iota
	// OutcomeNotified means the alert email was delivered.
	OutcomeNotified
	// OutcomeSendFailed means the alert was attempted but delivery failed.
	// The run still counts as complete.
	OutcomeSendFailed
)

type Notifier struct {
	sender     Sender
	from       string
	recipient  string
	target     decimal.Decimal
	productURL string
	log        zerolog.Logger
}

func New(sender Sender, from, recipient string, target decimal.Decimal, productURL string, log zerolog.Logger) *Notifier {
	return &Notifier{
		sender:     sender,
		from:       from,
		recipient:  recipient,
		target:     target,
		productURL: productURL,
		log:        log,
	}
}

// Evaluate compares the snapshot price against the target and sends at most
// one email, when the price is at or below target. Delivery failure is
// logged and does not fail the run; there is no send retry.
func (n *Notifier) Evaluate(ctx context.Context, snap scraper.Snapshot) Outcome {
	if snap.Price.GreaterThan(n.target) {
		n.log.Info().
			Stringer("price", snap.Price).
			Stringer("target", n.target).
			Msg("no price drop, no email sent")
		return OutcomeNoDrop
	}

	msg, err := n.compose(snap)
	if err != nil {
		n.log.Error().Err(err).Msg("error composing email")
		return OutcomeSendFailed
	}

	if err := n.sender.Send(ctx, msg); err != nil {
		n.log.Error().Err(err).Msg("error sending email")
		return OutcomeSendFailed
	}

	n.log.Info().Str("recipient", n.recipient).Msg("email sent")
	return OutcomeNotified
}

func (n *Notifier) compose(snap scraper.Snapshot) (Message, error) {
	var body bytes.Buffer
	err := bodyTemplate.Execute(&body, struct {
		Name   string
		Price  string
		Target string
		URL    string
	}{
		Name:   snap.Name,
		Price:  snap.Price.String(),
		Target: n.target.String(),
		URL:    n.productURL,
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		From:    n.from,
		To:      n.recipient,
		Subject: subject,
		Body:    body.String(),
	}, nil
}

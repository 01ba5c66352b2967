/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package mail

import (
    "context"

    "github.com/HamedShams/jira-digest/internal/config"
    "github.com/rs/zerolog"
    gomail "github.com/wneessen/go-mail"
)

// DeliveryError wraps any transport failure while handing the report to SMTP.
type DeliveryError struct {
    Err error
}

func (e *DeliveryError) Error() string { return "mail delivery failed: " + e.Err.Error() }
func (e *DeliveryError) Unwrap() error { return e.Err }

type Client struct {
    host      string
    port      int
    user      string
    pass      string
    sender    string
    recipient string
    useTLS    bool
    log       zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
    return &Client{
        host:      cfg.SMTPHost,
        port:      cfg.SMTPPort,
        user:      cfg.SMTPUsername,
        pass:      cfg.SMTPPassword,
        sender:    cfg.SMTPSender,
        recipient: cfg.SMTPRecipient,
        useTLS:    cfg.SMTPUseTLS,
        log:       log,
    }
}

// Send delivers the HTML report with a plain-text alternative part for clients
// that cannot render HTML.
func (c *Client) Send(ctx context.Context, subject, htmlBody string) error {
    msg := gomail.NewMsg()
    if err := msg.From(c.sender); err != nil { return &DeliveryError{Err: err} }
    if err := msg.To(c.recipient); err != nil { return &DeliveryError{Err: err} }
    msg.Subject(subject)
    msg.SetBodyString(gomail.TypeTextPlain, "This report requires an HTML capable email client.")
    msg.AddAlternativeString(gomail.TypeTextHTML, htmlBody)

    policy := gomail.NoTLS
    if c.useTLS { policy = gomail.TLSMandatory }
    client, err := gomail.NewClient(c.host,
        gomail.WithPort(c.port),
        gomail.WithTLSPolicy(policy),
        gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
        gomail.WithUsername(c.user),
        gomail.WithPassword(c.pass),
    )
    if err != nil { return &DeliveryError{Err: err} }
    if err := client.DialAndSendWithContext(ctx, msg); err != nil {
        return &DeliveryError{Err: err}
    }
    c.log.Info().Str("to", c.recipient).Str("subject", subject).Msg("report email sent")
    return nil
}

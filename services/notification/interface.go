package notification

import (
	"context"
	"fmt"
	"strings"

	"resonance/models"
)

// Kind identifies the template a message was built from.
type Kind string

const (
	KindVerifyEmail    Kind = "verify-email"
	KindLoginOTP       Kind = "login-otp"
	KindNewEnquiry     Kind = "new-enquiry"
	KindOrderConfirmed Kind = "order-confirmed"
)

// Message is an outbound notification.
type Message struct {
	Kind    Kind              `json:"kind"`
	To      string            `json:"to"`
	Subject string            `json:"subject"`
	Body    string            `json:"body"`
	Data    map[string]string `json:"data,omitempty"`
}

// Notifier delivers a message to its recipient.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher hands a message off for delivery, inline or through a queue.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) error
}

// InlineDispatcher delivers on the caller's goroutine.
type InlineDispatcher struct {
	Notifier Notifier
}

func (d InlineDispatcher) Dispatch(ctx context.Context, msg Message) error {
	if d.Notifier == nil {
		return fmt.Errorf("inline dispatcher has no notifier")
	}
	return d.Notifier.Send(ctx, msg)
}

func VerificationMessage(email, code string) Message {
	return Message{
		Kind:    KindVerifyEmail,
		To:      email,
		Subject: "Verify your email",
		Body:    fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code),
		Data:    map[string]string{"otp": code},
	}
}

func LoginOTPMessage(email, code string) Message {
	return Message{
		Kind:    KindLoginOTP,
		To:      email,
		Subject: "Your sign-in code",
		Body:    fmt.Sprintf("Use %s to sign in. It expires in 10 minutes.", code),
		Data:    map[string]string{"otp": code},
	}
}

// NewEnquiryMessage tells the studio about a booking request.
func NewEnquiryMessage(adminEmail string, e models.Enquiry) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s, %s) requested a %s session", e.FullName, e.Email, e.Phone, e.SessionType)
	if e.Date != "" {
		fmt.Fprintf(&b, " on %s at %s", e.Date, e.Time)
	}
	b.WriteString(".")
	return Message{
		Kind:    KindNewEnquiry,
		To:      adminEmail,
		Subject: "New " + string(e.SessionType) + " enquiry",
		Body:    b.String(),
		Data:    map[string]string{"enquiryId": e.ID, "slotId": e.SlotID},
	}
}

func OrderConfirmedMessage(o models.Order) Message {
	return Message{
		Kind:    KindOrderConfirmed,
		To:      o.Email,
		Subject: "Order confirmed",
		Body:    fmt.Sprintf("Thank you. We received %s for order %s.", FormatAmount(o.Amount, o.Currency), o.ID),
		Data:    map[string]string{"orderId": o.ID},
	}
}

// FormatAmount renders minor units as a decimal amount, e.g. 123450 inr -> "INR 1234.50".
func FormatAmount(minor int64, currency string) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s %s%d.%02d", strings.ToUpper(currency), sign, minor/100, minor%100)
}

// Package reminder drives payment follow-up for unpaid invoices: WhatsApp and
// phone deep links built client-side, and email reminders delivered through
// the background worker.
package reminder

import (
	"fmt"
	"net/url"
	"strconv"
)

// messageTemplate is the exact reminder text customers receive. Changing it
// breaks parity between the WhatsApp and email channels.
const messageTemplate = "Hello %s,\n\nThis is a reminder to pay your outstanding invoice of ₹%s. Please make the payment at your earliest convenience."

// Message renders the reminder text for one customer. The amount is rendered
// with the minimal number of decimals (500 stays "500", 500.5 stays "500.5").
func Message(customerName string, remainingAmount float64) string {
	return fmt.Sprintf(messageTemplate, customerName, formatAmount(remainingAmount))
}

// WhatsAppLink builds a wa.me deep link that opens a chat with the reminder
// message pre-filled. The contact number is used verbatim; a malformed number
// produces a dead link, which is acceptable for this internal tool.
func WhatsAppLink(contactNumber, customerName string, remainingAmount float64) string {
	return "https://wa.me/" + contactNumber + "?text=" + url.QueryEscape(Message(customerName, remainingAmount))
}

// CallLink builds a tel: URI for the contact number.
func CallLink(contactNumber string) string {
	return "tel:" + contactNumber
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

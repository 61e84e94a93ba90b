// Package payment constructs UPI payment-request links and the external QR
// image URLs that render them. No payment is ever processed: the link is
// scanned by the customer's UPI app and completion is asserted manually.
package payment

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// qrBaseURL is the external generator that renders a payment link as a
// scannable image. There is no confirmation callback from it or from any
// UPI app.
const qrBaseURL = "https://api.qrserver.com/v1/create-qr-code/"

// LinkConfig identifies the payee embedded in every payment request.
type LinkConfig struct {
	// PayeeVPA is the virtual payment address, e.g. "shopvibe@bank".
	PayeeVPA string
	// PayeeName is the display name shown in the payer's UPI app.
	PayeeName string
	// Currency is the ISO currency code, e.g. "INR".
	Currency string
	// Note is the transaction note attached to each request.
	Note string
	// QRSize is the generated image's width and height in pixels.
	QRSize int
}

// Link builds the upi://pay request string for the given amount: payee
// address, payee name, amount fixed to two decimals, currency, and note.
func (c LinkConfig) Link(amount decimal.Decimal) string {
	q := url.Values{}
	q.Set("pa", c.PayeeVPA)
	q.Set("pn", c.PayeeName)
	q.Set("am", amount.StringFixed(2))
	q.Set("cu", c.Currency)
	q.Set("tn", c.Note)
	return "upi://pay?" + q.Encode()
}

// QRImageURL returns the external generator URL for a scannable image of
// the payment link for the given amount.
func (c LinkConfig) QRImageURL(amount decimal.Decimal) string {
	size := strconv.Itoa(c.QRSize)
	q := url.Values{}
	q.Set("size", size+"x"+size)
	q.Set("data", c.Link(amount))
	return qrBaseURL + "?" + q.Encode()
}

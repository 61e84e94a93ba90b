// Command upi-link prints the UPI payment link and QR image URL for an
// amount, using the same link builder as the server. Useful for checking
// what a customer's UPI app will see.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"github.com/xenking/maison-storefront/internal/payment"
)

func main() {
	var (
		amount    string
		payeeVPA  string
		payeeName string
		currency  string
		note      string
		qrSize    int
	)

	flag.StringVar(&amount, "amount", "", "payment amount, e.g. 18250.00 (required)")
	flag.StringVar(&payeeVPA, "payee-vpa", "shopvibe@bank", "UPI virtual payment address")
	flag.StringVar(&payeeName, "payee-name", "ShopVibe Maison", "payee display name")
	flag.StringVar(&currency, "currency", "INR", "ISO currency code")
	flag.StringVar(&note, "note", "MaisonPurchase", "transaction note")
	flag.IntVar(&qrSize, "qr-size", 300, "QR image size in pixels")
	flag.Parse()

	if amount == "" {
		slog.Error("amount is required: set --amount")
		os.Exit(1)
	}

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		slog.Error("invalid amount", slog.String("amount", amount), slog.String("error", err.Error()))
		os.Exit(1)
	}

	cfg := payment.LinkConfig{
		PayeeVPA:  payeeVPA,
		PayeeName: payeeName,
		Currency:  currency,
		Note:      note,
		QRSize:    qrSize,
	}

	fmt.Println(cfg.Link(amt))
	fmt.Println(cfg.QRImageURL(amt))
}

package mailer

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shopflow/checkout/internal/orders"
)

// Compose renders the subject and HTML body for an order notification,
// selected by the transaction outcome.
func Compose(p orders.OrderPlacedPayload) (subject, html string) {
	switch p.Status {
	case orders.StatusDeclined:
		subject = fmt.Sprintf("Order Declined — %s", p.OrderNumber)
		html = fmt.Sprintf(`<h1>Sorry, %s!</h1>
<p>Your transaction was <strong>DECLINED</strong>.</p>
<p>Order Number: %s</p>
<p>Please verify your payment details and try again.</p>`,
			p.CustomerInfo.FullName, p.OrderNumber)
	case orders.StatusError:
		subject = fmt.Sprintf("Payment Error — %s", p.OrderNumber)
		html = fmt.Sprintf(`<h1>Oops, %s!</h1>
<p>There was an error processing your payment.</p>
<p>Order Number: %s</p>
<p>Please try again later or contact support.</p>`,
			p.CustomerInfo.FullName, p.OrderNumber)
	default:
		subject = fmt.Sprintf("Order Confirmation — %s", p.OrderNumber)
		html = fmt.Sprintf(`<h1>Thank you for your purchase, %s!</h1>
<p>Order Number: %s</p>
<p>Product: %s (%s) × %d</p>
<p>Total: $%s</p>
<h2>Shipping Information</h2>
<p>%s, %s, %s %s</p>
<p>If you have any questions, reply to this email.</p>`,
			p.CustomerInfo.FullName, p.OrderNumber,
			p.ProductTitle, p.Variant, p.Quantity,
			total(p.ProductPrice, p.Quantity),
			p.CustomerInfo.Address, p.CustomerInfo.City, p.CustomerInfo.State, p.CustomerInfo.Zip)
	}
	return subject, html
}

func total(price string, qty int) string {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return price
	}
	return d.Mul(decimal.NewFromInt(int64(qty))).StringFixed(2)
}

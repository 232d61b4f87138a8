package email

import "fmt"

// Transactional mail bodies. Plain text: every mail here is short and
// informational, HTML adds nothing.

func WelcomeEmail(to, fullName string) *Email {
	return &Email{
		To:      to,
		Subject: "Welcome to Rooya",
		Body: fmt.Sprintf(
			"Hello %s,\n\n"+
				"Your account has been created. Record your dreams and our "+
				"interpreters will help you make sense of them.\n\n"+
				"The Rooya team\n",
			fullName,
		),
	}
}

func ReceiptEmail(to, planName string, amount float64, currency string) *Email {
	return &Email{
		To:      to,
		Subject: "Payment received",
		Body: fmt.Sprintf(
			"We received your payment of %.2f %s for the %q plan.\n\n"+
				"Your subscription is now active. Thank you!\n\n"+
				"The Rooya team\n",
			amount, currency, planName,
		),
	}
}

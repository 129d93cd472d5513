package api

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoyoenuno/hoyo-payments/internal/core/domain"
)

// The terminal pages are what the customer's browser lands on after the
// hosted checkout. They render with 200 regardless of what reconciliation
// did.

type pageKind int

const (
	pageSuccess pageKind = iota
	pageFailure
	pagePending
)

type pageData struct {
	Title     string
	Icon      string
	Heading   string
	Lines     []string
	PaymentID string
	Reference string
}

var terminalPage = template.Must(template.New("terminal").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - Hoyo en Uno</title>
</head>
<body>
    <main>
        <p>{{.Icon}}</p>
        <h1>{{.Heading}}</h1>
        {{range .Lines}}<p>{{.}}</p>
        {{end}}{{if .PaymentID}}<p><strong>Payment ID:</strong> {{.PaymentID}}</p>
        {{end}}{{if .Reference}}<p><strong>Reference:</strong> {{.Reference}}</p>
        {{end}}<a href="/">Back to home</a>
    </main>
</body>
</html>
`))

func renderPage(c *gin.Context, kind pageKind, pay domain.PaymentDetails, reference string) {
	data := pageData{PaymentID: pay.PaymentID, Reference: reference}
	switch kind {
	case pageSuccess:
		data.Title = "Payment Successful"
		data.Icon = "✅"
		data.Heading = "Payment successful!"
		data.Lines = []string{
			"Your payment has been processed.",
			"You will receive a confirmation email shortly.",
		}
	case pageFailure:
		data.Title = "Payment Failed"
		data.Icon = "❌"
		data.Heading = "Payment not processed"
		data.Lines = []string{
			"We could not process your payment.",
			"Please check your details and try again.",
		}
	case pagePending:
		data.Title = "Payment Pending"
		data.Icon = "⏳"
		data.Heading = "Payment in progress"
		data.Lines = []string{
			"Your payment is being processed.",
			"We will notify you once it is confirmed.",
			"This can take a few minutes.",
		}
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := terminalPage.Execute(c.Writer, data); err != nil {
		// The status line is already written; nothing left but to log.
		_ = c.Error(err)
	}
}

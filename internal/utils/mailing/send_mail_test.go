package mailing

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestRenderOrderMail(t *testing.T) {
	subject, body, err := RenderOrderMail(OrderMail{
		CustomerName: "Sari <admin>",
		OrderID:      "abc",
		Status:       "Delivered",
		Total:        "25.00",
		AppURL:       "https://flashfood.test",
	})
	require.NoError(t, err)

	assert.Equal(t, "Order abc: Delivered", subject)
	assert.Contains(t, body, "Sari &lt;admin&gt;")
	assert.Contains(t, body, `href="https://flashfood.test/orders/abc"`)
	assert.Contains(t, body, "Total: 25.00")
}

func TestSendMailRejectsBadPort(t *testing.T) {
	mailer := NewMailer(MailConfig{SMTPHost: "localhost", SMTPPort: "smtp", SMTPEmail: "noreply@flashfood.test"})

	err := mailer.SendMail("user@flashfood.test", "hi", "<p>hi</p>")
	assert.ErrorContains(t, err, "invalid SMTP port")
}

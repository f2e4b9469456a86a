package services

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendCommentNotificationEmail tells a data product owner that someone
// commented on their product.
func SendCommentNotificationEmail(toEmail, commenterName, productName string) error {
	from := mail.NewEmail("Datamap", "notifications@datamap.dev")
	subject := fmt.Sprintf("%s commented on %s", commenterName, productName)
	to := mail.NewEmail("Product Owner", toEmail)

	htmlContent := fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h2 style="color: #2c3e50;">New comment on %s</h2>
			<p><strong>%s</strong> left a comment on a data product you own.</p>
			<p>Open the catalog to read it and keep the conversation going.</p>
		</div>
        `, productName, commenterName)

	plainTextContent := fmt.Sprintf("%s left a comment on %s. Open the catalog to read it.", commenterName, productName)

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	_, err := client.Send(message)
	if err != nil {
		return err
	}
	return nil
}

package communication

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// EmailAlerter delivers critical alerts over SES.
type EmailAlerter struct {
	from string
	to   []string
}

func NewEmailAlerter(from string, to []string) *EmailAlerter {
	return &EmailAlerter{from: from, to: to}
}

func (e *EmailAlerter) SendCritical(message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("[ERROR] failed to load aws config for alert email: %v", err)
		return
	}
	client := ses.NewFromConfig(cfg)

	_, err = client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(e.from),
		Destination: &types.Destination{
			ToAddresses: e.to,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String("[Atlas] Critical alert")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(message)},
			},
		},
	})
	if err != nil {
		log.Printf("[ERROR] failed to deliver critical alert email: %v", err)
	}
}

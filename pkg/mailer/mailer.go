package mailer

import (
	"context"
	"fmt"

	"campus-market/pkg/config"
	"campus-market/pkg/logger"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
)

// Sender dispatches a single email. A failed dispatch is reported via the
// returned error; callers decide whether it is recoverable.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type SESClient struct {
	sesClient *ses.SES
	from      string
	// redirectTo overrides every recipient when non-empty. Resolved once at
	// construction from the sandbox config so send paths never branch on
	// environment.
	redirectTo string
	logger     *logger.Logger
}

func NewSESClient(cfg *config.Config, log *logger.Logger) (*SESClient, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	redirectTo := ""
	if cfg.EmailSandbox {
		redirectTo = cfg.EmailSandboxAddress
	}

	return &SESClient{
		sesClient:  ses.New(sess),
		from:       cfg.EmailFrom,
		redirectTo: redirectTo,
		logger:     log,
	}, nil
}

func (c *SESClient) Send(ctx context.Context, to, subject, htmlBody string) error {
	recipient := to
	if c.redirectTo != "" {
		recipient = c.redirectTo
	}

	input := &ses.SendEmailInput{
		Source: aws.String(c.from),
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(recipient)},
		},
		Message: &ses.Message{
			Subject: &ses.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &ses.Body{
				Html: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(htmlBody),
				},
			},
		},
	}

	if _, err := c.sesClient.SendEmailWithContext(ctx, input); err != nil {
		c.logger.Error("Failed to send email to %s: %v", recipient, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

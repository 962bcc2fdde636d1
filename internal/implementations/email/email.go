package email

import (
	"context"
	"fmt"
	"net/url"

	"jobboard/internal/core/domain/account"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charsetUTF8 = "UTF-8"

type Sender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender               string
	passwordResetURL     url.URL
	emailVerificationURL url.URL
}

func NewSender(
	awsConfig aws.Config,
	sender string,
	passwordResetURL url.URL,
	emailVerificationURL url.URL,
) *Sender {
	return &Sender{
		ses:                  ses.NewFromConfig(awsConfig),
		sender:               sender,
		passwordResetURL:     passwordResetURL,
		emailVerificationURL: emailVerificationURL,
	}
}

func (s *Sender) SendResetToken(ctx context.Context, email string, token account.ResetToken) error {
	link := withTokenParam(s.passwordResetURL, string(token))
	subject := "Reset your password"
	body := fmt.Sprintf(
		"<p>A password reset was requested for your account.</p>"+
			"<p><a href=\"%s\">Choose a new password</a></p>"+
			"<p>The link is valid for 1 hour. If you did not request a reset, ignore this email.</p>",
		link,
	)
	return s.send(ctx, email, subject, body)
}

func (s *Sender) SendVerificationToken(ctx context.Context, email string, token account.VerificationToken) error {
	link := withTokenParam(s.emailVerificationURL, string(token))
	subject := "Verify your email address"
	body := fmt.Sprintf(
		"<p>Welcome! Please confirm your email address.</p>"+
			"<p><a href=\"%s\">Verify email</a></p>",
		link,
	)
	return s.send(ctx, email, subject, body)
}

func (s *Sender) send(ctx context.Context, to string, subject string, htmlBody string) error {
	_, err := s.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{to},
			},
			Message: &types.Message{
				Subject: &types.Content{
					Charset: aws.String(charsetUTF8),
					Data:    aws.String(subject),
				},
				Body: &types.Body{
					Html: &types.Content{
						Charset: aws.String(charsetUTF8),
						Data:    aws.String(htmlBody),
					},
				},
			},
		},
	)
	return err
}

// withTokenParam adds the opaque token as the "token" query parameter, the
// format the front-end reset and verification pages expect.
func withTokenParam(base url.URL, token string) string {
	query := base.Query()
	query.Set("token", token)
	base.RawQuery = query.Encode()
	return base.String()
}

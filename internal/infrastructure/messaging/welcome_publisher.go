// Package messaging publishes email jobs to RabbitMQ for the email worker.
package messaging

import (
	"context"

	"github.com/muyik/smartschool/internal/application"
	"github.com/muyik/smartschool/pkg/helpers"
	"github.com/muyik/smartschool/pkg/mailer"
)

// WelcomePublisher implements application.WelcomeMailer over a durable queue.
type WelcomePublisher struct {
	pub *helpers.RabbitPublisher
}

func NewWelcomePublisher(pub *helpers.RabbitPublisher) *WelcomePublisher {
	return &WelcomePublisher{pub: pub}
}

var _ application.WelcomeMailer = (*WelcomePublisher)(nil)

func (p *WelcomePublisher) PublishWelcome(ctx context.Context, email, userName string) error {
	job := mailer.EmailJob{
		To:       email,
		Template: mailer.TemplateWelcome,
		Data: map[string]any{
			"UserName": userName,
		},
	}
	return p.pub.PublishJSON(ctx, job)
}

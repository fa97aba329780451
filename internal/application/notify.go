package application

import (
	"context"
	"time"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	"github.com/oksasatya/vidtube/pkg/mailer"
	tpl "github.com/oksasatya/vidtube/pkg/mailer/templates"
)

func (r *Runtime) mailEnabled() bool {
	return r != nil && r.Cfg != nil && r.Cfg.MailSendEnabled && r.Jobs != nil
}

func (r *Runtime) sendWelcome(ctx context.Context, u *entity.User) {
	if !r.mailEnabled() {
		return
	}
	data := tpl.NewWelcomeData(r.Cfg, u.FullName, u.Email,
		tpl.WithTime(time.Now()),
		tpl.WithChannelURL(r.Cfg.ChannelURL+u.Username),
	)
	r.publish(ctx, r.EmailQueue, mailer.NewEmailJob(u.Email, tpl.Welcome, data))
}

func (r *Runtime) sendNewSubscriber(ctx context.Context, channel, subscriber *entity.User) {
	if !r.mailEnabled() {
		return
	}
	data := tpl.NewSubscriberData(r.Cfg, channel.FullName, channel.Email, subscriber.Username,
		tpl.WithTime(time.Now()),
		tpl.WithChannelURL(r.Cfg.ChannelURL+subscriber.Username),
	)
	r.publish(ctx, r.EmailQueue, mailer.NewEmailJob(channel.Email, tpl.NewSubscriber, data))
}

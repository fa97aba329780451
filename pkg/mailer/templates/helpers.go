package templates

import (
	"time"

	"github.com/oksasatya/vidtube/config"
)

// EmailData holds every field the templates read.
type EmailData struct {
	Name           string
	Email          string
	RecipientEmail string
	Type           string

	AppName        string
	CompanyName    string
	CompanyAddress string

	LogoURL        string
	SupportURL     string
	PrivacyURL     string
	UnsubscribeURL string
	ChannelURL     string

	SubscriberName string

	Time string
}

// Map flattens d into the job payload. Every key is present, blank or not,
// so text templates never print "<no value>".
func (d EmailData) Map() map[string]any {
	m := make(map[string]any, 14)
	for k, v := range map[string]string{
		"Name": d.Name, "Email": d.Email, "RecipientEmail": d.RecipientEmail, "Type": d.Type,
		"AppName": d.AppName, "CompanyName": d.CompanyName, "CompanyAddress": d.CompanyAddress,
		"LogoURL": d.LogoURL, "SupportURL": d.SupportURL, "PrivacyURL": d.PrivacyURL,
		"UnsubscribeURL": d.UnsubscribeURL, "ChannelURL": d.ChannelURL,
		"SubscriberName": d.SubscriberName, "Time": d.Time,
	} {
		m[k] = v
	}
	return m
}

type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04") }
}

func WithChannelURL(url string) Option { return func(d *EmailData) { d.ChannelURL = url } }

func WithSubscriber(name string) Option { return func(d *EmailData) { d.SubscriberName = name } }

// newData fills the branding fields from cfg, then applies opts.
func newData(cfg *config.Config, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{Name: name, Email: email, RecipientEmail: email, Type: typ}
	if cfg != nil {
		d.AppName = cfg.AppName
		d.CompanyName = cfg.CompanyName
		d.CompanyAddress = cfg.CompanyAddress
		d.LogoURL = cfg.LogoURL
		d.SupportURL = cfg.SupportURL
		d.PrivacyURL = cfg.PrivacyURL
		d.UnsubscribeURL = cfg.UnsubscribeURL
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	return newData(cfg, Welcome, name, email, opts...).Map()
}

func NewSubscriberData(cfg *config.Config, channelOwner, email, subscriber string, opts ...Option) map[string]any {
	opts = append([]Option{WithSubscriber(subscriber)}, opts...)
	return newData(cfg, NewSubscriber, channelOwner, email, opts...).Map()
}

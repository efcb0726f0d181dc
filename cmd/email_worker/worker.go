package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/courseitda/pkg/helpers"
	"github.com/oksasatya/courseitda/pkg/mailer"
)

type sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

type renderFunc func(name string, data any) (subject, text, html string, err error)

// outcome tells the consumer loop what to do with a delivery.
type outcome int

const (
	ack outcome = iota
	drop
	retry
)

type processor struct {
	mail     sender
	render   renderFunc
	defaults map[string]any
	timeout  time.Duration
	logger   *logrus.Logger
}

func (p *processor) handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		p.logger.WithError(err).Warn("bad message")
		return drop
	}
	if job.To == "" {
		p.logger.Warn("message without recipient")
		return drop
	}

	helpers.EnsureRecipientAndEmail(&job)
	helpers.MergeDefaults(&job, p.defaults)

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := p.render(job.Template, job.Data)
		if err != nil {
			p.logger.WithError(err).WithField("template", job.Template).Warn("render failed")
			return drop
		}
		subject, text, html = s, t, h
	}
	if subject == "" {
		p.logger.WithField("to", job.To).Warn("message without subject")
		return drop
	}

	c, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.mail.Send(c, job.To, subject, text, html); err != nil {
		p.logger.WithError(err).WithField("to", job.To).Error("send failed")
		return retry
	}
	p.logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
	return ack
}

func (o outcome) String() string {
	switch o {
	case ack:
		return "ack"
	case drop:
		return "drop"
	case retry:
		return "retry"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

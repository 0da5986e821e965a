package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const failurePrefix = "Сбой в работе программы: "

type fetcher interface {
	Fetch(ctx context.Context, from int64) (any, error)
}

type sender interface {
	Send(ctx context.Context, text string) bool
}

// Poller carries the loop state between iterations. The from timestamp is
// fixed when the poller is built and never moves.
type Poller struct {
	api          fetcher
	notifier     sender
	log          zerolog.Logger
	from         int64
	period       time.Duration
	notifyErrors bool

	lastStatus string
}

func NewPoller(api fetcher, notifier sender, from int64, period time.Duration, notifyErrors bool, log zerolog.Logger) *Poller {
	return &Poller{
		api:          api,
		notifier:     notifier,
		log:          log,
		from:         from,
		period:       period,
		notifyErrors: notifyErrors,
	}
}

func (p *Poller) LastStatus() string { return p.lastStatus }

func (p *Poller) poll(ctx context.Context) error {
	resp, err := p.api.Fetch(ctx, p.from)
	if err != nil {
		return err
	}

	if err := checkResponse(resp); err != nil {
		return err
	}

	homework := latestHomework(resp)
	status, ok := homework["status"].(string)
	if ok && status == p.lastStatus {
		p.log.Debug().Str("status", status).Msg("no new updates")
		return nil
	}

	msg, err := parseStatus(homework)
	if err != nil {
		return err
	}

	p.lastStatus = status
	p.notifier.Send(ctx, msg)
	return nil
}

// Iterate runs one poll. Any error is logged, optionally relayed to the
// recipient, and returned so callers can inspect it.
func (p *Poller) Iterate(ctx context.Context) error {
	err := p.poll(ctx)
	if err == nil {
		return nil
	}

	// Shutting down, nothing worth reporting.
	if ctx.Err() != nil {
		p.log.Debug().Err(err).Msg("poll interrupted")
		return err
	}

	msg := failurePrefix + err.Error()
	p.log.Error().Err(err).Msg(msg)

	if p.notifyErrors {
		p.notifier.Send(ctx, msg)
	}

	return err
}

// Run polls forever, sleeping one period after every iteration whatever
// its outcome. It returns when ctx is done.
func (p *Poller) Run(ctx context.Context) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		p.Iterate(ctx)
		timer.Reset(p.period)
	}
}

// Package communication holds the operational notification channels. The
// sync job only depends on the Alerter contract: fire-and-forget delivery
// that must never fail the caller, whatever happens to the channel itself.
package communication

import (
	"log"
	"os"
	"strings"
)

type Alerter interface {
	SendCritical(message string)
}

// LogAlerter is the fallback sink when no channel is configured.
type LogAlerter struct{}

func (LogAlerter) SendCritical(message string) {
	log.Printf("[CRITICAL] %s", message)
}

// Fanout delivers to every configured sink.
type Fanout []Alerter

func (f Fanout) SendCritical(message string) {
	for _, a := range f {
		a.SendCritical(message)
	}
}

// FromEnv builds the alerting stack from the environment: Slack when a bot
// token is present, SES email when sender/recipients are set, and the log
// sink otherwise.
func FromEnv() Alerter {
	var sinks Fanout

	if os.Getenv("SLACK_BOT_TOKEN") != "" {
		sinks = append(sinks, ConnectSlack())
	}

	from := os.Getenv("ALERT_EMAIL_FROM")
	to := os.Getenv("ALERT_EMAIL_TO")
	if from != "" && to != "" {
		sinks = append(sinks, NewEmailAlerter(from, strings.Split(to, ",")))
	}

	if len(sinks) == 0 {
		return LogAlerter{}
	}
	return sinks
}

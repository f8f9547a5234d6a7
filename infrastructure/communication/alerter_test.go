package communication

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingAlerter struct {
	messages []string
}

func (r *recordingAlerter) SendCritical(message string) {
	r.messages = append(r.messages, message)
}

func TestFanoutDeliversToAllSinks(t *testing.T) {
	a := &recordingAlerter{}
	b := &recordingAlerter{}

	Fanout{a, b}.SendCritical("device offline")

	assert.Equal(t, []string{"device offline"}, a.messages)
	assert.Equal(t, []string{"device offline"}, b.messages)
}

func TestLogAlerterNeverPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		LogAlerter{}.SendCritical("device offline")
	})
}

func TestFromEnvFallsBackToLog(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "")
	t.Setenv("ALERT_EMAIL_FROM", "")
	t.Setenv("ALERT_EMAIL_TO", "")

	assert.IsType(t, LogAlerter{}, FromEnv())
}

func TestFromEnvBuildsFanout(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_ERROR_CHANNEL", "C123")
	t.Setenv("ALERT_EMAIL_FROM", "alerts@example.com")
	t.Setenv("ALERT_EMAIL_TO", "ops@example.com")

	sinks, ok := FromEnv().(Fanout)
	assert.True(t, ok)
	assert.Len(t, sinks, 2)
}

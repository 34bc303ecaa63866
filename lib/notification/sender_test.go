package notification

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	t.Run("missing api key reports failure without panicking", func(t *testing.T) {
		sender := &impl{host: "smtp.sendgrid.net", port: 587, senderEmail: "noreply@carelink.example"}
		require.False(t, sender.Send("candidate@example.com", "Alex"))
	})
	t.Run("missing sender address reports failure", func(t *testing.T) {
		sender := &impl{host: "smtp.sendgrid.net", port: 587, apiKey: "SG.test"}
		require.False(t, sender.Send("candidate@example.com", "Alex"))
	})
	t.Run("empty configuration never panics", func(t *testing.T) {
		sender := &impl{}
		require.NotPanics(t, func() {
			require.False(t, sender.Send("", ""))
		})
	})
}

func TestWelcomeBody(t *testing.T) {
	require.Contains(t, welcomeBody("Alex"), "Hi Alex")
	require.Contains(t, welcomeBody(""), "Hi there")
}

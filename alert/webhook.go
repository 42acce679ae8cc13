package alert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Send posts a message to a webhook. An empty URL is a no-op so callers
// don't need to special-case unconfigured alerting.
func Send(webhookURL, msg string) error {
	if webhookURL == "" {
		return nil
	}

	body, err := json.Marshal(map[string]string{"content": msg})
	if err != nil {
		return err
	}

	resp, err := http.Post(webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}

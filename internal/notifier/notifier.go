package notifier

import (
	"context"
	"log"
)

// Log writes notifications to the process log. It is the default sink when no
// delivery channel is configured.
type Log struct{}

func (Log) Notify(_ context.Context, title, body string) error {
	log.Printf("[notify] %s: %s", title, body)
	return nil
}

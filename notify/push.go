// Package notify delivers admin alerts over FCM push and email.
package notify

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"glowstore/backend/logger"
)

// maxTokensPerBatch is FCM's hard limit on tokens per multicast request.
const maxTokensPerBatch = 500

// multicastSender is the slice of the FCM client the pusher needs.
type multicastSender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// BatchResult accumulates delivery counts across every batch of a send.
type BatchResult struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
}

// Pusher sends one notification to many device tokens.
type Pusher struct {
	client multicastSender
}

// NewPusher builds an FCM-backed pusher from a service account file.
func NewPusher(ctx context.Context, credentialsFile string) (*Pusher, error) {
	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(ctx, &firebase.Config{}, opt)
	if err != nil {
		return nil, fmt.Errorf("notify: failed to initialize Firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("notify: failed to get messaging client: %w", err)
	}
	return &Pusher{client: client}, nil
}

// Send fans the notification out in batches of at most 500 tokens. A
// failed batch is counted and logged but does not stop later batches; the
// result always reflects every token.
func (p *Pusher) Send(ctx context.Context, tokens []string, title, body string) (BatchResult, error) {
	var result BatchResult
	var lastErr error

	for _, batch := range chunkTokens(tokens, maxTokensPerBatch) {
		resp, err := p.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
			Tokens: batch,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
		})
		if err != nil {
			logger.L().Errorf("notify: push batch of %d tokens failed: %v", len(batch), err)
			result.Failure += len(batch)
			lastErr = err
			continue
		}
		result.Success += resp.SuccessCount
		result.Failure += resp.FailureCount
	}
	return result, lastErr
}

func chunkTokens(tokens []string, size int) [][]string {
	var batches [][]string
	for len(tokens) > size {
		batches = append(batches, tokens[:size])
		tokens = tokens[size:]
	}
	if len(tokens) > 0 {
		batches = append(batches, tokens)
	}
	return batches
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cloudchore/cloudchore/internal/log"
)

// ErrNotification indicates a push delivery failed. Callers treat this as
// non-fatal: log and continue, never abort the job that produced it.
var ErrNotification = errors.New("notification delivery failure")

// DefaultServer is the public ntfy instance used when none is configured.
const DefaultServer = "https://ntfy.sh"

// Message is one push notification.
type Message struct {
	Title    string
	Body     string
	Priority string
	Tags     []string
}

// Notifier delivers a message somewhere. One attempt, no retry.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// Ntfy posts messages to an ntfy topic.
type Ntfy struct {
	Server string
	Topic  string
	Token  string
	Client *http.Client
}

// NewNtfy constructs a client for server/topic. An empty server falls back to
// DefaultServer.
func NewNtfy(server, topic, token string) *Ntfy {
	if server == "" {
		server = DefaultServer
	}
	return &Ntfy{
		Server: strings.TrimRight(server, "/"),
		Topic:  topic,
		Token:  token,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send publishes msg to the topic. Fire-and-forget semantics: a single HTTP
// POST, no retry on failure.
func (n *Ntfy) Send(ctx context.Context, msg Message) error {
	url := fmt.Sprintf("%s/%s", n.Server, n.Topic)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(msg.Body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrNotification, err)
	}

	req.Header.Set("Title", msg.Title)
	if msg.Priority != "" {
		req.Header.Set("Priority", msg.Priority)
	}
	tags := "warning,dollar"
	if len(msg.Tags) > 0 {
		tags = strings.Join(msg.Tags, ",")
	}
	req.Header.Set("Tags", tags)
	if n.Token != "" {
		req.Header.Set("Authorization", "Bearer "+n.Token)
	}

	resp, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotification, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: server returned %d", ErrNotification, resp.StatusCode)
	}

	log.Debugf("ntfy sent: topic=%s title=%q", n.Topic, msg.Title)
	return nil
}

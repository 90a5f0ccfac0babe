package mirror

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// FirebaseSink writes to a Firebase Realtime Database over its REST API:
// readings overwrite one node (PUT), commands are appended under another (POST).
type FirebaseSink struct {
	sensorPath string
	cmdsPath   string
	client     *resty.Client
}

var _ Sink = (*FirebaseSink)(nil)

// NewFirebaseSink builds a sink for the database at baseURL. A zero timeout
// leaves the deadline to the dispatcher context.
func NewFirebaseSink(baseURL, sensorPath, cmdsPath string, timeout time.Duration) *FirebaseSink {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &FirebaseSink{
		sensorPath: strings.Trim(sensorPath, "/"),
		cmdsPath:   strings.Trim(cmdsPath, "/"),
		client:     client,
	}
}

func (s *FirebaseSink) Name() string { return "firebase" }

func (s *FirebaseSink) PutReading(ctx context.Context, payload Fields) error {
	return s.send(ctx, http.MethodPut, s.sensorPath, payload)
}

func (s *FirebaseSink) PostCommand(ctx context.Context, payload Fields) error {
	return s.send(ctx, http.MethodPost, s.cmdsPath, payload)
}

func (s *FirebaseSink) send(ctx context.Context, method, path string, payload Fields) error {
	url := "/" + path + ".json"
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		Execute(method, url)
	if err != nil {
		return fmt.Errorf("firebase %s %s: %w", method, url, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("firebase %s %s: unexpected status %d", method, url, resp.StatusCode())
	}
	return nil
}

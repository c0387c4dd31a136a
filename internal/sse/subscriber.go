package sse

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Subscriber reads an event stream served by Handler.
type Subscriber struct {
	client *http.Client
	url    string
	header http.Header
}

// NewSubscriber creates a subscriber for url. header is sent with every
// connection attempt (credentials, for instance).
func NewSubscriber(client *http.Client, url string, header http.Header) *Subscriber {
	if client == nil {
		client = http.DefaultClient
	}
	return &Subscriber{client: client, url: url, header: header}
}

// Stream opens one connection and calls fn for every event until the
// stream ends, ctx is cancelled, or fn returns an error.
func (s *Subscriber) Stream(ctx context.Context, fn func(Event) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf(ErrMsgBuildRequest, err)
	}
	for k, v := range s.header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf(ErrMsgConnect, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf(ErrMsgUnexpectedStatus, resp.StatusCode)
	}
	return Decode(resp.Body, fn)
}

// Decode parses the wire format written by FormatSSEMessage. Lines other
// than data lines are ignored; the data line carries the whole Event.
func Decode(r io.Reader, fn func(Event) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), MaxLineBytes)

	var data strings.Builder
	flush := func() error {
		if data.Len() == 0 {
			return nil
		}
		raw := data.String()
		data.Reset()

		var event Event
		if err := json.Unmarshal([]byte(raw), &event); err != nil {
			return fmt.Errorf(ErrMsgDecodeEvent, raw, err)
		}
		return fn(event)
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		if v, ok := strings.CutPrefix(line, "data:"); ok {
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(v, " "))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf(ErrMsgReadStream, err)
	}
	return flush()
}

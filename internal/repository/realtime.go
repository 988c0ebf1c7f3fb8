package repository

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// RealtimeClient talks to the hosted realtime document store over its REST
// surface. Collections are JSON trees addressed by path:
//
//	PUT    /{path}.json   whole-node overwrite (last write wins)
//	POST   /{path}.json   push a child under a generated key
//	GET    /{path}.json   read a node; orderBy/equalTo filter by field
//	DELETE /{path}.json   remove a node
//
// Change notifications stream over SSE from GET with Accept:
// text/event-stream.
type RealtimeClient struct {
	http   *resty.Client
	stream *resty.Client
	token  string
	logger *zap.Logger
}

func NewRealtimeClient(baseURL, token string, logger *zap.Logger) *RealtimeClient {
	base := strings.TrimRight(baseURL, "/")
	client := resty.New().
		SetBaseURL(base).
		SetTimeout(15*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("Content-Type", "application/json")
	// The change stream stays open indefinitely, so its client carries no
	// overall timeout; ctx cancellation ends the stream instead.
	stream := resty.New().SetBaseURL(base)
	return &RealtimeClient{http: client, stream: stream, token: token, logger: logger}
}

func (c *RealtimeClient) url(path string) string {
	u := "/" + strings.Trim(path, "/") + ".json"
	if c.token != "" {
		u += "?auth=" + c.token
	}
	return u
}

func (c *RealtimeClient) checked(resp *resty.Response, err error, op, path string) error {
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%s %s: store returned %s", op, path, resp.Status())
	}
	return nil
}

// Put overwrites the node at path with value.
func (c *RealtimeClient) Put(ctx context.Context, path string, value any) error {
	resp, err := c.http.R().SetContext(ctx).SetBody(value).Put(c.url(path))
	return c.checked(resp, err, "put", path)
}

// Push appends value under a store-generated child key and returns it.
func (c *RealtimeClient) Push(ctx context.Context, path string, value any) (string, error) {
	var result struct {
		Name string `json:"name"`
	}
	resp, err := c.http.R().SetContext(ctx).SetBody(value).SetResult(&result).Post(c.url(path))
	if err := c.checked(resp, err, "push", path); err != nil {
		return "", err
	}
	return result.Name, nil
}

// Get reads the node at path into out. A missing node decodes as JSON
// null and leaves out untouched.
func (c *RealtimeClient) Get(ctx context.Context, path string, out any) error {
	resp, err := c.http.R().SetContext(ctx).Get(c.url(path))
	if err := c.checked(resp, err, "get", path); err != nil {
		return err
	}
	body := resp.Body()
	if len(body) == 0 || string(body) == "null" {
		return nil
	}
	return json.Unmarshal(body, out)
}

// Query reads the children of path whose field equals value.
func (c *RealtimeClient) Query(ctx context.Context, path, field, value string, out any) error {
	u := c.url(path)
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	u += sep + fmt.Sprintf("orderBy=%q&equalTo=%q", field, value)
	resp, err := c.http.R().SetContext(ctx).Get(u)
	if err := c.checked(resp, err, "query", path); err != nil {
		return err
	}
	body := resp.Body()
	if len(body) == 0 || string(body) == "null" {
		return nil
	}
	return json.Unmarshal(body, out)
}

// Delete removes the node at path.
func (c *RealtimeClient) Delete(ctx context.Context, path string) error {
	resp, err := c.http.R().SetContext(ctx).Delete(c.url(path))
	return c.checked(resp, err, "delete", path)
}

// Subscribe opens the SSE change stream for a collection. Events arrive as
// "event:"/"data:" line pairs; each put/patch event yields one Change.
// The stream closes when ctx is cancelled.
func (c *RealtimeClient) Subscribe(ctx context.Context, collection string) (<-chan Change, error) {
	resp, err := c.stream.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader("Accept", "text/event-stream").
		Get(c.url(collection))
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", collection, err)
	}
	if resp.IsError() {
		resp.RawBody().Close()
		return nil, fmt.Errorf("subscribe %s: store returned %s", collection, resp.Status())
	}

	ch := make(chan Change, 16)
	go func() {
		defer close(ch)
		defer resp.RawBody().Close()

		var event string
		scanner := bufio.NewScanner(resp.RawBody())
		scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case strings.HasPrefix(line, "event:"):
				event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				if event != "put" && event != "patch" {
					continue
				}
				var payload struct {
					Path string `json:"path"`
				}
				data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
				if err := json.Unmarshal([]byte(data), &payload); err != nil {
					continue
				}
				select {
				case ch <- Change{Collection: collection, Path: payload.Path}:
				case <-ctx.Done():
					return
				}
			}
		}
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			c.logger.Warn("realtime change stream closed",
				zap.String("collection", collection), zap.Error(err))
		}
	}()
	return ch, nil
}

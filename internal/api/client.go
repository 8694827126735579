package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Display texts for failures that carry no backend message.
const (
	MsgNetwork   = "Network Error"
	MsgMalformed = "Unexpected response from server"
)

// Error is every failure the backend client reports. Status is 0 when the
// request never got an HTTP response.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.cause }

// Message reduces any error to the text shown to the visitor.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}

// StatusOf returns the HTTP status behind err, or 0.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

type tokenKey struct{}

// WithToken attaches the visitor's bearer token to ctx; every call made
// with that ctx sends it.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey{}).(string)
	return tok
}

// Call describes one backend request. Path may hold {name} placeholders
// filled from PathParams; the unexpanded Path is the metrics label.
type Call struct {
	Method     string
	Path       string
	PathParams map[string]string
	Query      url.Values
	Body       any
	Out        any
}

type Client struct {
	rc *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetDisableWarn(true)
	return &Client{rc: rc}
}

func (c *Client) Do(ctx context.Context, call Call) error {
	r := c.rc.R().SetContext(ctx)
	if tok := tokenFrom(ctx); tok != "" {
		r.SetAuthToken(tok)
	}
	if len(call.PathParams) > 0 {
		r.SetPathParams(call.PathParams)
	}
	if len(call.Query) > 0 {
		r.SetQueryParamsFromValues(call.Query)
	}
	if call.Body != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(call.Body)
	}
	return c.finish(call.Method, call.Path, call.Out, func() (*resty.Response, error) {
		return r.Execute(call.Method, call.Path)
	})
}

// Upload posts a multipart form with a single file part.
func (c *Client) Upload(ctx context.Context, path, field, filename string, body io.Reader, out any) error {
	r := c.rc.R().SetContext(ctx).SetFileReader(field, filename, body)
	if tok := tokenFrom(ctx); tok != "" {
		r.SetAuthToken(tok)
	}
	return c.finish(http.MethodPost, path, out, func() (*resty.Response, error) {
		return r.Post(path)
	})
}

func (c *Client) finish(method, endpoint string, out any, exec func() (*resty.Response, error)) error {
	start := time.Now()
	resp, err := exec()
	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode())
	}
	observe(method, endpoint, code, time.Since(start))

	if err != nil {
		return &Error{Message: MsgNetwork, cause: err}
	}
	if resp.IsError() || resp.StatusCode() >= 300 {
		return &Error{Status: resp.StatusCode(), Message: backendMessage(resp.StatusCode(), resp.Body())}
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &Error{Status: resp.StatusCode(), Message: MsgMalformed, cause: err}
	}
	return nil
}

// backendMessage prefers the backend's own message, then its error field.
func backendMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fmt.Sprintf("Request failed with status code %d", status)
}

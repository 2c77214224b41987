package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Response is the part of an HTTP response a Pending keeps once the request finishes.
type Response struct {
	StatusCode int
	Body       []byte
}

// Pending is the deferred result of a dispatched request.
// Callers may ignore it entirely; the request runs to completion either way.
type Pending struct {
	done chan struct{}
	resp *Response
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// Resolved returns a Pending that is already complete.
func Resolved(resp *Response, err error) *Pending {
	p := newPending()
	p.resolve(resp, err)
	return p
}

func (p *Pending) resolve(resp *Response, err error) {
	p.resp = resp
	p.err = err
	close(p.done)
}

// Done is closed when the request has finished.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Result blocks until the request has finished.
func (p *Pending) Result() (*Response, error) {
	<-p.done
	return p.resp, p.err
}

// Dispatch sends body as JSON and returns immediately.
// There is no retry; the request is bound to a background context so it outlives the caller.
func (c *APIClient) Dispatch(method, path string, body any) *Pending {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Resolved(nil, fmt.Errorf("failed to marshal request body: %w", err))
	}

	p := newPending()
	go func() {
		resp, err := c.do(context.Background(), method, path, bytes.NewReader(jsonBody))
		if err != nil {
			p.resolve(nil, err)
			return
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		p.resolve(&Response{StatusCode: resp.StatusCode, Body: respBody}, err)
	}()
	return p
}

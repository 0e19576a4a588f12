package http

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RequestInterceptor runs before a request is dispatched. It may mutate the
// request; returning an error aborts the dispatch.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor runs after each HTTP exchange, including rate-limited
// exchanges that the client will retry.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain holds the transport middleware, run in registration
// order.
type InterceptorChain struct {
	request  []RequestInterceptor
	response []ResponseInterceptor
}

// AddRequest appends a request interceptor.
func (c *InterceptorChain) AddRequest(interceptor RequestInterceptor) {
	c.request = append(c.request, interceptor)
}

// AddResponse appends a response interceptor.
func (c *InterceptorChain) AddResponse(interceptor ResponseInterceptor) {
	c.response = append(c.response, interceptor)
}

// RunRequest executes the request interceptors, stopping at the first
// error.
func (c *InterceptorChain) RunRequest(ctx context.Context, req *Request) error {
	for _, interceptor := range c.request {
		if err := interceptor(ctx, req); err != nil {
			return fmt.Errorf("request interceptor: %w", err)
		}
	}

	return nil
}

// RunResponse executes the response interceptors, stopping at the first
// error.
func (c *InterceptorChain) RunResponse(ctx context.Context, req *Request, resp *Response) error {
	for _, interceptor := range c.response {
		if err := interceptor(ctx, req, resp); err != nil {
			return fmt.Errorf("response interceptor: %w", err)
		}
	}

	return nil
}

// HeaderInterceptor sets fixed headers on every request. Headers already
// set on the request win.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(_ context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(map[string]string, len(headers))
		}

		for key, value := range headers {
			if _, ok := req.Headers[key]; !ok {
				req.Headers[key] = value
			}
		}

		return nil
	}
}

// ThrottleInterceptor paces requests at rps per second with a burst of the
// same size, keeping the client under the per-space rate limit instead of
// bouncing off 429 responses. Tokens accrue from elapsed time, so no
// background refill goroutine is needed.
func ThrottleInterceptor(rps int) RequestInterceptor {
	var (
		mu     sync.Mutex
		tokens = float64(rps)
		last   = time.Now()
	)

	return func(ctx context.Context, req *Request) error {
		mu.Lock()

		now := time.Now()
		tokens += now.Sub(last).Seconds() * float64(rps)
		last = now

		if tokens > float64(rps) {
			tokens = float64(rps)
		}

		var wait time.Duration

		if tokens >= 1 {
			tokens--
		} else {
			wait = time.Duration((1 - tokens) / float64(rps) * float64(time.Second))
			tokens = 0
		}

		mu.Unlock()

		return sleepWithContext(ctx, wait)
	}
}

package common

import (
	"net"
	"net/http"
	"time"

	"github.com/sethgrid/pester"
	"golang.org/x/net/http2"
)

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type BackoffStrategy = pester.BackoffStrategy

type RetrySetting struct {
	MaxRetries  int
	Concurrency int
	Backoff     BackoffStrategy
}

var DefaultRetrySetting = &RetrySetting{
	MaxRetries:  3,
	Concurrency: 1,
	Backoff:     pester.ExponentialBackoff,
}

type HTTPClient struct {
	doer      HTTPDoer
	client    http.Client
	transport *http.Transport
}

// NewHTTPClient makes the http client with http2 enabled for `https`
// endpoints. The requests are retried with `retrySetting` unless it is nil;
// only the connection failures and 5xx responses are retried.
func NewHTTPClient(timeout time.Duration, retrySetting *RetrySetting) (client *HTTPClient, err error) {
	transport := &http.Transport{
		IdleConnTimeout: 30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   3 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	if err = http2.ConfigureTransport(transport); err != nil {
		return
	}

	client = &HTTPClient{
		client: http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		transport: transport,
	}
	client.doer = &client.client

	if retrySetting != nil {
		ec := pester.NewExtendedClient(&client.client)
		{
			ec.MaxRetries = retrySetting.MaxRetries
			ec.Concurrency = retrySetting.Concurrency
			ec.Backoff = retrySetting.Backoff
		}
		client.doer = ec
	}

	return
}

func (c *HTTPClient) Close() {
	c.transport.CloseIdleConnections()
}

func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.doer.Do(req)
}

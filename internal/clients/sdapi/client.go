package sdapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sdloop/internal/clients/transport"
	"sdloop/types"
)

var ErrMalformedResponse = errors.New("malformed txt2img response")

// DispatchError wraps every failure of a single txt2img call.
type DispatchError struct {
	Endpoint string
	Err      error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %s: %v", e.Endpoint, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {

	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Txt2Img posts one job and decodes the reply. It never retries.
func (c *Client) Txt2Img(ctx context.Context, job types.Txt2ImgRequest) (types.Txt2ImgResponse, error) {

	resp, err := transport.Post[types.Txt2ImgRequest, rawResponse](c.httpClient, ctx, c.endpoint, job, nil)
	if err != nil {
		return types.Txt2ImgResponse{}, &DispatchError{Endpoint: c.endpoint, Err: err}
	}

	out, err := resp.decode()
	if err != nil {
		return types.Txt2ImgResponse{}, &DispatchError{Endpoint: c.endpoint, Err: err}
	}

	return out, nil
}

package fanduel

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_client_ensure_session = "client.ensure-session"
	report_client_execute        = "client.execute"
	report_client_execute_json   = "client.execute-json"
)

// send merges the option layers and performs the request. Only transport failures are
// returned as errors, the response status is not looked at.
func (c *Client) send(ctx context.Context, endpoint string, layers ...RequestOptions) (*resty.Response, error) {
	opts := mergeOptions(append([]RequestOptions{fallbackOptions()}, layers...)...)

	req := c.http.R().
		SetContext(ctx).
		SetHeaders(opts.Headers)
	if opts.MultipartForm != nil {
		req.SetMultipartFormData(opts.MultipartForm)
	} else if opts.Body != nil {
		req.SetBody(opts.Body)
	}

	res, err := req.Execute(opts.Method, endpoint)
	if err != nil {
		return res, &HttpError{Method: opts.Method, Url: endpoint, Cause: err}
	}
	return res, nil
}

// dispatch is send with the response classified, a status >= 400 becomes an *HttpError.
func (c *Client) dispatch(ctx context.Context, endpoint string, layers ...RequestOptions) ([]byte, error) {
	res, err := c.send(ctx, endpoint, layers...)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() >= http.StatusBadRequest {
		return nil, &HttpError{
			Method: res.Request.Method,
			Url:    endpoint,
			Status: res.StatusCode(),
			Body:   res.Body(),
		}
	}
	return res.Body(), nil
}

// ensureSession logs in if the session is not currently valid. Concurrent callers that
// observe an invalid session share a single login.
func (c *Client) ensureSession(ctx context.Context) (credentials, error) {
	creds, ok := c.session.snapshot()
	if ok {
		return creds, nil
	}

	// the login is shared by every waiting caller so it must not be cancelled because
	// the caller that happened to start it went away
	loginCtx := context.WithoutCancel(ctx)
	result, err, shared := c.session.login.Do("login", func() (any, error) {
		creds, ok := c.session.snapshot()
		if ok {
			return creds, nil
		}
		return c.login(loginCtx)
	})
	if err != nil {
		c.tel.ReportBroken(report_client_ensure_session, err)
		return credentials{}, err
	}
	if shared {
		c.tel.ReportDebug(report_client_ensure_session, "joined in-flight login")
	}
	return result.(credentials), nil
}

// executeRaw performs an authenticated request and returns the raw response body.
func (c *Client) executeRaw(ctx context.Context, endpoint string, opts RequestOptions) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "client:executeRaw")
	defer span.End()

	creds, err := c.ensureSession(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to establish session")
		return nil, err
	}

	body, err := c.dispatch(ctx, endpoint, RequestOptions{Headers: creds.headers()}, opts)
	if err != nil {
		if IsUnauthorized(err) {
			// the next call logs in again, this one is not retried
			c.session.invalidate(creds.xAuthToken)
			c.tel.ReportWarning(report_client_execute, "session rejected, invalidated", endpoint)
		} else {
			c.tel.ReportBroken(report_client_execute, err, endpoint)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, err
	}
	return body, nil
}

// executeJson is executeRaw followed by decoding the body into out.
func (c *Client) executeJson(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	body, err := c.executeRaw(ctx, endpoint, opts)
	if err != nil {
		return err
	}
	err = json.Unmarshal(body, out)
	if err != nil {
		c.tel.ReportBroken(report_client_execute_json, err, endpoint)
		return &ParseError{Body: body, Cause: err}
	}
	return nil
}

// Package source retrieves the raw report responses from the reporting APIs.
package source

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/reports2sheets/reports2sheets/report"
)

// Endpoint is the base URL and credentials for one reporting API.
type Endpoint struct {
	BaseURL    string
	Credential Credential
}

// Fetcher issues one synchronous HTTP request per report.
type Fetcher struct {
	client    *http.Client
	endpoints map[report.Source]Endpoint
	params    report.Params
	debug     bool
}

func NewFetcher(client *http.Client, endpoints map[report.Source]Endpoint, params report.Params, debug bool) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}

	return &Fetcher{
		client:    client,
		endpoints: endpoints,
		params:    params,
		debug:     debug,
	}
}

// Fetch retrieves the raw response for a report. Any non-2xx response is returned as a
// TransportError.
func (f *Fetcher) Fetch(ctx context.Context, spec report.Spec) (*report.Payload, error) {
	endpoint, ok := f.endpoints[spec.Source]
	if !ok {
		return nil, fmt.Errorf("%v: no endpoint configured for %v", spec.Kind, spec.Source)
	}

	path, err := spec.Render(f.params)
	if err != nil {
		return nil, err
	}

	url := strings.TrimSuffix(endpoint.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")

	rq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%v: invalid request URL (%w)", spec.Kind, err)
	}

	rq.Header.Set("Accept", spec.Format.Accept())

	if endpoint.Credential != nil {
		if err := endpoint.Credential.Authorise(ctx, rq); err != nil {
			return nil, err
		}
	}

	if f.debug {
		log.Printf("%-5s %v: GET %v", "DEBUG", spec.Kind, url)
	}

	response, err := f.client.Do(rq)
	if err != nil {
		return nil, &TransportError{Report: spec.ID(), Err: err}
	}

	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		if _, err := io.Copy(io.Discard, response.Body); err != nil && f.debug {
			log.Printf("%-5s %v: error reading %v response (%v)", "DEBUG", spec.Kind, response.StatusCode, err)
		}

		return nil, &TransportError{
			Report:     spec.ID(),
			StatusCode: response.StatusCode,
			Err:        fmt.Errorf("%s", response.Status),
		}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &TransportError{Report: spec.ID(), Err: err}
	}

	if f.debug {
		log.Printf("%-5s %v: received %d bytes (%s)", "DEBUG", spec.Kind, len(body), response.Header.Get("Content-Type"))
	}

	return &report.Payload{
		Format:      spec.Format,
		ContentType: response.Header.Get("Content-Type"),
		Data:        body,
	}, nil
}

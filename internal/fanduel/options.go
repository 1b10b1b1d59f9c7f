package fanduel

import (
	"net/http"
)

const userAgent = "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:52.0) Gecko/20100101 Firefox/52.0"

// RequestOptions describes a single outbound request. The zero value is a GET without
// a body or extra headers.
type RequestOptions struct {
	// Method defaults to GET.
	Method string
	// Headers are merged key by key (canonicalized), an empty value removes the header.
	Headers map[string]string
	// Body is sent as-is, it is ignored when MultipartForm is set.
	Body []byte
	// MultipartForm is sent as a multipart/form-data body.
	MultipartForm map[string]string
}

// fallbackOptions are the hardcoded defaults every request starts from.
func fallbackOptions() RequestOptions {
	return RequestOptions{
		Method: http.MethodGet,
		Headers: map[string]string{
			"User-Agent": userAgent,
		},
	}
}

// mergeOptions merges the given layers into a new RequestOptions, later layers take
// precedence over earlier ones. The pipeline calls it as
// mergeOptions(fallbackOptions(), sessionDefaults, callerOptions), so caller overrides win
// over session defaults which win over hardcoded fallbacks. Inputs are never mutated.
func mergeOptions(layers ...RequestOptions) RequestOptions {
	out := RequestOptions{Headers: map[string]string{}}
	for _, layer := range layers {
		if layer.Method != "" {
			out.Method = layer.Method
		}
		for k, v := range layer.Headers {
			key := http.CanonicalHeaderKey(k)
			if v == "" {
				delete(out.Headers, key)
				continue
			}
			out.Headers[key] = v
		}
		if layer.Body != nil {
			out.Body = layer.Body
		}
		if layer.MultipartForm != nil {
			out.MultipartForm = layer.MultipartForm
		}
	}
	if out.Method == "" {
		out.Method = http.MethodGet
	}
	return out
}

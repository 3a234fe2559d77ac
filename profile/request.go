package profile

import (
	"context"
	"encoding/json"
	"net/http"
)

// Transport is the slice of the api.Client surface this package needs.
// *api.Client satisfies it; tests may substitute their own implementation.
type Transport interface {
	MakeRequest(ctx context.Context, method, path string, in, out any) error
	OrgToken() string
}

// SearchParams describe the person being looked up. All fields are optional;
// the zero value asks the backend for its default ranking.
type SearchParams struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Company  string `json:"company,omitempty"`
	Location string `json:"location,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// ProfileInfo is the payload of a finished search. Info and Recommendations
// are kept as raw JSON; their schema belongs to the backend.
type ProfileInfo struct {
	Info            json.RawMessage `json:"info"`
	Recommendations json.RawMessage `json:"recommendations"`
}

// Request is one in-flight search job. The authoritative state lives in the
// remote service; a Request only knows how to ask about it. It is never
// reused after ProfileInfo succeeds.
type Request struct {
	ID string `json:"requestId"`

	t Transport
}

type startSearchResponse struct {
	RequestID string `json:"requestId"`
}

type statusResponse struct {
	RequestID string `json:"requestId"`
	Finished  bool   `json:"finished"`
}

// StartSearch submits params and returns a handle for the server-side job.
// Transport errors are returned as-is; classification happens in the SDK
// layer.
func StartSearch(ctx context.Context, t Transport, params SearchParams) (*Request, error) {
	var out startSearchResponse
	if err := t.MakeRequest(ctx, http.MethodPost, "/v1/profile-searches", params, &out); err != nil {
		return nil, err
	}
	return &Request{ID: out.RequestID, t: t}, nil
}

// NewRequest rebuilds a handle for a previously issued request ID, e.g. one
// recorded from an earlier NotFoundYetError or another process.
func NewRequest(id string, t Transport) *Request {
	return &Request{ID: id, t: t}
}

// DidFinish reports whether the server has completed the search. Safe to
// call repeatedly.
func (r *Request) DidFinish(ctx context.Context) (bool, error) {
	var out statusResponse
	if err := r.t.MakeRequest(ctx, http.MethodGet, "/v1/profile-searches/"+r.ID, nil, &out); err != nil {
		return false, err
	}
	return out.Finished, nil
}

// ProfileInfo fetches the final payload. Only valid once DidFinish has
// reported true.
func (r *Request) ProfileInfo(ctx context.Context) (*ProfileInfo, error) {
	var out ProfileInfo
	if err := r.t.MakeRequest(ctx, http.MethodGet, "/v1/profile-searches/"+r.ID+"/result", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/peoplelens/peoplelens-go/api"
)

// stubBackend serves the three search endpoints. finishAfter controls how
// many status checks report pending before the search finishes; a negative
// value means the search never finishes.
func stubBackend(t *testing.T, finishAfter int32, result string) *httptest.Server {
	t.Helper()
	var polls int32
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/profile-searches":
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte(`{"requestId":"req-42"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/v1/profile-searches/req-42":
			n := atomic.AddInt32(&polls, 1)
			finished := finishAfter >= 0 && n > finishAfter
			_, _ = fmt.Fprintf(w, `{"requestId":"req-42","finished":%t}`, finished)
		case r.Method == http.MethodGet && r.URL.Path == "/v1/profile-searches/req-42/result":
			_, _ = w.Write([]byte(result))
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
}

func fastSDK(t Transport) *SDK {
	return New(t, WithPollInterval(time.Millisecond), WithMaxPollInterval(5*time.Millisecond))
}

func TestSearch_ResolvesProfile(t *testing.T) {
	t.Parallel()

	ts := stubBackend(t, 0, `{"info":"some_info","recommendations":"some_recs"}`)
	defer ts.Close()

	sdk := fastSDK(api.New(ts.URL))
	prof, err := sdk.Search(context.Background(), SearchParams{}, time.Second)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if string(prof.Info) != `"some_info"` {
		t.Fatalf("info mismatch: %s", string(prof.Info))
	}
	if string(prof.Recommendations) != `"some_recs"` {
		t.Fatalf("recommendations mismatch: %s", string(prof.Recommendations))
	}
}

func TestSearch_PollsUntilFinished(t *testing.T) {
	t.Parallel()

	ts := stubBackend(t, 3, `{"info":{"name":"Ada"},"recommendations":[]}`)
	defer ts.Close()

	sdk := fastSDK(api.New(ts.URL))
	prof, err := sdk.Search(context.Background(), SearchParams{FullName: "Ada Lovelace"}, 5*time.Second)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if string(prof.Info) != `{"name":"Ada"}` {
		t.Fatalf("info mismatch: %s", string(prof.Info))
	}
}

func TestSearch_TimeoutReturnsNotFoundYet(t *testing.T) {
	t.Parallel()

	ts := stubBackend(t, -1, `{}`)
	defer ts.Close()

	sdk := fastSDK(api.New(ts.URL))
	_, err := sdk.Search(context.Background(), SearchParams{}, 10*time.Millisecond)

	var nfy *NotFoundYetError
	if !errors.As(err, &nfy) {
		t.Fatalf("expected *NotFoundYetError, got %v", err)
	}
	if nfy.Request.ID != "req-42" {
		t.Fatalf("unexpected request id %q", nfy.Request.ID)
	}
	if req, ok := IsNotFoundYet(err); !ok || req.ID != "req-42" {
		t.Fatalf("IsNotFoundYet mismatch: %v %v", req, ok)
	}
}

func TestSearch_ZeroTimeoutStillChecksOnce(t *testing.T) {
	t.Parallel()

	ts := stubBackend(t, 0, `{"info":"i","recommendations":"r"}`)
	defer ts.Close()

	sdk := fastSDK(api.New(ts.URL))
	prof, err := sdk.Search(context.Background(), SearchParams{}, 0)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if string(prof.Info) != `"i"` {
		t.Fatalf("info mismatch: %s", string(prof.Info))
	}
}

// errTransport fails every request with a fixed error.
type errTransport struct {
	token string
	err   error
}

func (f *errTransport) OrgToken() string { return f.token }

func (f *errTransport) MakeRequest(ctx context.Context, method, path string, in, out any) error {
	return f.err
}

func TestSearch_StartErrorPassesThrough(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	sdk := fastSDK(&errTransport{err: errBoom})

	_, err := sdk.Search(context.Background(), SearchParams{}, time.Second)
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected the injected error, got %v", err)
	}
}

func TestSearch_ClassifiesStatusCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"unauthorized", http.StatusUnauthorized, func(t *testing.T, err error) {
			var na *NotAuthedError
			if !errors.As(err, &na) {
				t.Fatalf("expected *NotAuthedError, got %v", err)
			}
			if na.Token != "org-token-123" {
				t.Fatalf("unexpected token %q", na.Token)
			}
		}},
		{"not found", http.StatusNotFound, func(t *testing.T, err error) {
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		}},
		{"rate limited", http.StatusTooManyRequests, func(t *testing.T, err error) {
			if !errors.Is(err, ErrRateLimited) {
				t.Fatalf("expected ErrRateLimited, got %v", err)
			}
		}},
		{"unrecognized status passes through", http.StatusInternalServerError, func(t *testing.T, err error) {
			var apiErr *api.Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *api.Error, got %v", err)
			}
			if apiErr.StatusCode != http.StatusInternalServerError {
				t.Fatalf("unexpected status %d", apiErr.StatusCode)
			}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer ts.Close()

			sdk := fastSDK(api.New(ts.URL, api.WithOrgToken("org-token-123")))
			_, err := sdk.Search(context.Background(), SearchParams{}, time.Second)
			tc.check(t, err)
		})
	}
}

func TestSearch_ClassifiesPollAndResultErrors(t *testing.T) {
	t.Parallel()

	t.Run("status check rejects with 401", func(t *testing.T) {
		t.Parallel()
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				w.WriteHeader(http.StatusAccepted)
				_, _ = w.Write([]byte(`{"requestId":"req-42"}`))
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer ts.Close()

		sdk := fastSDK(api.New(ts.URL, api.WithOrgToken("org-token-123")))
		_, err := sdk.Search(context.Background(), SearchParams{}, time.Second)

		var na *NotAuthedError
		if !errors.As(err, &na) {
			t.Fatalf("expected *NotAuthedError, got %v", err)
		}
	})

	t.Run("result fetch rejects with 404", func(t *testing.T) {
		t.Parallel()
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodPost:
				w.WriteHeader(http.StatusAccepted)
				_, _ = w.Write([]byte(`{"requestId":"req-42"}`))
			case strings.HasSuffix(r.URL.Path, "/result"):
				w.WriteHeader(http.StatusNotFound)
			default:
				_, _ = w.Write([]byte(`{"requestId":"req-42","finished":true}`))
			}
		}))
		defer ts.Close()

		sdk := fastSDK(api.New(ts.URL))
		_, err := sdk.Search(context.Background(), SearchParams{}, time.Second)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestAwait_ResumesTimedOutRequest(t *testing.T) {
	t.Parallel()

	ts := stubBackend(t, 5, `{"info":"late_info","recommendations":"late_recs"}`)
	defer ts.Close()

	sdk := fastSDK(api.New(ts.URL))
	ctx := context.Background()

	_, err := sdk.Search(ctx, SearchParams{}, time.Millisecond)
	pending, ok := IsNotFoundYet(err)
	if !ok {
		t.Fatalf("expected NotFoundYetError, got %v", err)
	}

	prof, err := sdk.Await(ctx, pending, 5*time.Second)
	if err != nil {
		t.Fatalf("Await returned error: %v", err)
	}
	if string(prof.Info) != `"late_info"` {
		t.Fatalf("info mismatch: %s", string(prof.Info))
	}
}

func TestSearchMany(t *testing.T) {
	t.Parallel()

	var seq int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost:
			var params SearchParams
			_ = json.NewDecoder(r.Body).Decode(&params)
			atomic.AddInt32(&seq, 1)
			w.WriteHeader(http.StatusAccepted)
			_, _ = fmt.Fprintf(w, `{"requestId":"req-%s"}`, params.FullName)
		case strings.HasSuffix(r.URL.Path, "/result"):
			// Echo the request id back inside info so order is observable.
			id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/profile-searches/"), "/result")
			_, _ = fmt.Fprintf(w, `{"info":"%s","recommendations":[]}`, id)
		default:
			_, _ = w.Write([]byte(`{"finished":true}`))
		}
	}))
	defer ts.Close()

	sdk := fastSDK(api.New(ts.URL))
	profs, err := sdk.SearchMany(context.Background(), []SearchParams{
		{FullName: "a"},
		{FullName: "b"},
	}, time.Second)
	if err != nil {
		t.Fatalf("SearchMany returned error: %v", err)
	}
	if len(profs) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profs))
	}
	if string(profs[0].Info) != `"req-a"` || string(profs[1].Info) != `"req-b"` {
		t.Fatalf("order not preserved: %s, %s", profs[0].Info, profs[1].Info)
	}
	if atomic.LoadInt32(&seq) != 2 {
		t.Fatalf("expected 2 submissions, got %d", seq)
	}
}

func TestSearch_ContextCancelledWhileWaiting(t *testing.T) {
	t.Parallel()

	ts := stubBackend(t, -1, `{}`)
	defer ts.Close()

	sdk := New(api.New(ts.URL), WithPollInterval(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	_, err := sdk.Search(ctx, SearchParams{}, 10*time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSearch_RejectsInvalidParams(t *testing.T) {
	t.Parallel()

	sdk := fastSDK(&errTransport{err: errors.New("transport must not be reached")})
	_, err := sdk.Search(context.Background(), SearchParams{Limit: -1}, time.Second)
	if err == nil || !strings.Contains(err.Error(), "limit") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

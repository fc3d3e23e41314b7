package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/skillhub/internal/pkg/apperrors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/"), srv
}

func TestClient_Path(t *testing.T) {
	c := New("http://backend:9000/")
	assert.Equal(t, "http://backend:9000/api/students", c.Path("/students"))
	assert.Equal(t, "http://backend:9000/api/students/4", c.Path("students/4"))
	assert.Equal(t, "http://backend:9000", c.Base())
}

func TestClient_FetchJSON_Success(t *testing.T) {
	tests := []struct {
		name string
		body string
		want interface{}
	}{
		{name: "array", body: `[{"id":1}]`, want: []interface{}{map[string]interface{}{"id": 1.0}}},
		{name: "object", body: `{"id":5,"name":"Ada"}`, want: map[string]interface{}{"id": 5.0, "name": "Ada"}},
		{name: "empty body", body: "", want: nil},
		{name: "malformed json returns raw text", body: "ok, created", want: "ok, created"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			})
			got, err := c.Fetch(context.Background(), "/students")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_FetchJSON_SendsMethodHeadersAndBody(t *testing.T) {
	var gotMethod, gotPath, gotType, gotTrace string
	var gotBody map[string]interface{}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotTrace = r.Header.Get("X-Trace")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":5}`)
	})

	headers := http.Header{}
	headers.Set("X-Trace", "abc")
	got, err := c.FetchJSON(context.Background(), "/students", &RequestOptions{
		Method:  http.MethodPost,
		Headers: headers,
		JSON:    map[string]string{"name": "Ada", "email": "ada@x.com", "phone": "555"},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"id": 5.0}, got)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/students", gotPath)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "abc", gotTrace)
	assert.Equal(t, map[string]interface{}{"name": "Ada", "email": "ada@x.com", "phone": "555"}, gotBody)
}

func TestClient_FetchJSON_HTTPError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantMsg  string
		wantBody interface{}
	}{
		{
			name:     "message field",
			status:   http.StatusBadRequest,
			body:     `{"message":"course 3 not found"}`,
			wantMsg:  "course 3 not found",
			wantBody: map[string]interface{}{"message": "course 3 not found"},
		},
		{
			name:     "raw text",
			status:   http.StatusInternalServerError,
			body:     "database is down",
			wantMsg:  "database is down",
			wantBody: "database is down",
		},
		{
			name:    "status text",
			status:  http.StatusNotFound,
			wantMsg: "Not Found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := c.Fetch(context.Background(), "/enrollments")
			require.Error(t, err)

			var httpErr *apperrors.HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
			assert.Equal(t, tt.wantBody, httpErr.Body)
		})
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := New(base).Fetch(context.Background(), "/students")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNetwork))
	assert.False(t, IsCanceled(err))
}

func TestClient_CanceledContext(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Fetch(ctx, "/students")
	require.Error(t, err)
	assert.True(t, IsCanceled(err))
	assert.False(t, errors.Is(err, apperrors.ErrNetwork))
}

type student struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func TestClient_FetchInto_MergesOverExistingValue(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":7,"name":"Ada L."}`)
	})
	out := student{ID: 7, Name: "Ada", Email: "ada@x.com", Phone: "555"}
	err := c.FetchInto(context.Background(), "/students/7", &RequestOptions{Method: http.MethodPut, JSON: out}, &out)
	require.NoError(t, err)
	assert.Equal(t, student{ID: 7, Name: "Ada L.", Email: "ada@x.com", Phone: "555"}, out)
}

func TestClient_FetchInto_EmptyAndNonJSON(t *testing.T) {
	body := ""
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, body)
	})

	out := student{ID: 1, Name: "Keep"}
	require.NoError(t, c.FetchInto(context.Background(), "/students/1", nil, &out))
	assert.Equal(t, "Keep", out.Name)

	body = "updated"
	err := c.FetchInto(context.Background(), "/students/1", nil, &out)
	assert.True(t, errors.Is(err, apperrors.ErrUnexpectedPayload))
	assert.Equal(t, "Keep", out.Name)
}

func TestClient_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	again, err := NewMetrics(reg)
	require.NoError(t, err)
	assert.Same(t, m.requests, again.requests)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := New(srv.URL, WithMetrics(m))
	_, _ = c.Fetch(context.Background(), "/students")
	_, _ = c.FetchJSON(context.Background(), "/students/1", &RequestOptions{Method: http.MethodDelete})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("DELETE", "404")))
}

package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"plantmanager/internal/catalog"
	"plantmanager/internal/model"
)

type mockTransport struct {
	body       string
	statusCode int
	err        error
	lastURL    string
}

func (m *mockTransport) Do(req *http.Request) (*http.Response, error) {
	m.lastURL = req.URL.String()
	if m.err != nil {
		return nil, m.err
	}
	return &http.Response{
		StatusCode: m.statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(m.body)),
	}, nil
}

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := catalog.Seed()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	srv := httptest.NewServer(catalog.NewRouter(c, nil))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchPlantsAgainstCatalog(t *testing.T) {
	srv := newCatalogServer(t)
	client := NewClientWithHTTP(srv.URL, srv.Client())
	ctx := context.Background()

	tests := []struct {
		page      int
		wantCount int
	}{
		{page: 1, wantCount: 8},
		{page: 2, wantCount: 3},
		{page: 3, wantCount: 0},
	}

	for _, tt := range tests {
		plants, err := client.FetchPlants(ctx, tt.page, 8)
		if err != nil {
			t.Fatalf("page %d: %v", tt.page, err)
		}
		if diff := cmp.Diff(tt.wantCount, len(plants)); diff != "" {
			t.Errorf("page %d size mismatch (-want +got):\n%s", tt.page, diff)
		}
		if plants == nil {
			t.Errorf("page %d: expected empty slice, got nil", tt.page)
		}
	}
}

func TestFetchEnvironmentsAgainstCatalog(t *testing.T) {
	srv := newCatalogServer(t)
	client := NewClientWithHTTP(srv.URL+"/", srv.Client())

	envs, err := client.FetchEnvironments(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := []string{"bathroom", "bedroom", "kitchen", "living_room"}
	var got []string
	for _, env := range envs {
		got = append(got, env.Key)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("environment keys mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchPlantsRequestURL(t *testing.T) {
	transport := &mockTransport{body: "[]", statusCode: 200}
	client := NewClientWithHTTP("http://plants.test", transport)

	if _, err := client.FetchPlants(context.Background(), 3, 8); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := "http://plants.test/plants?_limit=8&_order=asc&_page=3&_sort=name"
	if diff := cmp.Diff(want, transport.lastURL); diff != "" {
		t.Errorf("url mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchEnvironmentsDropsReservedKey(t *testing.T) {
	transport := &mockTransport{
		statusCode: 200,
		body:       `[{"key":"all","title":"Everything"},{"key":"indoor","title":"Indoor"}]`,
	}
	client := NewClientWithHTTP("http://plants.test", transport)

	got, err := client.FetchEnvironments(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := []model.Environment{{Key: "indoor", Title: "Indoor"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("environments mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchErrors(t *testing.T) {
	networkErr := errors.New("connection refused")

	tests := []struct {
		name       string
		transport  *mockTransport
		wantStatus int
		wantCause  error
	}{
		{
			name:       "http error status",
			transport:  &mockTransport{body: "oops", statusCode: 500},
			wantStatus: 500,
		},
		{
			name:      "network error",
			transport: &mockTransport{err: networkErr},
			wantCause: networkErr,
		},
		{
			name:      "invalid json",
			transport: &mockTransport{body: "not json", statusCode: 200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClientWithHTTP("http://plants.test", tt.transport)
			_, err := client.FetchPlants(context.Background(), 1, 8)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("expected *FetchError, got %T", err)
			}
			if diff := cmp.Diff("plants", fetchErr.Op); diff != "" {
				t.Errorf("op mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantStatus, fetchErr.Status); diff != "" {
				t.Errorf("status mismatch (-want +got):\n%s", diff)
			}
			if tt.wantCause != nil && !errors.Is(err, tt.wantCause) {
				t.Errorf("expected error chain to contain %v, got %v", tt.wantCause, err)
			}
		})
	}
}

func TestFetchHonorsContextCancellation(t *testing.T) {
	srv := newCatalogServer(t)
	client := NewClientWithHTTP(srv.URL, srv.Client())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchPlants(ctx, 1, 8)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}

package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		statusCode int
		want       string
		wantErr    bool
	}{
		{
			name: "event detail page",
			page: `<!DOCTYPE html>
				<html>
				<head><title>Farmers Market | City of Springfield</title></head>
				<body>
					<nav><a href="/">Home</a> <a href="/events">Events</a></nav>
					<article>
						<h1>Downtown Farmers Market</h1>
						<p>Fresh produce, baked goods and local crafts every Saturday on the Old State Capitol Plaza.</p>
						<p>Vendors accept cash and SNAP. Free parking is available in the Municipal Garage.</p>
					</article>
					<footer>City of Springfield, 800 E Monroe St</footer>
				</body>
				</html>`,
			statusCode: http.StatusOK,
			want:       "Fresh produce, baked goods and local crafts",
		},
		{
			name: "minimal page",
			page: `<!DOCTYPE html>
				<html>
				<body>
					<p>Library closed for staff training</p>
				</body>
				</html>`,
			statusCode: http.StatusOK,
			want:       "Library closed for staff training",
		},
		{name: "server error", page: "error", statusCode: http.StatusInternalServerError, wantErr: true},
		{name: "not found", page: "not found", statusCode: http.StatusNotFound, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.page))
			}))
			defer ts.Close()

			text, err := NewExtractor(FetcherOpts{Timeout: 10 * time.Second}).Extract(context.Background(), ts.URL)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, text, tt.want)
		})
	}
}

func TestExtractor_Extract_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
			_, _ = w.Write([]byte("<html><body>Too late</body></html>"))
		}
	}))
	defer ts.Close()

	_, err := NewExtractor(FetcherOpts{Timeout: 100 * time.Millisecond}).Extract(context.Background(), ts.URL)
	require.Error(t, err)
}

func TestExtractor_Extract_InvalidURL(t *testing.T) {
	extractor := NewExtractor(FetcherOpts{Timeout: time.Second})
	for _, u := range []string{"", "not-a-url", "http://localhost:99999/event"} {
		t.Run(u, func(t *testing.T) {
			_, err := extractor.Extract(context.Background(), u)
			require.Error(t, err)
		})
	}
}

func TestExtractor_Extract_ContextCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractor(FetcherOpts{Timeout: 5 * time.Second}).Extract(ctx, ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context canceled")
}

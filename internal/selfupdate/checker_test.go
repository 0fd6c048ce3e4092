package selfupdate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReleaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/abhisek/logiq/releases/latest" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckUpdateAvailable(t *testing.T) {
	srv := newReleaseServer(t, http.StatusOK, `{"tag_name": "v1.2.0"}`)
	c := New("abhisek", "logiq", WithAPIBaseURL(srv.URL))

	res, err := c.Check(context.Background(), "v1.1.0")
	require.NoError(t, err)

	assert.True(t, res.UpdateAvailable)
	assert.Equal(t, "v1.1.0", res.CurrentVersion)
	assert.Equal(t, "v1.2.0", res.LatestVersion)
}

func TestCheckAlreadyLatest(t *testing.T) {
	srv := newReleaseServer(t, http.StatusOK, `{"tag_name": "v1.1.0"}`)
	c := New("abhisek", "logiq", WithAPIBaseURL(srv.URL))

	res, err := c.Check(context.Background(), "v1.1.0")
	require.NoError(t, err)
	assert.False(t, res.UpdateAvailable)
}

func TestCheckNewerThanRelease(t *testing.T) {
	srv := newReleaseServer(t, http.StatusOK, `{"tag_name": "v1.0.0"}`)
	c := New("abhisek", "logiq", WithAPIBaseURL(srv.URL))

	res, err := c.Check(context.Background(), "v1.1.0")
	require.NoError(t, err)
	assert.False(t, res.UpdateAvailable)
}

func TestCheckNormalizesBareVersions(t *testing.T) {
	srv := newReleaseServer(t, http.StatusOK, `{"tag_name": "1.2.0"}`)
	c := New("abhisek", "logiq", WithAPIBaseURL(srv.URL))

	res, err := c.Check(context.Background(), "1.1.0")
	require.NoError(t, err)

	assert.True(t, res.UpdateAvailable)
	assert.Equal(t, "v1.1.0", res.CurrentVersion)
	assert.Equal(t, "v1.2.0", res.LatestVersion)
}

func TestCheckDevBuild(t *testing.T) {
	c := New("abhisek", "logiq")

	for _, version := range []string{"", "(devel)"} {
		_, err := c.Check(context.Background(), version)
		assert.ErrorIs(t, err, ErrDevBuild, "version %q", version)
	}
}

func TestCheckServerErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"not found", http.StatusNotFound, `{"message": "Not Found"}`},
		{"rate limited", http.StatusForbidden, `{"message": "rate limit"}`},
		{"empty tag", http.StatusOK, `{"tag_name": ""}`},
		{"garbage body", http.StatusOK, `not json`},
		{"invalid tag", http.StatusOK, `{"tag_name": "release-candidate"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newReleaseServer(t, tt.status, tt.body)
			c := New("abhisek", "logiq", WithAPIBaseURL(srv.URL))

			_, err := c.Check(context.Background(), "v1.0.0")
			require.Error(t, err)
		})
	}
}

func TestCheckInvalidCurrentVersion(t *testing.T) {
	srv := newReleaseServer(t, http.StatusOK, `{"tag_name": "v1.2.0"}`)
	c := New("abhisek", "logiq", WithAPIBaseURL(srv.URL))

	_, err := c.Check(context.Background(), "yesterday's build")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrDevBuild))
}

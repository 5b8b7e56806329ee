package tts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrNoAPIKey)

	s, err := New("sk-test")
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestSynthesize(t *testing.T) {
	fakeAudio := []byte("ID3fake-mp3-bytes")

	var gotPath, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(fakeAudio)
	}))
	defer ts.Close()

	s, err := New("sk-test", WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))
	require.NoError(t, err)

	audio, err := s.Synthesize(context.Background(), "Work complete!")
	require.NoError(t, err)
	assert.Equal(t, fakeAudio, audio)
	assert.Contains(t, gotPath, "audio/speech")
	assert.Equal(t, "Bearer sk-test", gotAuth)
}

func TestSynthesizeServerError(t *testing.T) {
	// 400s are not retried by the client, so the test stays fast.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad input"}}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	s, err := New("sk-test", WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))
	require.NoError(t, err)

	_, err = s.Synthesize(context.Background(), "hello")
	assert.Error(t, err)
}

func TestPlayerCommandDarwin(t *testing.T) {
	cmd, err := playerCommand(context.Background(), "darwin", "/tmp/x.mp3")
	require.NoError(t, err)
	assert.Equal(t, []string{"afplay", "/tmp/x.mp3"}, cmd.Args)
}

func TestPlayerCommandWindows(t *testing.T) {
	cmd, err := playerCommand(context.Background(), "windows", `C:\x.mp3`)
	require.NoError(t, err)
	assert.Equal(t, "powershell", cmd.Args[0])
	assert.Contains(t, cmd.Args[2], "SoundPlayer")
}

func TestPlayerCommandUnsupported(t *testing.T) {
	_, err := playerCommand(context.Background(), "plan9", "/tmp/x.mp3")
	assert.Error(t, err)
}

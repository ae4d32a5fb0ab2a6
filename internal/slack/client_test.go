package slack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhanushperumalla/ai-post-generator/internal/models"
)

type fakeSlack struct {
	mu       sync.Mutex
	messages []string
	uploads  [][]byte
	filename string
	channel  string
}

func newFakeSlack(t *testing.T) (*fakeSlack, *httptest.Server) {
	t.Helper()
	fake := &fakeSlack{}
	mux := http.NewServeMux()
	var server *httptest.Server

	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("/chat.postMessage", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		fake.mu.Lock()
		fake.messages = append(fake.messages, r.FormValue("text"))
		fake.channel = r.FormValue("channel")
		fake.mu.Unlock()
		writeJSON(w, map[string]any{"ok": true, "channel": r.FormValue("channel"), "ts": "1700000000.000100"})
	})
	mux.HandleFunc("/files.getUploadURLExternal", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		fake.mu.Lock()
		fake.filename = r.FormValue("filename")
		fake.mu.Unlock()
		writeJSON(w, map[string]any{"ok": true, "upload_url": server.URL + "/upload", "file_id": "F123"})
	})
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("file")
		if assert.NoError(t, err) {
			data, _ := io.ReadAll(file)
			fake.mu.Lock()
			fake.uploads = append(fake.uploads, data)
			fake.mu.Unlock()
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/files.completeUploadExternal", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		fake.mu.Lock()
		fake.channel = r.FormValue("channel_id")
		fake.mu.Unlock()
		writeJSON(w, map[string]any{"ok": true, "files": []map[string]string{{"id": "F123", "title": "Generated image"}}})
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return fake, server
}

func TestClient_Configured(t *testing.T) {
	assert.False(t, NewClient("", "C1", nil).Configured())
	assert.False(t, NewClient("xoxb-token", " ", nil).Configured())
	assert.True(t, NewClient("xoxb-token", "C1", nil).Configured())

	var nilClient *Client
	assert.False(t, nilClient.Configured())
}

func TestClient_ShareTextPost(t *testing.T) {
	fake, server := newFakeSlack(t)
	client := NewClient("xoxb-token", "C1", nil, slack.OptionAPIURL(server.URL+"/"))

	err := client.SharePost(context.Background(), models.NewTextPost("hello world"))
	require.NoError(t, err)

	assert.Equal(t, []string{"hello world"}, fake.messages)
	assert.Equal(t, "C1", fake.channel)
}

func TestClient_ShareImagePost(t *testing.T) {
	fake, server := newFakeSlack(t)
	client := NewClient("xoxb-token", "C1", nil, slack.OptionAPIURL(server.URL+"/"))

	img := models.Image{Data: []byte("png-bytes"), MimeType: "image/png"}
	err := client.SharePost(context.Background(), models.NewImagePost(img.DataURI()))
	require.NoError(t, err)

	assert.Equal(t, "generated-image.png", fake.filename)
	require.Len(t, fake.uploads, 1)
	assert.Equal(t, []byte("png-bytes"), fake.uploads[0])
	assert.Equal(t, "C1", fake.channel)
	assert.Empty(t, fake.messages)
}

func TestClient_ShareInvalidImage(t *testing.T) {
	client := NewClient("xoxb-token", "C1", nil, slack.OptionAPIURL("http://127.0.0.1:1/"))

	err := client.SharePost(context.Background(), models.NewImagePost("not-a-data-uri"))
	assert.ErrorIs(t, err, models.ErrInvalidDataURI)
}

func TestClient_NotConfigured(t *testing.T) {
	client := NewClient("", "", nil)

	assert.ErrorIs(t, client.SendMessage(context.Background(), "x"), ErrNotConfigured)
	assert.ErrorIs(t, client.SharePost(context.Background(), models.NewTextPost("x")), ErrNotConfigured)
}

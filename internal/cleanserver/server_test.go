package cleanserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(Config{}, zerolog.Nop()).Router())
	t.Cleanup(ts.Close)
	return ts
}

func postClean(t *testing.T, ts *httptest.Server, body string) (*http.Response, cleanResponse) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/clean", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	var res cleanResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	}
	return resp, res
}

func TestHandleClean(t *testing.T) {
	ts := newTestServer(t)
	resp, res := postClean(t, ts, `{"markup":"<div style=\"color:red\" onclick=\"x()\">hi</div>"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<div>hi</div>", res.HTML)
	assert.True(t, res.Fragment)
	assert.Equal(t, 1, res.Elements)
}

func TestHandleClean_OptionsApplied(t *testing.T) {
	ts := newTestServer(t)
	resp, res := postClean(t, ts, `{"markup":"<!-- note --><p class=\"x\">x</p>","options":{"removeComments":true,"removeClasses":true}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<p>x</p>", res.HTML)
}

func TestHandleClean_UnknownOptionIgnored(t *testing.T) {
	ts := newTestServer(t)
	resp, res := postClean(t, ts, `{"markup":"<p>x</p>","options":{"nonsense":true}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<p>x</p>", res.HTML)
}

func TestHandleClean_FullDocument(t *testing.T) {
	ts := newTestServer(t)
	resp, res := postClean(t, ts, `{"markup":"<!DOCTYPE html><html><body>x</body></html>"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, res.Fragment)
	assert.True(t, strings.HasPrefix(res.HTML, "<!DOCTYPE html>"))
}

func TestHandleClean_EmptyMarkup(t *testing.T) {
	ts := newTestServer(t)
	resp, res := postClean(t, ts, `{"markup":"   "}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "", res.HTML)
	assert.Equal(t, 0, res.Elements)
}

func TestHandleClean_BadJSON(t *testing.T) {
	ts := newTestServer(t)
	resp, _ := postClean(t, ts, `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleCleanWS(t *testing.T) {
	ts := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/clean/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	markup := strings.Repeat(`<p style="margin:0">x</p>`, 250)
	require.NoError(t, conn.WriteJSON(map[string]any{"markup": markup}))

	var sawProgress bool
	var lastProcessed float64
	for {
		var frame map[string]any
		require.NoError(t, conn.ReadJSON(&frame))
		switch frame["type"] {
		case "progress":
			sawProgress = true
			processed := frame["processed"].(float64)
			require.GreaterOrEqual(t, processed, lastProcessed)
			lastProcessed = processed
		case "result":
			assert.True(t, sawProgress, "expected progress frames before the result")
			assert.Equal(t, float64(250), lastProcessed)
			assert.NotContains(t, frame["html"], "style=")
			assert.Contains(t, frame["html"], "<p>x</p>")
			assert.Equal(t, true, frame["fragment"])
			return
		default:
			t.Fatalf("unexpected frame: %v", frame)
		}
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsExposed(t *testing.T) {
	ts := newTestServer(t)
	_, _ = postClean(t, ts, `{"markup":"<p>x</p>"}`)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "htmlcleaner_elements_processed_total")
	assert.Contains(t, string(body), "htmlcleaner_cleans_total")
}

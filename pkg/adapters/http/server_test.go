package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jza"
	httpAdapter "github.com/aretw0/jza/pkg/adapters/http"
	"github.com/aretw0/jza/pkg/builder"
	"github.com/aretw0/jza/pkg/observability"
)

func newServer(t *testing.T) (*httptest.Server, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetrics()
	eng, err := jza.New(
		jza.WithOperations(builder.OpPrimitive),
		jza.WithSeed(5),
		jza.WithLifecycleHooks(metrics.Hooks()),
	)
	require.NoError(t, err)
	song, err := eng.ParseLine("IM VIm IIm Vx IM")
	require.NoError(t, err)
	_, err = eng.Train(song)
	require.NoError(t, err)

	srv := httptest.NewServer(httpAdapter.NewHandler(eng, httpAdapter.WithMetrics(metrics)))
	t.Cleanup(srv.Close)
	return srv, metrics
}

func post(t *testing.T, srv *httptest.Server, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func TestHealthAndInfo(t *testing.T) {
	srv, _ := newServer(t)

	resp, body := get(t, srv, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	resp, body = get(t, srv, "/info")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var info struct {
		App     string    `json:"app"`
		Version string    `json:"version"`
		Model   jza.Stats `json:"model"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &info))
	assert.Equal(t, "jza-http", info.App)
	assert.Equal(t, jza.Version, info.Version)
	assert.Equal(t, 11, info.Model.States)
}

func TestValidate(t *testing.T) {
	srv, _ := newServer(t)

	resp, out := post(t, srv, "/validate", `{"symbols":["IIm","Vx","IM"]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, out["accepted"])
	assert.Nil(t, out["failure"])

	resp, out = post(t, srv, "/validate", `{"symbols":["IIm","Vm"]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, out["accepted"])
	failure := out["failure"].(map[string]any)
	assert.Equal(t, 1.0, failure["index"])
	assert.Equal(t, "Vm", failure["symbol"])
	assert.Equal(t, []any{"Subdominant 2"}, failure["previousStates"])

	resp, out = post(t, srv, "/validate", `{"symbols":["IIm","Qx"]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out["error"], "invalid symbol")

	resp, _ = post(t, srv, "/validate", `{"symbols":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyze(t *testing.T) {
	srv, _ := newServer(t)

	_, out := post(t, srv, "/analyze", `{"symbols":["IIm","Vx","IM"]}`)
	assert.Equal(t, []any{[]any{"Subdominant 2", "Dominant 5", "Tonic 1"}}, out["paths"])

	_, out = post(t, srv, "/analyze", `{"symbols":["Vm"]}`)
	assert.Equal(t, []any{}, out["paths"])
}

func TestGenerate(t *testing.T) {
	srv, _ := newServer(t)

	resp, out := post(t, srv, "/generate", `{"length":5,"start":"IM","end":"IM","key":"C"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, out)
	assert.Len(t, out["symbols"], 5)
	assert.Len(t, out["states"], 5)
	chords := out["chords"].([]any)
	assert.Equal(t, "CM7", chords[0])

	resp, _ = post(t, srv, "/generate", `{"length":5,"start":"IM"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = post(t, srv, "/generate", `{"length":5,"start":"IM","end":"IM","key":"Q"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReharmonize(t *testing.T) {
	srv, _ := newServer(t)

	resp, out := post(t, srv, "/reharmonize", `{"symbols":["IM","VIm","IIm","Vx","IM"],"index":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, out)
	assert.Equal(t, "IM", out["symbols"].([]any)[0])

	resp, _ = post(t, srv, "/reharmonize", `{"symbols":["IM","VIm"],"index":7}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProbabilities(t *testing.T) {
	srv, _ := newServer(t)

	resp, body := get(t, srv, "/probabilities/Vx")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"symbol":"Vx","states":[{"key":"Dominant 5","probability":1}]}`, body)

	resp, _ = get(t, srv, "/probabilities/nope")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGraphAndMetrics(t *testing.T) {
	srv, _ := newServer(t)

	resp, body := get(t, srv, "/graph?trained=true")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(body, "graph LR\n"))
	assert.Contains(t, body, `"Vx"`)

	post(t, srv, "/validate", `{"symbols":["IIm","Vx","IM"]}`)
	_, metrics := get(t, srv, "/metrics")
	assert.Contains(t, metrics, `jza_validations_total{status="accepted"} 1`)
	assert.Contains(t, metrics, `jza_http_requests_total{method="GET",route="/graph",status="200"} 1`)
	assert.Contains(t, metrics, `jza_http_requests_total{method="POST",route="/validate",status="200"} 1`)
}

package mockgemini_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shpitdev/air-assist/internal/mockgemini"
)

func post(t *testing.T, url string, body string, header http.Header) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

const promptBody = `{"contents":[{"parts":[{"text":"plan a trip"}]}]}`

func TestMockGemini_RepliesWithEnvelope(t *testing.T) {
	t.Parallel()

	srv := mockgemini.New(`{"placesToEat":[]}`)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, b := post(t, ts.URL+"/v1beta/models/gemini-test:generateContent?key=k", promptBody, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(b, &env))
	require.Len(t, env.Candidates, 1)
	assert.Equal(t, `{"placesToEat":[]}`, env.Candidates[0].Content.Parts[0].Text)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "gemini-test", calls[0].Model)
	assert.Equal(t, "plan a trip", calls[0].Prompt)
	assert.Equal(t, "query", calls[0].KeyVia)
}

func TestMockGemini_EnforcesAPIKey(t *testing.T) {
	t.Parallel()

	srv := mockgemini.New("{}")
	srv.RequireAPIKey("secret")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, _ := post(t, ts.URL+"/v1beta/models/m:generateContent", promptBody, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = post(t, ts.URL+"/v1beta/models/m:generateContent", promptBody, http.Header{"X-Goog-Api-Key": []string{"secret"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMockGemini_FailWithAndRaw(t *testing.T) {
	t.Parallel()

	srv := mockgemini.New("{}")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	srv.FailWith(http.StatusServiceUnavailable, "overloaded")
	resp, b := post(t, ts.URL+"/v1beta/models/m:generateContent", promptBody, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(b), "overloaded")

	srv.SetRawResponse(`{"candidates":[]}`)
	resp, b = post(t, ts.URL+"/v1beta/models/m:generateContent", promptBody, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"candidates":[]}`, string(b))

	srv.SetReply("ok")
	resp, b = post(t, ts.URL+"/v1beta/models/m:generateContent", promptBody, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(b), `"text":"ok"`)
}

func TestMockGemini_UnknownPath(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(mockgemini.New("{}").Handler())
	defer ts.Close()

	resp, _ := post(t, ts.URL+"/v1beta/models/m:countTokens", promptBody, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

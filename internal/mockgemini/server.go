package mockgemini

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Call records a generateContent request made to the mock service.
type Call struct {
	Method string
	Path   string
	Model  string
	Prompt string

	// KeyVia is "query", "header" or "" depending on how the API key arrived.
	KeyVia string
}

// Server implements a minimal "Gemini-like" generateContent surface.
//
// By default every request is answered with a well-formed envelope wrapping Reply.
// Status/RawBody overrides let tests exercise error paths.
type Server struct {
	mu    sync.Mutex
	calls []Call

	reply   string
	status  int
	rawBody []byte
	apiKey  string
}

type requestEnvelope struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

type responseEnvelope struct {
	Candidates []candidate `json:"candidates"`
}

type apiErrorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// New constructs a mock server answering with reply.
func New(reply string) *Server {
	return &Server{reply: reply, status: http.StatusOK}
}

// SetReply changes the model text returned in the candidates envelope.
func (s *Server) SetReply(reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reply = reply
	s.rawBody = nil
	s.status = http.StatusOK
}

// FailWith makes the server answer with a Google API error envelope and the given status.
func (s *Server) FailWith(status int, message string) {
	var env apiErrorEnvelope
	env.Error.Code = status
	env.Error.Message = message
	env.Error.Status = strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	b, _ := json.Marshal(env)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.rawBody = b
}

// SetRawResponse makes the server answer 200 with body verbatim (e.g. a broken envelope).
func (s *Server) SetRawResponse(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = http.StatusOK
	s.rawBody = []byte(body)
}

// RequireAPIKey enforces that requests carry key via ?key= or x-goog-api-key.
// If key is empty, the key is not enforced.
func (s *Server) RequireAPIKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = strings.TrimSpace(key)
}

// Calls returns a snapshot of calls made to the server.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Handler returns an http.Handler that serves the mock API.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.handleGenerate)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	// /{version}/models/{model}:generateContent
	model, ok := parseModel(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	b, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}
	var req requestEnvelope
	if err := json.Unmarshal(b, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "Invalid JSON payload received.")
		return
	}
	prompt := ""
	if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
		prompt = req.Contents[0].Parts[0].Text
	}

	key, via := apiKeyFrom(r)

	s.mu.Lock()
	s.calls = append(s.calls, Call{
		Method: r.Method,
		Path:   r.URL.Path,
		Model:  model,
		Prompt: prompt,
		KeyVia: via,
	})
	expected := s.apiKey
	status := s.status
	raw := s.rawBody
	reply := s.reply
	s.mu.Unlock()

	if expected != "" && key != expected {
		writeAPIError(w, http.StatusBadRequest, "API key not valid. Please pass a valid API key.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if raw != nil {
		w.WriteHeader(status)
		_, _ = w.Write(raw)
		return
	}
	_ = json.NewEncoder(w).Encode(responseEnvelope{
		Candidates: []candidate{{
			Content:      content{Parts: []part{{Text: reply}}, Role: "model"},
			FinishReason: "STOP",
		}},
	})
}

func parseModel(path string) (string, bool) {
	const suffix = ":generateContent"
	if !strings.HasSuffix(path, suffix) {
		return "", false
	}
	rest := strings.TrimSuffix(path, suffix)
	idx := strings.LastIndex(rest, "/models/")
	if idx < 0 {
		return "", false
	}
	model := rest[idx+len("/models/"):]
	if model == "" || strings.Contains(model, "/") {
		return "", false
	}
	return model, true
}

func apiKeyFrom(r *http.Request) (string, string) {
	if k := strings.TrimSpace(r.URL.Query().Get("key")); k != "" {
		return k, "query"
	}
	if k := strings.TrimSpace(r.Header.Get("x-goog-api-key")); k != "" {
		return k, "header"
	}
	return "", ""
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	var env apiErrorEnvelope
	env.Error.Code = status
	env.Error.Message = message
	env.Error.Status = strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

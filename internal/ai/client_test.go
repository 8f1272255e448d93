package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func geminiReply(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + mustJSON(text) + `}]}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestAnalyzeSymptomsSendsPromptAndParsesReply(t *testing.T) {
	var gotPath string
	var gotBody geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, geminiReply("Possible Conditions:\n- Flu"))
	}))
	defer server.Close()

	client := NewGeminiClient(server.URL, "test-key", "gemini-2.0-flash", "gemini-pro-vision", 5*time.Second, quietLogger())
	got, err := client.AnalyzeSymptoms(context.Background(), SymptomInput{
		Symptoms: "fever and chills",
		Age:      "35",
		Gender:   "female",
	})
	require.NoError(t, err)

	assert.Equal(t, "Possible Conditions:\n- Flu", got)
	assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", gotPath)
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	prompt := gotBody.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "fever and chills")
	assert.Contains(t, prompt, "Preventive Measures:")
}

func TestAnalyzeImageAttachesInlineData(t *testing.T) {
	var gotBody geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		io.WriteString(w, geminiReply("Visual Findings:\nA rash."))
	}))
	defer server.Close()

	client := NewGeminiClient(server.URL, "test-key", "gemini-2.0-flash", "gemini-pro-vision", 5*time.Second, quietLogger())
	got, err := client.AnalyzeImage(context.Background(), "image/png", "aGVsbG8=", SymptomInput{Symptoms: "rash"})
	require.NoError(t, err)
	assert.Contains(t, got, "Visual Findings:")

	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 2)
	require.NotNil(t, gotBody.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "image/png", gotBody.Contents[0].Parts[1].InlineData.MimeType)
	assert.Equal(t, "aGVsbG8=", gotBody.Contents[0].Parts[1].InlineData.Data)
}

func TestGenerateEmptyCandidatesIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	client := NewGeminiClient(server.URL, "k", "m", "v", 5*time.Second, quietLogger())
	_, err := client.AnalyzeSymptoms(context.Background(), SymptomInput{Symptoms: "x"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateNonOKStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewGeminiClient(server.URL, "k", "m", "v", 5*time.Second, quietLogger())
	_, err := client.AnalyzeSymptoms(context.Background(), SymptomInput{Symptoms: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateTimesOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		io.WriteString(w, geminiReply("late"))
	}))
	defer server.Close()

	client := NewGeminiClient(server.URL, "k", "m", "v", 20*time.Millisecond, quietLogger())
	_, err := client.AnalyzeSymptoms(context.Background(), SymptomInput{Symptoms: "x"})
	assert.Error(t, err)
}

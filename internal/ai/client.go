package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrEmptyResponse is returned when the model call succeeds but carries
// no usable text.
var ErrEmptyResponse = errors.New("no response received from AI")

// SymptomInput is the patient context passed to the analysis prompts.
type SymptomInput struct {
	Symptoms       string
	Age            string
	Gender         string
	Duration       string
	Severity       string
	MedicalHistory string
}

// Analyzer is the outbound AI contract: one text-completion call and one
// vision call, both returning free text that must be treated as
// unstructured, untrusted output.
type Analyzer interface {
	AnalyzeSymptoms(ctx context.Context, in SymptomInput) (string, error)
	AnalyzeImage(ctx context.Context, mimeType, imageB64 string, in SymptomInput) (string, error)
}

// GeminiClient calls the Google Gemini generateContent REST API. It is
// constructed once at startup and injected wherever analysis is needed.
type GeminiClient struct {
	baseURL     string
	apiKey      string
	textModel   string
	visionModel string
	httpClient  *http.Client
	logger      *logrus.Logger
}

// NewGeminiClient builds a client with a bounded per-request timeout. The
// upstream service gives no latency guarantee, so an unbounded call would
// block the whole request.
func NewGeminiClient(baseURL, apiKey, textModel, visionModel string, timeout time.Duration, logger *logrus.Logger) *GeminiClient {
	return &GeminiClient{
		baseURL:     baseURL,
		apiKey:      apiKey,
		textModel:   textModel,
		visionModel: visionModel,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// AnalyzeSymptoms runs the text model over the structured symptom prompt.
func (g *GeminiClient) AnalyzeSymptoms(ctx context.Context, in SymptomInput) (string, error) {
	prompt := symptomPrompt(in)
	return g.generate(ctx, g.textModel, []geminiPart{{Text: prompt}})
}

// AnalyzeImage runs the vision model over the image prompt plus the
// inline base64 image payload.
func (g *GeminiClient) AnalyzeImage(ctx context.Context, mimeType, imageB64 string, in SymptomInput) (string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	parts := []geminiPart{
		{Text: imagePrompt(in)},
		{InlineData: &geminiInlineData{MimeType: mimeType, Data: imageB64}},
	}
	return g.generate(ctx, g.visionModel, parts)
}

func (g *GeminiClient) generate(ctx context.Context, model string, parts []geminiPart) (string, error) {
	payload, err := json.Marshal(geminiRequest{Contents: []geminiContent{{Parts: parts}}})
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		g.logger.WithFields(logrus.Fields{
			"model":  model,
			"status": resp.StatusCode,
		}).Error("Gemini API returned non-OK status")
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse gemini response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}

	text := ""
	if len(parsed.Candidates) > 0 {
		for _, p := range parsed.Candidates[0].Content.Parts {
			text += p.Text
		}
	}
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func symptomPrompt(in SymptomInput) string {
	return fmt.Sprintf(`As a medical AI assistant, analyze the following patient information:

Patient Information:
- Age: %s
- Gender: %s
- Symptoms: %s
- Duration: %s
- Severity: %s
- Medical History: %s

Please provide a comprehensive analysis with the following structure:

Possible Conditions:
[List each condition with confidence level and brief description]
- Condition (High/Medium/Low confidence): Description and typical presentation

Key Symptoms Analysis:
- [Analyze each reported symptom and its significance]

Risk Factors:
- [List relevant risk factors based on patient's profile]

Recommended Next Steps:
1. [Immediate actions or self-care measures]
2. [When to seek professional medical care]
3. [Suggested medical tests or examinations]

Warning Signs:
- [List specific symptoms or changes that require immediate medical attention]

Preventive Measures:
1. [Lifestyle modifications]
2. [Preventive actions]
3. [General health recommendations]

Note: This is an AI-generated analysis for informational purposes only. Please consult with a healthcare provider for proper medical diagnosis and treatment.`,
		in.Age, in.Gender, in.Symptoms, in.Duration, in.Severity, in.MedicalHistory)
}

func imagePrompt(in SymptomInput) string {
	return fmt.Sprintf(`As a medical AI assistant, analyze this medical image with the following patient information:

Patient Information:
- Age: %s
- Gender: %s
- Reported Symptoms: %s
- Medical History: %s

Please provide a detailed analysis of the visible symptoms or conditions in the image.
Structure your analysis in the following sections:

Visual Findings:
[Describe all visible symptoms, abnormalities, or medical conditions shown in the image]

Potential Diagnoses:
[List possible diagnoses based on the visual findings, ordered by likelihood]

Recommended Medical Specialties:
[Suggest which medical specialists would be appropriate for follow-up care]

Important Notes:
[Include any critical observations or warnings about the condition]

This is for educational purposes only and not a substitute for professional medical diagnosis.
`, in.Age, in.Gender, in.Symptoms, in.MedicalHistory)
}

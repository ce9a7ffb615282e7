package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/platform/fault"
)

const analysisPrompt = `You are a medical scribe. Extract from the transcript the fields ` +
	`"symptoms", "diagnosis", "prescription" and "notes" and respond with a JSON object ` +
	`containing exactly those keys. Use an empty string for anything the transcript does not mention.`

// AzureConfig holds the two deployment endpoints. Either pair may be empty,
// which disables the corresponding step.
type AzureConfig struct {
	TranscriptionEndpoint string
	TranscriptionAPIKey   string
	CompletionEndpoint    string
	CompletionAPIKey      string
}

// AzureEngine talks to Azure OpenAI deployments: an audio transcription
// model and a chat completion model for field extraction.
type AzureEngine struct {
	cfg    AzureConfig
	client *http.Client
}

func NewAzureEngine(cfg AzureConfig) *AzureEngine {
	return &AzureEngine{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *AzureEngine) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	if e.cfg.TranscriptionEndpoint == "" {
		return "", fault.New(fault.KindValidation, "transcription is not configured")
	}
	if len(audio) == 0 {
		return "", fault.New(fault.KindValidation, "audio is required")
	}
	if contentType == "" {
		contentType = "audio/webm"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="audio.webm"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fault.Wrap(fault.KindStore, "build transcription request", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fault.Wrap(fault.KindStore, "build transcription request", err)
	}
	if err := writer.Close(); err != nil {
		return "", fault.Wrap(fault.KindStore, "build transcription request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.TranscriptionEndpoint, &body)
	if err != nil {
		return "", fault.Wrap(fault.KindStore, "build transcription request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("api-key", e.cfg.TranscriptionAPIKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fault.Wrap(fault.KindStore, "call transcription service", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fault.Newf(fault.KindStore, "transcription service returned %d: %s", resp.StatusCode, snippet)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fault.Wrap(fault.KindStore, "decode transcription response", err)
	}
	return out.Text, nil
}

// Analyze extracts structured fields from the transcript. Any failure
// degrades to empty fields so the transcript itself is never lost.
func (e *AzureEngine) Analyze(ctx context.Context, text string) (Fields, error) {
	if e.cfg.CompletionEndpoint == "" || text == "" {
		return Fields{}, nil
	}

	payload := map[string]interface{}{
		"messages": []map[string]string{
			{"role": "system", "content": analysisPrompt},
			{"role": "user", "content": text},
		},
		"response_format": map[string]string{"type": "json_object"},
		"temperature":     0.2,
	}
	blob, err := json.Marshal(payload)
	if err != nil {
		return Fields{}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.CompletionEndpoint, bytes.NewReader(blob))
	if err != nil {
		return Fields{}, nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", e.cfg.CompletionAPIKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return Fields{}, nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Fields{}, nil
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return Fields{}, nil
	}
	if len(completion.Choices) == 0 {
		return Fields{}, nil
	}

	var fields Fields
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &fields); err != nil {
		return Fields{}, nil
	}
	return fields, nil
}

var _ Engine = (*AzureEngine)(nil)

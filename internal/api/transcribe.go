package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// TranscribeResponse is the structured result of processing an encounter
// recording: the scribe output plus the raw transcript.
type TranscribeResponse struct {
	ClinicalHistory       string  `json:"clinicalHistory"`
	Plan                  string  `json:"plan"`
	RawTranscription      string  `json:"rawTranscription"`
	TranscriptionDuration float64 `json:"transcriptionDuration"`
	ProcessDuration       float64 `json:"processDuration"`
}

// PatientDetails optionally accompanies an encounter recording so the
// scribe can address the patient correctly.
type PatientDetails struct {
	Name   string // "Last, First" per the server's convention
	Gender string
	DOB    string
}

// Transcribe uploads an encounter recording and returns the processed
// scribe output. Transcription can take a while for long encounters, so
// callers may want a client constructed with a longer timeout.
func (c *Client) Transcribe(ctx context.Context, filename string, audio io.Reader, details PatientDetails) (*TranscribeResponse, error) {
	fields := map[string]string{}
	if details.Name != "" {
		fields["name"] = details.Name
	}
	if details.Gender != "" {
		fields["gender"] = details.Gender
	}
	if details.DOB != "" {
		fields["dob"] = details.DOB
	}

	var out TranscribeResponse
	if err := c.postMultipart(ctx, "/api/transcribe/transcribe", filename, audio, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dictate uploads an audio file for plain dictation (no scribe processing)
// and returns the transcript text.
func (c *Client) Dictate(ctx context.Context, filename string, audio io.Reader) (string, error) {
	var out struct {
		Transcription string `json:"transcription"`
	}
	if err := c.postMultipart(ctx, "/api/transcribe/dictate", filename, audio, nil, &out); err != nil {
		return "", err
	}
	return out.Transcription, nil
}

// postMultipart builds a multipart form with a single file part plus any
// extra string fields and POSTs it. The body is buffered in memory, which
// is acceptable for encounter-length recordings.
func (c *Client) postMultipart(ctx context.Context, path, filename string, file io.Reader, fields map[string]string, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copying audio data: %w", err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("writing form field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing multipart body: %w", err)
	}

	return c.do(ctx, http.MethodPost, c.endpoint(path, nil), &buf, w.FormDataContentType(), out)
}

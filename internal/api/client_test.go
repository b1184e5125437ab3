package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "http://phlox.test:5000"

// newTestClient returns a Client whose transport is intercepted by httpmock.
func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	httpc := &http.Client{}
	httpmock.ActivateNonDefault(httpc)
	t.Cleanup(httpmock.DeactivateAndReset)
	return New(testBase, append([]Option{WithHTTPClient(httpc)}, opts...)...)
}

func TestStatusErrorCarriesDetail(t *testing.T) {
	c := newTestClient(t)
	httpmock.RegisterResponder("GET", testBase+"/api/config/user",
		httpmock.NewStringResponder(422, `{"detail":"invalid settings payload"}`))

	_, err := c.UserSettings(context.Background())
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 422, se.StatusCode)
	assert.Equal(t, "invalid settings payload", se.Detail)
	assert.Contains(t, err.Error(), "invalid settings payload")
}

func TestStatusErrorFallsBackToRawBody(t *testing.T) {
	c := newTestClient(t)
	httpmock.RegisterResponder("GET", testBase+"/api/config/status",
		httpmock.NewStringResponder(502, "Bad Gateway"))

	err := c.ServerStatus(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Bad Gateway", se.Detail)
}

func TestTimeoutProducesTimeoutError(t *testing.T) {
	c := newTestClient(t, WithTimeout(25*time.Millisecond))
	httpmock.RegisterResponder("GET", testBase+"/api/config/status",
		func(req *http.Request) (*http.Response, error) {
			<-req.Context().Done()
			return nil, req.Context().Err()
		})

	err := c.ServerStatus(context.Background())
	require.Error(t, err)
	assert.True(t, IsTimeout(err))

	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 25*time.Millisecond, te.Duration)
	assert.Contains(t, err.Error(), "timed out after 25ms")
}

func TestSaveUserSettingsPostsJSON(t *testing.T) {
	c := newTestClient(t)

	var got map[string]any
	httpmock.RegisterResponder("POST", testBase+"/api/config/user",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
			if err := json.NewDecoder(req.Body).Decode(&got); err != nil {
				return nil, err
			}
			return httpmock.NewStringResponse(200, `{}`), nil
		})

	err := c.SaveUserSettings(context.Background(), map[string]any{
		KeyName:      "Dr. Flox",
		KeySpecialty: "Haematology",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Flox", got[KeyName])
	assert.Equal(t, "Haematology", got[KeySpecialty])
}

func TestLLMModelsDecodesMixedShapes(t *testing.T) {
	c := newTestClient(t)
	httpmock.RegisterResponder("GET", testBase+"/api/config/llm/models",
		func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.Equal(t, "ollama", q.Get("provider"))
			assert.Equal(t, "http://llm.local:11434", q.Get("baseUrl"))
			// Bare strings and Ollama tag objects arrive intermixed.
			return httpmock.NewStringResponse(200,
				`{"models":["llama3",{"name":"mistral:7b"},{"id":"gpt-4o"}]}`), nil
		})

	models, err := c.LLMModels(context.Background(), "ollama", "http://llm.local:11434", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3", "mistral:7b", "gpt-4o"}, models)
}

func TestLLMModelsOmitsEmptyQueryParams(t *testing.T) {
	c := newTestClient(t)
	httpmock.RegisterResponder("GET", testBase+"/api/config/llm/models",
		func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.False(t, q.Has("baseUrl"))
			assert.False(t, q.Has("apiKey"))
			return httpmock.NewStringResponse(200, `{"models":[]}`), nil
		})

	models, err := c.LLMModels(context.Background(), "local", "", "")
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestWhisperModels(t *testing.T) {
	c := newTestClient(t)
	httpmock.RegisterResponder("GET", testBase+"/api/config/whisper/models",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "http://whisper.local:8000", req.URL.Query().Get("whisperEndpoint"))
			return httpmock.NewStringResponse(200,
				`{"models":[{"id":"base"},{"id":"medium"}],"listAvailable":true}`), nil
		})

	list, err := c.WhisperModels(context.Background(), "http://whisper.local:8000")
	require.NoError(t, err)
	assert.True(t, list.ListAvailable)
	assert.Equal(t, []string{"base", "medium"}, list.Models)
}

func TestWhisperModelsNoListEndpoint(t *testing.T) {
	c := newTestClient(t)
	httpmock.RegisterResponder("GET", testBase+"/api/config/whisper/models",
		httpmock.NewStringResponder(200, `{"models":[],"listAvailable":false}`))

	list, err := c.WhisperModels(context.Background(), "http://whisper.local:8000")
	require.NoError(t, err)
	assert.False(t, list.ListAvailable)
	assert.Empty(t, list.Models)
}

func TestTemplatesAndDefault(t *testing.T) {
	c := newTestClient(t)
	httpmock.RegisterResponder("GET", testBase+"/api/templates",
		httpmock.NewStringResponder(200,
			`[{"template_key":"soap","template_name":"SOAP"},{"template_key":"progress","template_name":"Progress Note"}]`))
	httpmock.RegisterResponder("POST", testBase+"/api/templates/default/soap",
		httpmock.NewStringResponder(200, `{}`))

	templates, err := c.Templates(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "soap", templates[0].Key)
	assert.Equal(t, "SOAP", templates[0].Name)

	require.NoError(t, c.SetDefaultTemplate(context.Background(), "soap"))
	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["POST "+testBase+"/api/templates/default/soap"])
}

func TestLetterTemplatesAndDefault(t *testing.T) {
	c := newTestClient(t)
	httpmock.RegisterResponder("GET", testBase+"/api/letter/templates",
		httpmock.NewStringResponder(200, `[{"id":3,"name":"GP Letter"}]`))
	httpmock.RegisterResponder("POST", testBase+"/api/letter/templates/default/3",
		httpmock.NewStringResponder(200, `{}`))

	templates, err := c.LetterTemplates(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, 3, templates[0].ID)

	require.NoError(t, c.SetDefaultLetterTemplate(context.Background(), 3))
}

func TestMarkOnboardingComplete(t *testing.T) {
	c := newTestClient(t)
	httpmock.RegisterResponder("POST", testBase+"/api/config/user/mark_splash_complete",
		httpmock.NewStringResponder(200, `{}`))

	require.NoError(t, c.MarkOnboardingComplete(context.Background()))
}

func TestServerVersion(t *testing.T) {
	c := newTestClient(t)
	httpmock.RegisterResponder("GET", testBase+"/api/config/version",
		httpmock.NewStringResponder(200, `{"version":"1.4.0"}`))

	v, err := c.ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", v)
}

func TestDictateUploadsMultipart(t *testing.T) {
	c := newTestClient(t)
	httpmock.RegisterResponder("POST", testBase+"/api/transcribe/dictate",
		func(req *http.Request) (*http.Response, error) {
			require.NoError(t, req.ParseMultipartForm(1<<20))
			file, header, err := req.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "note.wav", header.Filename)
			return httpmock.NewStringResponse(200, `{"transcription":"patient reports improvement"}`), nil
		})

	text, err := c.Dictate(context.Background(), "note.wav", strings.NewReader("RIFFfakeaudio"))
	require.NoError(t, err)
	assert.Equal(t, "patient reports improvement", text)
}

func TestTranscribeSendsPatientFields(t *testing.T) {
	c := newTestClient(t)
	httpmock.RegisterResponder("POST", testBase+"/api/transcribe/transcribe",
		func(req *http.Request) (*http.Response, error) {
			require.NoError(t, req.ParseMultipartForm(1<<20))
			assert.Equal(t, "Doe, Jane", req.FormValue("name"))
			assert.Equal(t, "F", req.FormValue("gender"))
			assert.Equal(t, "1980-02-14", req.FormValue("dob"))
			return httpmock.NewStringResponse(200,
				`{"clinicalHistory":"hx","plan":"plan","rawTranscription":"raw","transcriptionDuration":1.5,"processDuration":0.7}`), nil
		})

	out, err := c.Transcribe(context.Background(), "visit.wav", strings.NewReader("RIFFfakeaudio"),
		PatientDetails{Name: "Doe, Jane", Gender: "F", DOB: "1980-02-14"})
	require.NoError(t, err)
	assert.Equal(t, "hx", out.ClinicalHistory)
	assert.Equal(t, "plan", out.Plan)
	assert.InDelta(t, 1.5, out.TranscriptionDuration, 1e-9)
}

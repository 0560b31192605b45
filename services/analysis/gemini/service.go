package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/bantalo/reportcard/core"
	"github.com/bantalo/reportcard/core/analysis"
	"github.com/bantalo/reportcard/core/student"
)

var endpoint = "/v1beta/models/%s:generateContent"

type (
	part struct {
		Text string `json:"text"`
	}

	content struct {
		Role  string `json:"role,omitempty"`
		Parts []part `json:"parts"`
	}

	generateRequest struct {
		Contents []content `json:"contents"`
	}

	generateResponse struct {
		Candidates []struct {
			Content      content `json:"content"`
			FinishReason string  `json:"finishReason"`
		} `json:"candidates"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
)

type service struct {
	key     string
	model   string
	baseURL string
	client  *rest.Client
}

var _ analysis.Analyzer = (*service)(nil)

func NewService(conf *core.Config) analysis.Analyzer {
	return &service{
		key:     conf.Gemini.APIKey,
		model:   conf.Gemini.Model,
		baseURL: strings.TrimRight(conf.Gemini.BaseURL, "/"),
		client:  &rest.Client{HTTPClient: &http.Client{}},
	}
}

func (svc *service) request(prompt string) (rest.Request, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return rest.Request{}, err
	}
	return rest.Request{
		Method:  rest.Post,
		BaseURL: svc.baseURL + fmt.Sprintf(endpoint, svc.model),
		Headers: map[string]string{
			"Content-Type":   "application/json",
			"x-goog-api-key": svc.key,
		},
		Body: body,
	}, nil
}

// Analyze asks the model for an analysis of the student's results. It does not retry.
func (svc *service) Analyze(ctx context.Context, s student.Student) (string, error) {
	if svc.key == "" {
		return "", errors.New("gemini: missing API key")
	}

	req, err := svc.request(analysis.Prompt(s))
	if err != nil {
		return "", errors.Wrap(err, "gemini: preparing request")
	}
	res, err := svc.client.SendWithContext(ctx, req)
	if err != nil {
		return "", errors.Wrap(err, "gemini: sending request")
	}

	var gr generateResponse
	if err = json.Unmarshal([]byte(res.Body), &gr); err != nil {
		return "", errors.Wrapf(err, "gemini: decoding response (status %d)", res.StatusCode)
	}
	if res.StatusCode >= http.StatusBadRequest {
		if gr.Error != nil {
			return "", errors.Errorf("gemini: %d %s: %s", gr.Error.Code, gr.Error.Status, gr.Error.Message)
		}
		return "", errors.Errorf("gemini: status %d", res.StatusCode)
	}

	if len(gr.Candidates) == 0 {
		return "", errors.New("gemini: no candidate")
	}
	var text strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	answer := strings.TrimSpace(text.String())
	if answer == "" {
		return "", errors.Errorf("gemini: empty answer (%s)", gr.Candidates[0].FinishReason)
	}
	return answer, nil
}

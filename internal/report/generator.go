package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Instructions is the fixed instruction set sent along with every brief.
const Instructions = `You are an academic advisor writing a progress report for a student.
Use only the data in the brief. Write in a warm, professional tone, in markdown.
Structure the report with the sections "Academic Performance", "Attendance" and "Recommendations".
Mention the final grade only if the brief contains one. Do not invent observations.`

var ErrEmptyReport = errors.New("narrative generator returned an empty report")

// NarrativeReport is the prose produced for a brief
type NarrativeReport struct {
	Report string `json:"report"`
}

// NarrativeGenerator turns a brief into report prose.
type NarrativeGenerator interface {
	GenerateReport(ctx context.Context, brief NarrativeBrief) (*NarrativeReport, error)
}

// HTTPGeneratorConfig configures the HTTP narrative generator
type HTTPGeneratorConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// HTTPGenerator posts the brief to a remote text generation endpoint
type HTTPGenerator struct {
	url    string
	apiKey string
	http   *http.Client
}

type generateRequest struct {
	Instructions string         `json:"instructions"`
	Brief        NarrativeBrief `json:"brief"`
}

func NewHTTPGenerator(cfg HTTPGeneratorConfig) *HTTPGenerator {
	h := &http.Client{}
	if cfg.Timeout > 0 {
		h.Timeout = cfg.Timeout
	}
	return &HTTPGenerator{url: cfg.URL, apiKey: cfg.APIKey, http: h}
}

// GenerateReport makes a single best-effort call; cancellation comes from ctx.
func (g *HTTPGenerator) GenerateReport(ctx context.Context, brief NarrativeBrief) (*NarrativeReport, error) {
	body, err := json.Marshal(generateRequest{Instructions: Instructions, Brief: brief})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal brief: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build generator request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	res, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("generate report: %s: %s", res.Status, strings.TrimSpace(string(msg)))
	}

	var out NarrativeReport
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode generator response: %w", err)
	}
	if strings.TrimSpace(out.Report) == "" {
		return nil, ErrEmptyReport
	}
	return &out, nil
}

// StaticGenerator renders the brief as markdown without calling any external service
type StaticGenerator struct{}

func NewStaticGenerator() *StaticGenerator {
	return &StaticGenerator{}
}

func (StaticGenerator) GenerateReport(ctx context.Context, brief NarrativeBrief) (*NarrativeReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Progress Report: %s\n\n", brief.StudentName)
	fmt.Fprintf(&b, "**Level:** %s\n\n", brief.LevelName)
	fmt.Fprintf(&b, "## Academic Performance\n\n%s\n\n", brief.GradesSummary)
	fmt.Fprintf(&b, "## Attendance\n\n%s\n\n", brief.AttendanceSummary)
	fmt.Fprintf(&b, "## Teacher Observations\n\n%s\n", brief.TeacherObservations)
	return &NarrativeReport{Report: b.String()}, nil
}

//go:build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/havenwell/Haven/internal/api"
	"github.com/havenwell/Haven/internal/middleware"
)

func newTestServer() *httptest.Server {
	mux := http.NewServeMux()
	api.NewRouter(api.NewMemoryStore()).Register(mux)
	return httptest.NewServer(middleware.WithAuth(mux))
}

func TestClinicianJourneyIntegration(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()
	client := srv.Client()
	base := srv.URL

	userEmail := fmt.Sprintf("integration_%d@example.com", time.Now().UnixNano())
	password := "Secret123!"

	var registerResp struct {
		Token    string `json:"token"`
		TenantID string `json:"tenant_id"`
		UserID   string `json:"user_id"`
	}
	doPost(t, client, base+"/api/auth/register", "", map[string]any{
		"email":       userEmail,
		"password":    password,
		"tenant_name": "Haven Clinic",
	}, &registerResp)
	if registerResp.Token == "" || registerResp.TenantID == "" {
		t.Fatalf("unexpected register response: %+v", registerResp)
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	doPost(t, client, base+"/api/auth/login", "", map[string]string{
		"email":    userEmail,
		"password": password,
	}, &loginResp)
	token := loginResp.Token
	if token == "" {
		t.Fatalf("login did not return token")
	}

	// A participant completes a single screening instrument.
	var scoreResp struct {
		SubmissionID  string `json:"submission_id"`
		ParticipantID string `json:"participant_id"`
		Result        struct {
			RawScore        float64 `json:"rawScore"`
			NormalizedScore float64 `json:"normalizedScore"`
			Interpretation  string  `json:"interpretation"`
		} `json:"result"`
	}
	doPost(t, client, base+"/api/assessments/phq2/score", "", map[string]any{
		"responses": map[string]any{"phq2_q1": 3, "phq2_q2": 3},
	}, &scoreResp)
	if scoreResp.ParticipantID == "" || scoreResp.SubmissionID == "" {
		t.Fatalf("unexpected score response: %+v", scoreResp)
	}
	if scoreResp.Result.RawScore != 6 || scoreResp.Result.NormalizedScore != 100 {
		t.Fatalf("unexpected score result: %+v", scoreResp.Result)
	}

	// The same participant completes the combined battery, one item short.
	var batteryResp struct {
		ParticipantID string `json:"participant_id"`
		Results       map[string]struct {
			RawScore float64 `json:"rawScore"`
		} `json:"results"`
	}
	doPost(t, client, base+"/api/assessments/battery", "", map[string]any{
		"participant_id": scoreResp.ParticipantID,
		"responses": map[string]any{
			"phq2_q1": 1, "phq2_q2": 2,
			"gad2_q1": 0, "gad2_q2": 1,
			"pss4_q1": 2, "pss4_q2": 4, "pss4_q3": 0, "pss4_q4": 2,
			"rrs4_q1": 2, "rrs4_q2": 3, "rrs4_q4": 1,
		},
	}, &batteryResp)
	if batteryResp.ParticipantID != scoreResp.ParticipantID {
		t.Fatalf("battery did not reuse participant: %+v", batteryResp)
	}
	if len(batteryResp.Results) != 4 {
		t.Fatalf("expected 4 battery results, got %d", len(batteryResp.Results))
	}
	if batteryResp.Results["rrs4"].RawScore != 6 {
		t.Fatalf("rrs4 raw = %v, want 6 (missing item scores 0)", batteryResp.Results["rrs4"].RawScore)
	}

	// History holds the single submission plus the four battery ones.
	var histResp struct {
		Submissions []json.RawMessage `json:"submissions"`
	}
	doGet(t, client, base+"/api/history?participant_id="+scoreResp.ParticipantID, "", &histResp)
	if len(histResp.Submissions) != 5 {
		t.Fatalf("expected 5 submissions in history, got %d", len(histResp.Submissions))
	}

	// The full declarative template is public for client-side scoring.
	var tpl struct {
		ID        string            `json:"id"`
		Questions []json.RawMessage `json:"questions"`
	}
	doGet(t, client, base+"/api/templates/depression", "", &tpl)
	if tpl.ID != "phq9" || len(tpl.Questions) != 9 {
		t.Fatalf("unexpected template for alias: %+v", tpl)
	}

	// Insights and export need the clinician token.
	resp, err := client.Get(base + "/api/insights?type=phq2")
	if err != nil {
		t.Fatalf("insights request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("insights without token: status %d, want 401", resp.StatusCode)
	}

	var insightResp struct {
		Instrument       string  `json:"instrument"`
		TotalSubmissions int     `json:"total_submissions"`
		Alpha            float64 `json:"alpha"`
	}
	doGet(t, client, base+"/api/insights?type=phq2", token, &insightResp)
	if insightResp.Instrument != "phq2" || insightResp.TotalSubmissions != 2 {
		t.Fatalf("unexpected insights: %+v", insightResp)
	}

	req, err := http.NewRequest(http.MethodGet, base+"/api/export?type=phq2&format=long", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("export request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("export status %d body %s", resp.StatusCode, string(body))
	}
	csvData, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read export data: %v", err)
	}
	if !strings.Contains(string(csvData), scoreResp.ParticipantID) {
		t.Fatalf("export csv did not contain participant id; csv=%s", string(csvData))
	}
}

func doPost(t *testing.T, client *http.Client, url, token string, body any, out any) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("http post %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d for %s: %s", resp.StatusCode, url, string(bodyBytes))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
}

func doGet(t *testing.T, client *http.Client, url, token string, out any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("http get %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d for %s: %s", resp.StatusCode, url, string(bodyBytes))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
}

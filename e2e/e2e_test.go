package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"checklist-app-go/internal/blob"
	"checklist-app-go/internal/config"
	checklistdomain "checklist-app-go/internal/domain/checklist"
	summarydomain "checklist-app-go/internal/domain/summary"
	"checklist-app-go/internal/repository/inmemory"
	"checklist-app-go/internal/transport/httpserver"
	"checklist-app-go/internal/transport/httpserver/handler"
	"checklist-app-go/pkg/logger"
)

type testEnv struct {
	server *httptest.Server
	store  *inmemory.Checklist
	blobs  *blob.Memory
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	log := logger.New(io.Discard, slog.LevelError, "text")

	store := inmemory.NewChecklist()
	blobs := blob.NewMemory("memory://photos")

	cfg := config.Config{
		CORSAllowedOrigins: []string{"*"},
		Upload: config.UploadConfig{
			MaxBytes:     1 << 20,
			MaxImageEdge: 1600,
		},
	}

	checklistSvc := checklistdomain.NewService(store, blobs)
	summarySvc := summarydomain.NewService(store)
	handlers := handler.New(cfg.Upload, checklistSvc, summarySvc, log)

	server := httptest.NewServer(httpserver.NewRouter(cfg, handlers))
	t.Cleanup(server.Close)

	return &testEnv{server: server, store: store, blobs: blobs}
}

func (env *testEnv) getJSON(t *testing.T, path string, wantStatus int, out any) {
	t.Helper()

	resp, err := http.Get(env.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("GET %s: status %d, want %d, body %s", path, resp.StatusCode, wantStatus, body)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("GET %s: decode: %v", path, err)
		}
	}
}

func (env *testEnv) postJSON(t *testing.T, path string, payload any, wantStatus int, out any) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	resp, err := http.Post(env.server.URL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("POST %s: status %d, want %d, body %s", path, resp.StatusCode, wantStatus, raw)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("POST %s: decode: %v", path, err)
		}
	}
}

func TestHealth(t *testing.T) {
	env := setupE2E(t)

	var out map[string]string
	env.getJSON(t, "/api/health", http.StatusOK, &out)

	if out["status"] != "ok" {
		t.Fatalf("unexpected health body: %v", out)
	}
}

func TestItemsRoundTrip(t *testing.T) {
	env := setupE2E(t)

	env.postJSON(t, "/api/checklist/items", map[string]any{
		"items": []map[string]any{
			{"id": "dishes", "label": "Do the dishes"},
			{"id": "plants", "label": "Water plants", "periodDays": 3},
		},
	}, http.StatusOK, nil)

	var out struct {
		Items []checklistdomain.Task `json:"items"`
	}
	env.getJSON(t, "/api/checklist/items", http.StatusOK, &out)

	if len(out.Items) != 2 || out.Items[0].ID != "dishes" || out.Items[1].ID != "plants" {
		t.Fatalf("unexpected items: %+v", out.Items)
	}
	if out.Items[1].Period() != 3 {
		t.Fatalf("periodDays lost in round trip: %+v", out.Items[1])
	}
}

func TestToggleCheckAndUncheck(t *testing.T) {
	env := setupE2E(t)

	var out struct {
		Success bool                       `json:"success"`
		Checked checklistdomain.CheckedMap `json:"checked"`
	}
	env.postJSON(t, "/api/checklist/toggle", map[string]any{
		"date":    "2024-02-01",
		"item_id": "dishes",
		"user":    "ana",
		"note":    "before lunch",
	}, http.StatusOK, &out)

	if !out.Success {
		t.Fatal("expected success=true")
	}
	entry, ok := out.Checked["dishes"]["ana"]
	if !ok || !entry.Checked || entry.Note != "before lunch" {
		t.Fatalf("unexpected checked map after check: %v", out.Checked)
	}

	// Reset before re-decoding: json.Decode merges into a non-nil map and
	// would keep entries from the first response.
	out.Checked = nil
	env.postJSON(t, "/api/checklist/toggle", map[string]any{
		"date":    "2024-02-01",
		"item_id": "dishes",
		"user":    "ana",
	}, http.StatusOK, &out)

	if _, ok := out.Checked["dishes"]; ok {
		t.Fatalf("unexpected checked map after uncheck: %v", out.Checked)
	}
}

func TestToggleRequiresItemID(t *testing.T) {
	env := setupE2E(t)

	var out struct {
		Error string `json:"error"`
	}
	env.postJSON(t, "/api/checklist/toggle", map[string]any{
		"date": "2024-02-01",
		"user": "ana",
	}, http.StatusBadRequest, &out)

	if !strings.Contains(out.Error, "item_id") {
		t.Fatalf("error should name the missing field, got %q", out.Error)
	}
}

func TestGetChecklistSynthesizesDueView(t *testing.T) {
	env := setupE2E(t)

	env.postJSON(t, "/api/checklist/items", map[string]any{
		"items": []map[string]any{
			{"id": "dishes", "label": "Do the dishes"},
			{"id": "plants", "label": "Water plants", "periodDays": 3},
		},
	}, http.StatusOK, nil)

	// Completing plants the day before suppresses it from the next day's
	// synthesized view.
	env.postJSON(t, "/api/checklist/toggle", map[string]any{
		"date":    "2024-01-31",
		"item_id": "plants",
		"user":    "ana",
	}, http.StatusOK, nil)

	var out struct {
		Date    string                     `json:"date"`
		Items   []checklistdomain.Task     `json:"items"`
		Checked checklistdomain.CheckedMap `json:"checked"`
	}
	env.getJSON(t, "/api/checklist?date=2024-02-01", http.StatusOK, &out)

	if out.Date != "2024-02-01" {
		t.Fatalf("unexpected date: %q", out.Date)
	}
	if len(out.Items) != 1 || out.Items[0].ID != "dishes" {
		t.Fatalf("expected only dishes due, got %+v", out.Items)
	}
	if len(out.Checked) != 0 {
		t.Fatalf("expected empty checked map, got %v", out.Checked)
	}
}

func TestSaveAndGetChecklist(t *testing.T) {
	env := setupE2E(t)

	env.postJSON(t, "/api/checklist", map[string]any{
		"date": "2024-02-01",
		"items": []map[string]any{
			{"id": "dishes", "label": "Do the dishes"},
		},
	}, http.StatusOK, nil)

	var out struct {
		Date  string                 `json:"date"`
		Items []checklistdomain.Task `json:"items"`
	}
	env.getJSON(t, "/api/checklist?date=2024-02-01", http.StatusOK, &out)

	if len(out.Items) != 1 || out.Items[0].ID != "dishes" {
		t.Fatalf("persisted snapshot not returned: %+v", out.Items)
	}
}

func TestLastCompletions(t *testing.T) {
	env := setupE2E(t)

	for _, date := range []string{"2024-01-01", "2024-01-05", "2024-01-03"} {
		env.postJSON(t, "/api/checklist/toggle", map[string]any{
			"date":    date,
			"item_id": "plants",
			"user":    "ana",
		}, http.StatusOK, nil)
	}

	var out struct {
		LastCompletions map[string]string `json:"lastCompletions"`
	}
	env.getJSON(t, "/api/checklist/last-completions", http.StatusOK, &out)

	if out.LastCompletions["plants"] != "2024-01-05" {
		t.Fatalf("unexpected index: %v", out.LastCompletions)
	}
}

func TestCalendarSummary(t *testing.T) {
	env := setupE2E(t)

	env.postJSON(t, "/api/checklist/items", map[string]any{
		"items": []map[string]any{
			{"id": "dishes", "label": "Do the dishes"},
			{"id": "plants", "label": "Water plants", "periodDays": 3},
		},
	}, http.StatusOK, nil)
	env.postJSON(t, "/api/checklist/toggle", map[string]any{
		"date":    "2024-02-01",
		"item_id": "dishes",
		"user":    "ana",
	}, http.StatusOK, nil)

	var out struct {
		SummaryData      map[string]summarydomain.DaySummary `json:"summaryData"`
		TotalMasterItems int                                 `json:"totalMasterItems"`
	}
	env.getJSON(t, "/api/summary/calendar?start_date=2024-02-01&end_date=2024-02-02", http.StatusOK, &out)

	if out.TotalMasterItems != 2 {
		t.Fatalf("totalMasterItems: got %d, want 2", out.TotalMasterItems)
	}
	if len(out.SummaryData) != 2 {
		t.Fatalf("expected 2 dates, got %v", out.SummaryData)
	}
	day := out.SummaryData["2024-02-01"]
	if !day.Submitted || day.TotalChecked != 1 {
		t.Fatalf("unexpected 2024-02-01 summary: %+v", day)
	}
	if out.SummaryData["2024-02-02"].Submitted {
		t.Fatal("2024-02-02 has no record and must not be submitted")
	}
}

func TestCalendarSummaryRequiresRange(t *testing.T) {
	env := setupE2E(t)

	var out struct {
		Error string `json:"error"`
	}
	env.getJSON(t, "/api/summary/calendar?start_date=2024-02-01", http.StatusBadRequest, &out)

	if !strings.Contains(out.Error, "end_date") {
		t.Fatalf("error should name end_date, got %q", out.Error)
	}
}

func TestUploadPhoto(t *testing.T) {
	env := setupE2E(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("date", "2024-02-01"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := form.WriteField("user", "ana"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	part, err := form.CreateFormFile("file", "proof.txt")
	if err != nil {
		t.Fatalf("create file part: %v", err)
	}
	if _, err := part.Write([]byte("photo bytes")); err != nil {
		t.Fatalf("write file part: %v", err)
	}
	if err := form.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	resp, err := http.Post(env.server.URL+"/api/upload/dishes", form.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("POST upload: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("upload status %d, body %s", resp.StatusCode, raw)
	}

	var out struct {
		Success bool   `json:"success"`
		URL     string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Success || !strings.HasPrefix(out.URL, "memory://photos/photos/2024-02-01/dishes/") {
		t.Fatalf("unexpected upload response: %+v", out)
	}

	var rec struct {
		Checked checklistdomain.CheckedMap `json:"checked"`
	}
	env.getJSON(t, "/api/checklist?date=2024-02-01", http.StatusOK, &rec)
	if rec.Checked["dishes"]["ana"].PhotoURL != out.URL {
		t.Fatalf("photo url not merged into record: %v", rec.Checked)
	}
}

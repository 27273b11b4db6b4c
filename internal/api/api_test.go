package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zero2one-app/zero2one/internal/app/notify"
	"github.com/zero2one-app/zero2one/internal/app/session"
	"github.com/zero2one-app/zero2one/internal/domain"
	"github.com/zero2one-app/zero2one/internal/infra/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	feed := notify.NewFeed(db)
	sess, err := session.Open(db, feed)
	if err != nil {
		t.Fatalf("Open session: %v", err)
	}

	srv := httptest.NewServer(NewServer(sess, feed, "test").Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	raw, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestAPI_Health(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestAPI_TaskLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/tasks", map[string]interface{}{
		"name": "Morning run", "category": "daily",
		"attribute": domain.AttrPhysical, "points": 5,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var task domain.Task
	decode(t, resp, &task)
	if task.ID == "" {
		t.Fatal("created task has no id")
	}

	// Duplicate name in the same category conflicts.
	resp = postJSON(t, srv.URL+"/api/tasks", map[string]interface{}{
		"name": "morning RUN", "category": "daily",
		"attribute": domain.AttrPhysical, "points": 3,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate status = %d", resp.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/api/tasks/daily/"+task.ID+"/complete", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete status = %d", resp.StatusCode)
	}
	var res session.CompleteResult
	decode(t, resp, &res)
	if res.Awarded != 5 {
		t.Fatalf("awarded = %v", res.Awarded)
	}

	resp = postJSON(t, srv.URL+"/api/tasks/daily/"+task.ID+"/complete", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("re-complete status = %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/tasks/daily/"+task.ID, nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", delResp.StatusCode)
	}
}

func TestAPI_CompleteUnknownTask(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/api/tasks/daily/nope/complete", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestAPI_CreateTaskValidation(t *testing.T) {
	srv := newTestServer(t)

	cases := []map[string]interface{}{
		{"category": "daily", "attribute": domain.AttrHealth, "points": 5}, // no name
		{"name": "x", "category": "hourly", "attribute": domain.AttrHealth, "points": 5},
		{"name": "x", "category": "daily", "attribute": domain.AttrHealth, "points": -1},
	}
	for i, body := range cases {
		resp := postJSON(t, srv.URL+"/api/tasks", body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("case %d: status = %d, want 400", i, resp.StatusCode)
		}
	}
}

func TestAPI_JobsAndState(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/jobs/accept", map[string]string{"name": "Master of None"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("accept status = %d", resp.StatusCode)
	}
	var def domain.JobDef
	decode(t, resp, &def)
	if def.PerkMultiplier != 1.0 {
		t.Fatalf("def = %+v", def)
	}

	resp = postJSON(t, srv.URL+"/api/jobs/accept", map[string]string{"name": "Enigma"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("gated accept status = %d", resp.StatusCode)
	}

	stateResp, err := http.Get(srv.URL + "/api/state")
	if err != nil {
		t.Fatalf("GET /api/state: %v", err)
	}
	var st session.Status
	decode(t, stateResp, &st)
	if st.CurrentJob != "Master of None" {
		t.Fatalf("CurrentJob = %q", st.CurrentJob)
	}
	if len(st.Attributes) != 6 {
		t.Fatalf("attributes = %d", len(st.Attributes))
	}
}

func TestAPI_CycleAndExportImport(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/cycle", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cycle status = %d", resp.StatusCode)
	}

	expResp, err := http.Get(srv.URL + "/api/export")
	if err != nil {
		t.Fatalf("GET /api/export: %v", err)
	}
	var env sqlite.ExportEnvelope
	decode(t, expResp, &env)
	if env.Version != sqlite.ExportVersion || env.State == nil {
		t.Fatalf("envelope = %+v", env)
	}

	raw, _ := json.Marshal(env)
	impResp, err := http.Post(srv.URL+"/api/import", "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("POST /api/import: %v", err)
	}
	impResp.Body.Close()
	if impResp.StatusCode != http.StatusOK {
		t.Fatalf("import status = %d", impResp.StatusCode)
	}

	badResp, err := http.Post(srv.URL+"/api/import", "application/json", bytes.NewReader([]byte("junk")))
	if err != nil {
		t.Fatalf("POST bad import: %v", err)
	}
	badResp.Body.Close()
	if badResp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad import status = %d", badResp.StatusCode)
	}
}

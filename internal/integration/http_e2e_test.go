//go:build integration || !unit

package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	server "github.com/stupnd/trippy-sub001/internal/adapters/http_server"
	"github.com/stupnd/trippy-sub001/internal/adapters/llm"
	redisad "github.com/stupnd/trippy-sub001/internal/adapters/redis"
	"github.com/stupnd/trippy-sub001/internal/adapters/supplier"
	"github.com/stupnd/trippy-sub001/internal/app"
	"github.com/stupnd/trippy-sub001/internal/domain"
	mysqlrepo "github.com/stupnd/trippy-sub001/internal/storage/mysql"
)

// ---------- helpers ----------

func pstr(s string) *string     { return &s }
func pfloat(f float64) *float64 { return &f }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/migrations)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// ---------- the test ----------

func TestHTTP_EndToEnd_GroupConsensus(t *testing.T) {
	// Isolated MySQL container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=trippy",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "trippy")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Seed a trip with two members and their preferences.
	start, _ := time.Parse("2006-01-02", "2026-09-10")
	end, _ := time.Parse("2006-01-02", "2026-09-13")
	facts := domain.TripFacts{
		ID: "trip-e2e", City: "Lisbon", Country: "PT",
		StartDate: start, EndDate: end, Travelers: 2, Currency: "USD",
	}
	if err := repo.CreateTrip(ctx, facts); err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	for _, m := range []string{"ana", "ben"} {
		if err := repo.AddMember(ctx, facts.ID, m); err != nil {
			t.Fatalf("AddMember: %v", err)
		}
	}
	if err := repo.UpsertPreference(ctx, domain.MemberPreference{
		TripID: facts.ID, MemberID: "ana",
		Origin: pstr("SFO"), NightlyBudgetMin: pfloat(80), NightlyBudgetMax: pfloat(150),
	}); err != nil {
		t.Fatalf("UpsertPreference: %v", err)
	}

	// Fake travel-search supplier: no flights (forces deterministic
	// fallback), one lodging option.
	supplierTS := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/flights/search":
			w.WriteHeader(http.StatusNotFound)
		case "/v1/lodging/search":
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"id": "lg-1", "name": "Alfama Loft", "nightly_price": 120.0, "rating": 4.5},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer supplierTS.Close()
	supplierClient, err := supplier.New(supplierTS.URL, "test-key", 100)
	if err != nil {
		t.Fatalf("supplier.New: %v", err)
	}

	// Fake LLM returning a fenced budget suggestion.
	llmTS := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "```json\n{\"budget_min\": 100, \"budget_max\": 99999}\n```"}},
			},
		})
	}))
	defer llmTS.Close()
	llmClient, err := llm.New(llmTS.URL, "test-model", "test-key")
	if err != nil {
		t.Fatalf("llm.New: %v", err)
	}

	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)

	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		Recs:      app.NewRecommendationService(repo, supplierClient, supplierClient, cache, 10*time.Minute),
		Decisions: app.NewDecisionService(repo),
		Budget:    app.NewBudgetService(repo, llmClient),
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	// 1) Flight recommendations fall back to deterministic candidates.
	var flights []struct {
		ID          string `json:"ID"`
		Score       int    `json:"Score"`
		IsBestValue bool   `json:"IsBestValue"`
	}
	getJSON(t, ts.URL+"/v1/trips/trip-e2e/recommendations/flights", &flights)
	if len(flights) < 10 || len(flights) > 12 {
		t.Fatalf("expected 10..12 deterministic candidates, got %d", len(flights))
	}
	best := 0
	for _, f := range flights {
		if f.IsBestValue {
			best++
		}
	}
	if best != 1 {
		t.Fatalf("exactly one best-value flag expected, got %d", best)
	}

	// 2) Lodging recommendations come from the supplier.
	var lodging []struct {
		ID    string `json:"ID"`
		Score int    `json:"Score"`
	}
	getJSON(t, ts.URL+"/v1/trips/trip-e2e/recommendations/lodging", &lodging)
	if len(lodging) != 1 || lodging[0].ID != "lg-1" {
		t.Fatalf("unexpected lodging: %+v", lodging)
	}

	// 3) Voting: seed a selection, then both members approve.
	sel := domain.Selection{
		ID: "sel-1", TripID: facts.ID, Category: domain.CategoryFlight,
		Option: domain.CandidateOption{ID: flights[0].ID, Category: domain.CategoryFlight},
	}
	if err := repo.SaveSelection(ctx, sel); err != nil {
		t.Fatalf("SaveSelection: %v", err)
	}

	var view struct {
		Finalized bool
		Status    string
	}
	postJSON(t, ts.URL+"/v1/trips/trip-e2e/selections/sel-1/votes",
		map[string]any{"member_id": "ana", "approved": true}, &view)
	if view.Finalized {
		t.Fatalf("one vote of two should not finalize")
	}
	postJSON(t, ts.URL+"/v1/trips/trip-e2e/selections/sel-1/votes",
		map[string]any{"member_id": "ben", "approved": true}, &view)
	if !view.Finalized || view.Status != "finalized" {
		t.Fatalf("expected finalized after both approvals: %+v", view)
	}

	// 4) Budget refresh clamps the wild suggestion to the baseline window.
	var est struct {
		Min, Max, BaselineMin, BaselineMax float64
	}
	postJSON(t, ts.URL+"/v1/trips/trip-e2e/budget/refresh", map[string]any{}, &est)
	if est.Min != 0.8*est.BaselineMin || est.Max != 1.2*est.BaselineMax {
		t.Fatalf("suggestion not clamped: %+v", est)
	}
}

func getJSON(t *testing.T, url string, dst any) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

func postJSON(t *testing.T, url string, body any, dst any) {
	t.Helper()
	b, _ := json.Marshal(body)
	res, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("POST %s: status %d", url, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

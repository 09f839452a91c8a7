package handler_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/bitfantasy/cuti/internal/config"
	"github.com/bitfantasy/cuti/internal/cuti/entity"
	"github.com/bitfantasy/cuti/internal/cuti/handler"
	"github.com/bitfantasy/cuti/internal/cuti/repository"
	"github.com/bitfantasy/cuti/internal/cuti/service"
	"github.com/bitfantasy/cuti/internal/cuti/testutil"
	"github.com/bitfantasy/cuti/internal/middleware"
)

func setupPersonnelTest(t *testing.T) *testutil.TestEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)

	cfg := &config.Config{}
	cfg.JWT.Secret = testutil.JWTSecret

	services := service.NewServices(db, repos, nil, cfg)
	handlers := handler.NewHandlers(services)

	r := testutil.SetupRouter()
	api := testutil.AuthGroup(r, "/api/v1")

	personnel := api.Group("/personnel")
	personnel.GET("", handlers.Personnel.List)
	personnel.POST("", handlers.Personnel.Create)
	personnel.GET("/:id", handlers.Personnel.Get)
	personnel.PUT("/:id", handlers.Personnel.Update)
	personnel.DELETE("/:id", middleware.RequireRole("admin"), handlers.Personnel.Delete)
	personnel.GET("/:id/leave-report", handlers.Personnel.Report)

	return &testutil.TestEnv{DB: db, Router: r, T: t}
}

func TestCreatePersonnelDefaults(t *testing.T) {
	env := setupPersonnelTest(t)
	token := testutil.DefaultTestToken()

	body := map[string]interface{}{
		"name":        "Ali bin Ahmad",
		"rank":        "Sarjan",
		"military_id": "T1234567",
		"platoon":     "Bravo",
	}
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/personnel", body, token)
	if w.Code != 201 {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["annual_leave_balance"].(float64) != float64(entity.DefaultAnnualLeave) {
		t.Errorf("Expected annual balance %d, got %v", entity.DefaultAnnualLeave, data["annual_leave_balance"])
	}
	if data["sick_leave_balance"].(float64) != float64(entity.DefaultSickLeave) {
		t.Errorf("Expected sick balance %d, got %v", entity.DefaultSickLeave, data["sick_leave_balance"])
	}
	if data["maternity_leave_balance"].(float64) != float64(entity.DefaultMaternityLeave) {
		t.Errorf("Expected maternity balance %d, got %v", entity.DefaultMaternityLeave, data["maternity_leave_balance"])
	}
}

func TestCreatePersonnelRequiresName(t *testing.T) {
	env := setupPersonnelTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/personnel", map[string]interface{}{"rank": "Kpl"}, token)
	if w.Code != 400 {
		t.Fatalf("Expected 400 without name, got %d", w.Code)
	}
}

func TestListPersonnelSearch(t *testing.T) {
	env := setupPersonnelTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedTestPersonnel(t, env.DB, "p-200", "Ali bin Ahmad", "Sarjan")
	testutil.SeedTestPersonnel(t, env.DB, "p-201", "Siti binti Rahman", "Kpl")

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/personnel?q=siti", nil, token)
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	items := resp["data"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 search match, got %d", len(items))
	}

	// Rank matches too
	w = testutil.DoRequest(env.Router, "GET", "/api/v1/personnel?q=sarjan", nil, token)
	resp = testutil.ParseResponse(w)
	items = resp["data"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 rank match, got %d", len(items))
	}
}

func TestUpdatePersonnelPartial(t *testing.T) {
	env := setupPersonnelTest(t)
	token := testutil.DefaultTestToken()

	p := testutil.SeedTestPersonnel(t, env.DB, "p-202", "Hafiz bin Omar", "Lt")

	body := map[string]interface{}{"rank": "Kapt"}
	w := testutil.DoRequest(env.Router, "PUT", "/api/v1/personnel/"+p.ID, body, token)
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated entity.Personnel
	env.DB.First(&updated, "id = ?", p.ID)
	if updated.Rank != "Kapt" {
		t.Errorf("Expected rank updated, got %s", updated.Rank)
	}
	if updated.Name != "Hafiz bin Omar" {
		t.Errorf("Expected name untouched, got %s", updated.Name)
	}
	if updated.AnnualLeaveBalance != entity.DefaultAnnualLeave {
		t.Errorf("Expected balance untouched, got %d", updated.AnnualLeaveBalance)
	}
}

func TestDeletePersonnelRequiresAdmin(t *testing.T) {
	env := setupPersonnelTest(t)

	p := testutil.SeedTestPersonnel(t, env.DB, "p-203", "Zul bin Hassan", "Pbt")

	viewer := testutil.GenerateTestToken("viewer-001", "Viewer", "viewer@test.com", []string{"viewer"})
	w := testutil.DoRequest(env.Router, "DELETE", "/api/v1/personnel/"+p.ID, nil, viewer)
	if w.Code != 403 {
		t.Fatalf("Expected 403 for non-admin, got %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, "DELETE", "/api/v1/personnel/"+p.ID, nil, testutil.DefaultTestToken())
	if w.Code != 200 {
		t.Fatalf("Expected 200 for admin, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	env.DB.Model(&entity.Personnel{}).Where("id = ?", p.ID).Count(&count)
	if count != 0 {
		t.Error("Expected personnel record deleted")
	}
}

func TestDeletePersonnelNotFound(t *testing.T) {
	env := setupPersonnelTest(t)

	w := testutil.DoRequest(env.Router, "DELETE", "/api/v1/personnel/no-such-id", nil, testutil.DefaultTestToken())
	if w.Code != 404 {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
}

func TestLeaveReport(t *testing.T) {
	env := setupPersonnelTest(t)
	token := testutil.DefaultTestToken()

	p := testutil.SeedTestPersonnel(t, env.DB, "p-204", "Ali bin Ahmad", "Sarjan")

	// 5 approved annual days plus a legacy-status sick row in 2024
	testutil.SeedTestRequest(t, env.DB, "req-200", p.ID, p.Name, "Cuti Tahunan",
		entity.StatusApproved, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC))
	testutil.SeedTestRequest(t, env.DB, "req-201", p.ID, p.Name, "Cuti Sakit",
		entity.StatusLegacyApproved, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))
	// Different year, must not count
	testutil.SeedTestRequest(t, env.DB, "req-202", p.ID, p.Name, "Cuti Tahunan",
		entity.StatusApproved, time.Date(2023, 3, 4, 0, 0, 0, 0, time.UTC), time.Date(2023, 3, 8, 0, 0, 0, 0, time.UTC))

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/personnel/"+p.ID+"/leave-report?year=2024", nil, token)
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	expectedRef := fmt.Sprintf("TUDM/2024/%s/CUTI", p.MilitaryID)
	if data["file_ref"] != expectedRef {
		t.Errorf("Expected file ref %s, got %v", expectedRef, data["file_ref"])
	}

	rows := data["rows"].([]interface{})
	byType := map[string]map[string]interface{}{}
	for _, r := range rows {
		row := r.(map[string]interface{})
		byType[row["type"].(string)] = row
	}

	annual := byType["Cuti Tahunan"]
	if annual["used"].(float64) != 5 {
		t.Errorf("Expected 5 annual days used, got %v", annual["used"])
	}
	if annual["balance"].(float64) != 20 {
		t.Errorf("Expected annual balance 20, got %v", annual["balance"])
	}

	sick := byType["Cuti Sakit"]
	if sick["used"].(float64) != 2 {
		t.Errorf("Expected 2 sick days used including legacy status, got %v", sick["used"])
	}
}

func TestLeaveReportMissingMilitaryID(t *testing.T) {
	env := setupPersonnelTest(t)
	token := testutil.DefaultTestToken()

	p := &entity.Personnel{
		ID:                 "p-205",
		Name:               "Tanpa Nombor",
		AnnualLeaveBalance: entity.DefaultAnnualLeave,
	}
	if err := env.DB.Create(p).Error; err != nil {
		t.Fatalf("Failed to seed personnel: %v", err)
	}

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/personnel/"+p.ID+"/leave-report?year=2024", nil, token)
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["file_ref"] != "TUDM/2024/000/CUTI" {
		t.Errorf("Expected placeholder file ref, got %v", data["file_ref"])
	}
}

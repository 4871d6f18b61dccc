package repositories

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"hookprobe/internal/platform/config"
	"hookprobe/internal/platform/database"
	"hookprobe/internal/platform/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := database.Open(config.HistoryConfig{Path: filepath.Join(t.TempDir(), "history.db")})
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	if _, err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDeliveryRepository_CreateAndGet(t *testing.T) {
	repo := NewDeliveryRepository(setupTestDB(t))

	d := &models.Delivery{
		URL:           "http://localhost:8080",
		Signature:     "uC/LeRrOxXhZuYm0MKgmSIzi5Hn9+SMmvQoug3WkK6Q=",
		PayloadSHA256: "abc",
		PayloadSize:   7,
		StatusCode:    200,
		DurationMs:    12,
		ResponseBody:  "ok",
	}
	if err := repo.Create(d); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !strings.HasPrefix(d.ID, "dlv_") {
		t.Errorf("ID = %q, want dlv_ prefix", d.ID)
	}
	if d.CreatedAt == 0 {
		t.Error("CreatedAt not set")
	}

	fetched, err := repo.GetByID(d.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if fetched == nil {
		t.Fatal("GetByID() returned nil")
	}
	if fetched.Signature != d.Signature || fetched.StatusCode != 200 || fetched.ResponseBody != "ok" {
		t.Errorf("fetched = %+v", fetched)
	}
	if fetched.Error != "" {
		t.Errorf("Error = %q, want empty", fetched.Error)
	}
}

func TestDeliveryRepository_GetByIDNotFound(t *testing.T) {
	repo := NewDeliveryRepository(setupTestDB(t))

	d, err := repo.GetByID("dlv_missing")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if d != nil {
		t.Errorf("expected nil delivery, got %+v", d)
	}
}

func TestDeliveryRepository_ListAndCount(t *testing.T) {
	repo := NewDeliveryRepository(setupTestDB(t))

	fixtures := []*models.Delivery{
		{ID: "dlv_1", URL: "u", Signature: "s", PayloadSHA256: "h", StatusCode: 200, CreatedAt: 100},
		{ID: "dlv_2", URL: "u", Signature: "s", PayloadSHA256: "h", StatusCode: 500, Error: "unexpected status: 500", CreatedAt: 200},
		{ID: "dlv_3", URL: "u", Signature: "s", PayloadSHA256: "h", Error: "connection refused", CreatedAt: 300},
		{ID: "dlv_4", URL: "u", Signature: "s", PayloadSHA256: "h", StatusCode: 200, CreatedAt: 400},
	}
	for _, d := range fixtures {
		if err := repo.Create(d); err != nil {
			t.Fatalf("Create(%s) error = %v", d.ID, err)
		}
	}

	list, err := repo.List(3)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("List() returned %d rows, want 3", len(list))
	}
	if list[0].ID != "dlv_4" || list[2].ID != "dlv_2" {
		t.Errorf("unexpected order: %s, %s, %s", list[0].ID, list[1].ID, list[2].ID)
	}

	counts, err := repo.CountByStatus()
	if err != nil {
		t.Fatalf("CountByStatus() error = %v", err)
	}
	if counts[200] != 2 || counts[500] != 1 || counts[0] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestDeliveryRepository_CreateMock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDeliveryRepository(db)

	mock.ExpectExec("INSERT INTO deliveries").
		WithArgs("dlv_x", "http://example.com", "sig", "hash", 2, 0, "dial tcp: refused", int64(5), nil, int64(42)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Create(&models.Delivery{
		ID:            "dlv_x",
		URL:           "http://example.com",
		Signature:     "sig",
		PayloadSHA256: "hash",
		PayloadSize:   2,
		Error:         "dial tcp: refused",
		DurationMs:    5,
		CreatedAt:     42,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestDeliveryRepository_ListQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM deliveries").WillReturnError(sql.ErrConnDone)

	if _, err := NewDeliveryRepository(db).List(10); err == nil {
		t.Error("expected error from List")
	}
}

package repositories

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"hookprobe/internal/platform/models"
)

const deliveryColumns = `id, url, signature, payload_sha256, payload_size, status_code, error, duration_ms, response_body, created_at`

type DeliveryRepository struct {
	db *sql.DB
}

func NewDeliveryRepository(db *sql.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

func NewDeliveryID() string {
	return "dlv_" + uuid.New().String()
}

func (r *DeliveryRepository) Create(d *models.Delivery) error {
	if d.ID == "" {
		d.ID = NewDeliveryID()
	}
	if d.CreatedAt == 0 {
		d.CreatedAt = time.Now().Unix()
	}

	query := `
		INSERT INTO deliveries (` + deliveryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		d.ID, d.URL, d.Signature, d.PayloadSHA256, d.PayloadSize,
		d.StatusCode, nullString(d.Error), d.DurationMs, nullString(d.ResponseBody), d.CreatedAt,
	)
	return err
}

// Save satisfies webhooks.Recorder.
func (r *DeliveryRepository) Save(d *models.Delivery) error {
	return r.Create(d)
}

// GetByID returns nil, nil when no delivery has the id.
func (r *DeliveryRepository) GetByID(id string) (*models.Delivery, error) {
	row := r.db.QueryRow(`SELECT `+deliveryColumns+` FROM deliveries WHERE id = ?`, id)

	d, err := scanDelivery(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

func (r *DeliveryRepository) List(limit int) ([]*models.Delivery, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(`SELECT `+deliveryColumns+` FROM deliveries ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deliveries []*models.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

// CountByStatus groups recorded deliveries by status code; transport
// failures are counted under 0.
func (r *DeliveryRepository) CountByStatus() (map[int]int, error) {
	rows, err := r.db.Query(`SELECT status_code, COUNT(*) FROM deliveries GROUP BY status_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var code, n int
		if err := rows.Scan(&code, &n); err != nil {
			return nil, err
		}
		counts[code] = n
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDelivery(s scanner) (*models.Delivery, error) {
	var d models.Delivery
	var errStr, body sql.NullString

	err := s.Scan(&d.ID, &d.URL, &d.Signature, &d.PayloadSHA256, &d.PayloadSize,
		&d.StatusCode, &errStr, &d.DurationMs, &body, &d.CreatedAt)
	if err != nil {
		return nil, err
	}

	if errStr.Valid {
		d.Error = errStr.String
	}
	if body.Valid {
		d.ResponseBody = body.String
	}
	return &d, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

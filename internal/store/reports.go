package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/imeiwatch/internal/model"
)

const reportColumns = `id, ref, imei, status, is_public, brand, model, color, description,
	lost_date, location, contact_name, contact_email, contact_phone, police_report, created_at`

// publicReportColumns never includes contact or police report columns.
const publicReportColumns = `ref, imei, status, brand, model, color, description,
	lost_date, location, created_at`

// InsertReport stores a new report. The caller supplies a fresh Ref and
// CreatedAt; ID is filled in on success. A duplicate ref yields ErrConflict.
func InsertReport(ctx context.Context, db *sql.DB, r *model.Report) error {
	result, err := db.ExecContext(ctx,
		`INSERT INTO reports (ref, imei, status, is_public, brand, model, color, description,
		                      lost_date, location, contact_name, contact_email, contact_phone,
		                      police_report, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Ref, r.IMEI, r.Status, r.IsPublic,
		nullString(r.Brand), nullString(r.Model), nullString(r.Color), nullString(r.Description),
		nullString(r.LostDate), nullString(r.Location),
		nullString(r.ContactName), nullString(r.ContactEmail), nullString(r.ContactPhone),
		nullString(r.PoliceReport), r.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("inserting report %s: %w", r.Ref, ErrConflict)
		}
		return fmt.Errorf("inserting report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting report id: %w", err)
	}
	r.ID = id
	return nil
}

// GetReportByRef returns a report by its public reference, or nil if absent.
func GetReportByRef(ctx context.Context, db *sql.DB, ref string) (*model.Report, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE ref = ?`, ref,
	)
	r, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting report: %w", err)
	}
	return r, nil
}

// FindPublicReportsByIMEI returns the public reports for an IMEI, newest first.
func FindPublicReportsByIMEI(ctx context.Context, db *sql.DB, imei string) ([]model.PublicReport, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+publicReportColumns+`
		 FROM reports WHERE imei = ? AND is_public = 1
		 ORDER BY created_at DESC, id DESC`, imei,
	)
	if err != nil {
		return nil, fmt.Errorf("finding reports by imei: %w", err)
	}
	defer rows.Close()

	reports := []model.PublicReport{}
	for rows.Next() {
		var r model.PublicReport
		var brand, mdl, color, description, lostDate, location sql.NullString
		if err := rows.Scan(&r.Ref, &r.IMEI, &r.Status, &brand, &mdl, &color, &description,
			&lostDate, &location, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning public report: %w", err)
		}
		r.Brand = brand.String
		r.Model = mdl.String
		r.Color = color.String
		r.Description = description.String
		r.LostDate = lostDate.String
		r.Location = location.String
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// ListReports returns up to limit reports of any status or visibility,
// newest first.
func ListReports(ctx context.Context, db *sql.DB, limit int) ([]model.Report, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+reportColumns+`
		 FROM reports ORDER BY created_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	reports := []model.Report{}
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		reports = append(reports, *r)
	}
	return reports, rows.Err()
}

// UpdateReportStatus overwrites a report's status and visibility.
// Returns ErrNotFound if no report has the given ref.
func UpdateReportStatus(ctx context.Context, db *sql.DB, ref, status string, isPublic bool) error {
	result, err := db.ExecContext(ctx,
		`UPDATE reports SET status = ?, is_public = ? WHERE ref = ?`,
		status, isPublic, ref,
	)
	if err != nil {
		return fmt.Errorf("updating report: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("updating report %s: %w", ref, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*model.Report, error) {
	r := &model.Report{}
	var brand, mdl, color, description, lostDate, location sql.NullString
	var contactName, contactEmail, contactPhone, policeReport sql.NullString
	err := row.Scan(&r.ID, &r.Ref, &r.IMEI, &r.Status, &r.IsPublic,
		&brand, &mdl, &color, &description, &lostDate, &location,
		&contactName, &contactEmail, &contactPhone, &policeReport, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	r.Brand = brand.String
	r.Model = mdl.String
	r.Color = color.String
	r.Description = description.String
	r.LostDate = lostDate.String
	r.Location = location.String
	r.ContactName = contactName.String
	r.ContactEmail = contactEmail.String
	r.ContactPhone = contactPhone.String
	r.PoliceReport = policeReport.String
	return r, nil
}

// nullString stores empty optional fields as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Reports adapts the report functions to a value that can be injected into
// the report service.
type Reports struct {
	DB *sql.DB
}

func (s Reports) InsertReport(ctx context.Context, r *model.Report) error {
	return InsertReport(ctx, s.DB, r)
}

func (s Reports) FindPublicReportsByIMEI(ctx context.Context, imei string) ([]model.PublicReport, error) {
	return FindPublicReportsByIMEI(ctx, s.DB, imei)
}

func (s Reports) ListReports(ctx context.Context, limit int) ([]model.Report, error) {
	return ListReports(ctx, s.DB, limit)
}

func (s Reports) UpdateReportStatus(ctx context.Context, ref, status string, isPublic bool) error {
	return UpdateReportStatus(ctx, s.DB, ref, status, isPublic)
}

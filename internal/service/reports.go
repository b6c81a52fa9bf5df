// Package service implements the report lifecycle: public submission and
// lookup, and admin-gated listing and status changes.
//
// Report status is a flat graph. New reports start as lost or stolen, and an
// admin may move a report to any of lost, stolen or recovered from any other
// state, so a miscategorized recovery can be reverted.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/imeiwatch/internal/imei"
	"github.com/erazemk/imeiwatch/internal/metrics"
	"github.com/erazemk/imeiwatch/internal/model"
	"github.com/erazemk/imeiwatch/internal/store"
)

// MaxListReports caps the admin report listing.
const MaxListReports = 500

// ReportStore persists reports. It is not security-aware.
type ReportStore interface {
	InsertReport(ctx context.Context, r *model.Report) error
	FindPublicReportsByIMEI(ctx context.Context, imei string) ([]model.PublicReport, error)
	ListReports(ctx context.Context, limit int) ([]model.Report, error)
	UpdateReportStatus(ctx context.Context, ref, status string, isPublic bool) error
}

// AdminGate decides whether the session behind token is an admin session.
type AdminGate interface {
	RequireAdmin(ctx context.Context, token string) error
}

// Service orchestrates IMEI validation, the admin gate and the report store.
type Service struct {
	store   ReportStore
	gate    AdminGate
	metrics *metrics.Metrics
	newRef  func() string
	now     func() time.Time
}

// New creates a report service.
func New(store ReportStore, gate AdminGate, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		gate:    gate,
		metrics: m,
		newRef:  uuid.NewString,
		now:     time.Now,
	}
}

// SubmitInput is a public loss or theft report. IsPublic holds the raw
// client value; nil means the field was omitted.
type SubmitInput struct {
	IMEI         string
	Status       string
	IsPublic     any
	Brand        string
	Model        string
	Color        string
	Description  string
	LostDate     string
	Location     string
	ContactName  string
	ContactEmail string
	ContactPhone string
	PoliceReport string
}

// Submit validates and stores a new report, returning its public ref.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (string, error) {
	number := imei.Normalize(in.IMEI)
	if !imei.Validate(number) {
		return "", invalid(MsgInvalidIMEI)
	}
	if !model.ValidInitialStatus(in.Status) {
		return "", invalid(MsgInvalidStatus)
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = Truthy(in.IsPublic)
	}

	r := &model.Report{
		Ref:          s.newRef(),
		IMEI:         number,
		Status:       in.Status,
		IsPublic:     isPublic,
		Brand:        in.Brand,
		Model:        in.Model,
		Color:        in.Color,
		Description:  in.Description,
		LostDate:     in.LostDate,
		Location:     in.Location,
		ContactName:  in.ContactName,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		PoliceReport: in.PoliceReport,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.InsertReport(ctx, r); err != nil {
		slog.Error("failed to insert report", "error", err, "ref", r.Ref)
		return "", ErrInternal
	}

	s.metrics.IncSubmitted(r.Status)
	slog.Info("report submitted", "ref", r.Ref, "status", r.Status, "public", r.IsPublic)
	return r.Ref, nil
}

// CheckResult is the answer to a public IMEI lookup.
type CheckResult struct {
	IMEI    string               `json:"imei"`
	Count   int                  `json:"count"`
	Reports []model.PublicReport `json:"reports"`
}

// Check returns the public reports for an IMEI, newest first.
func (s *Service) Check(ctx context.Context, rawIMEI string) (*CheckResult, error) {
	number := imei.Normalize(rawIMEI)
	if !imei.Validate(number) {
		return nil, invalid(MsgInvalidIMEI)
	}

	reports, err := s.store.FindPublicReportsByIMEI(ctx, number)
	if err != nil {
		slog.Error("failed to look up reports", "error", err)
		return nil, ErrInternal
	}
	if reports == nil {
		reports = []model.PublicReport{}
	}

	s.metrics.IncCheck(len(reports) > 0)
	return &CheckResult{IMEI: number, Count: len(reports), Reports: reports}, nil
}

// RequireAdmin returns ErrUnauthorized unless token refers to an admin
// session. Transports call it before reading an admin request body.
func (s *Service) RequireAdmin(ctx context.Context, token string) error {
	if err := s.gate.RequireAdmin(ctx, token); err != nil {
		return ErrUnauthorized
	}
	return nil
}

// List returns up to MaxListReports reports with all fields, newest first.
// Only admin sessions may list.
func (s *Service) List(ctx context.Context, token string) ([]model.Report, error) {
	if err := s.RequireAdmin(ctx, token); err != nil {
		return nil, err
	}

	reports, err := s.store.ListReports(ctx, MaxListReports)
	if err != nil {
		slog.Error("failed to list reports", "error", err)
		return nil, ErrInternal
	}
	if reports == nil {
		reports = []model.Report{}
	}
	return reports, nil
}

// UpdateInput is an admin status change. IsPublic holds the raw client
// value and is coerced with Truthy, so an omitted value hides the report.
type UpdateInput struct {
	Status   string
	IsPublic any
}

// Update sets a report's status and visibility. Only admin sessions may
// update; any status may follow any other.
func (s *Service) Update(ctx context.Context, token, ref string, in UpdateInput) error {
	if err := s.RequireAdmin(ctx, token); err != nil {
		return err
	}
	if !model.ValidStatus(in.Status) {
		return invalid(MsgInvalidStatus)
	}
	isPublic := Truthy(in.IsPublic)

	err := s.store.UpdateReportStatus(ctx, ref, in.Status, isPublic)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		slog.Error("failed to update report", "error", err, "ref", ref)
		return ErrInternal
	}

	s.metrics.IncUpdated(in.Status)
	slog.Info("report updated", "ref", ref, "status", in.Status, "public", isPublic)
	return nil
}

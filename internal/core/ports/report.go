package ports

import "go.trai.ch/tend/internal/core/domain"

// ReportWriter persists a machine-readable run report for CI consumers.
// The engine never reads it back.
//
//go:generate mockgen -source=report.go -destination=mocks/mock_report.go -package=mocks
type ReportWriter interface {
	Write(path string, report *domain.RunReport) error
}

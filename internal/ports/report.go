package ports

import "rentaldesk/internal/types"

type ReportPort interface {
	WriteImageReport(dir string, records []types.ImageReportRecord) (string, error)
}

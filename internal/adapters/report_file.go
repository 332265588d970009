package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rentaldesk/internal/ports"
	"rentaldesk/internal/types"
)

type ReportFileAdapter struct{}

func NewReportFileAdapter() ReportFileAdapter {
	return ReportFileAdapter{}
}

// WriteImageReport writes one comma separated line per car, ordered by
// registration and then category, and returns the report path.
func (a ReportFileAdapter) WriteImageReport(dir string, records []types.ImageReportRecord) (string, error) {
	path, err := ensureReportPath(dir, types.ImageReportFilename)
	if err != nil {
		return "", err
	}
	ordered := append([]types.ImageReportRecord(nil), records...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Registration != ordered[j].Registration {
			return ordered[i].Registration < ordered[j].Registration
		}
		return ordered[i].Category < ordered[j].Category
	})
	lines := make([]string, 0, len(ordered))
	for _, record := range ordered {
		lines = append(lines, fmt.Sprintf(
			"%s,%s,%s,%s,%s",
			record.Registration,
			record.Category,
			record.Tier,
			record.URL,
			record.Match,
		))
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write image report").
			WithCause(err)
	}
	return path, nil
}

func ensureReportPath(dir string, filename string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(dir, filename), nil
}

var _ ports.ReportPort = ReportFileAdapter{}

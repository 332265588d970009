package types

const ImageReportFilename = "image.report"

// ImageReportRecord is one line of the image report written by inspect.
type ImageReportRecord struct {
	Registration string
	Category     string
	Tier         ResolutionTier
	URL          string
	Match        string
}

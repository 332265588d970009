package ports

type SampleImagePort interface {
	// WriteSampleImage writes a solid colour JPEG filled with hexColor
	// ("#RRGGBB") to path, creating parent directories.
	WriteSampleImage(path string, hexColor string) error
}

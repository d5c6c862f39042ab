package export

// Writer persists one run's extracted table.
type Writer interface {
	Write(headers []string, rows [][]string) error
}

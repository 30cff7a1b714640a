package roster

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/errors"
)

// outputHeader is the schema of the assignment file.
var outputHeader = []string{"student_id", "team_id", "condition"}

// WriteAssignments writes the assignment rows as CSV to path. The rows are
// written to a temporary file in the target directory and renamed into
// place, so a failed run never leaves a partial output file behind.
func WriteAssignments(path string, rows []AssignmentRow) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create output directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "assignment-*.csv")
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	tmpPath := tmp.Name()

	if err := writeRows(tmp, rows); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "failed to close output file")
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to move output into place at %s", path)
	}

	return nil
}

func writeRows(file *os.File, rows []AssignmentRow) error {
	writer := csv.NewWriter(file)

	if err := writer.Write(outputHeader); err != nil {
		return errors.Wrap(err, "failed to write output header")
	}

	for _, row := range rows {
		record := []string{row.StudentID, row.TeamID, row.Condition}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "failed to write row for student %s", row.StudentID)
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "failed to flush output")
}

// Package roster loads and writes the study's student records. It is the
// I/O collaborator of the assign package: it reads a CSV roster into typed,
// validated Student records and writes the resulting assignment back out.
//
// Input validation happens entirely at load time. A row that cannot be
// turned into a valid Student aborts the load with a DataError naming the
// file and the offending row, so no later stage ever sees a partial record.
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/errors"
)

// Student is a single roster record. Immutable once loaded.
type Student struct {
	ID           string // Unique identifier, required
	Name         string // Display name, optional
	Programme    string // Raw programme label as it appears in the roster
	Discipline   string // Discipline group the programme collapses into
	XRExperience bool   // Prior XR experience covariate, optional
}

// AssignmentRow is one line of the output file: a student, the team they
// were placed in, and the team's condition tag.
type AssignmentRow struct {
	StudentID string
	TeamID    string
	Condition string
}

// Recognized header names, compared case-insensitively after trimming.
var (
	idColumns         = []string{"student_id", "id"}
	nameColumns       = []string{"student_name", "name"}
	disciplineColumns = []string{"programme", "discipline", "branch"}
	experienceColumns = []string{"xr_experience", "prior_xr_experience"}
)

// Load reads a roster CSV from path and resolves each student's discipline
// through the given group mapping. The file must have a header row carrying
// a student id column and a programme/discipline column; name and
// xr_experience columns are optional and unknown columns are ignored.
//
// The first invalid row aborts the load with a DataError carrying the
// 1-based row number.
func Load(path string, groups GroupMap) ([]Student, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open roster %s", path)
	}
	defer func() { _ = file.Close() }()

	students, err := parse(file, groups)
	if err != nil {
		var dataErr *errors.DataError
		if errors.As(err, &dataErr) {
			dataErr.WithFile(path)
		}
		return nil, err
	}
	return students, nil
}

// parse reads and validates roster records from r.
func parse(r io.Reader, groups GroupMap) ([]Student, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewDataError("roster has no header row", errors.ErrRosterMalformed)
	}
	if err != nil {
		return nil, errors.NewDataError("failed to read header row", errors.ErrRosterMalformed)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var students []Student
	seen := make(map[string]int) // id -> row it first appeared on
	row := 1                     // Header was row 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, errors.NewDataError("failed to parse row", errors.ErrRosterMalformed).WithRow(row)
		}

		student, err := parseRecord(record, cols, groups)
		if err != nil {
			var dataErr *errors.DataError
			if errors.As(err, &dataErr) {
				dataErr.WithRow(row)
			}
			return nil, err
		}

		if firstRow, dup := seen[student.ID]; dup {
			return nil, errors.NewDataError(
				fmt.Sprintf("student %q already appeared on row %d", student.ID, firstRow),
				errors.ErrDuplicateStudentID,
			).WithRow(row).WithColumn(header[cols.id])
		}
		seen[student.ID] = row

		students = append(students, student)
	}

	return students, nil
}

// columnIndexes locates the roster columns in the header. -1 means absent.
type columnIndexes struct {
	id         int
	name       int
	discipline int
	experience int
}

func mapColumns(header []string) (columnIndexes, error) {
	cols := columnIndexes{id: -1, name: -1, discipline: -1, experience: -1}

	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case cols.id < 0 && contains(idColumns, name):
			cols.id = i
		case cols.name < 0 && contains(nameColumns, name):
			cols.name = i
		case cols.discipline < 0 && contains(disciplineColumns, name):
			cols.discipline = i
		case cols.experience < 0 && contains(experienceColumns, name):
			cols.experience = i
		}
	}

	if cols.id < 0 {
		return cols, errors.NewDataError(
			fmt.Sprintf("roster needs one of the columns: %s", strings.Join(idColumns, ", ")),
			errors.ErrMissingColumn,
		).WithColumn("student_id")
	}
	if cols.discipline < 0 {
		return cols, errors.NewDataError(
			fmt.Sprintf("roster needs one of the columns: %s", strings.Join(disciplineColumns, ", ")),
			errors.ErrMissingColumn,
		).WithColumn("programme")
	}

	return cols, nil
}

func parseRecord(record []string, cols columnIndexes, groups GroupMap) (Student, error) {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	id := field(cols.id)
	if id == "" {
		return Student{}, errors.NewDataError("row has no student id", errors.ErrMissingStudentID)
	}

	programme := field(cols.discipline)
	if programme == "" {
		return Student{}, errors.NewDataError(
			fmt.Sprintf("student %q has no discipline", id),
			errors.ErrMissingDiscipline,
		)
	}

	return Student{
		ID:           id,
		Name:         field(cols.name),
		Programme:    programme,
		Discipline:   groups.Resolve(programme),
		XRExperience: truthy(field(cols.experience)),
	}, nil
}

// truthy interprets the optional covariate column: 1/true/yes/y count as set.
func truthy(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

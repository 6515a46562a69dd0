package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/apperrors"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
)

var filenameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// ExportFilename builds a safe download name like roster_Intro_to_Go.csv.
func ExportFilename(prefix, courseName, ext string) string {
	name := filenameChars.ReplaceAllString(strings.TrimSpace(courseName), "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "course"
	}
	return fmt.Sprintf("%s_%s.%s", prefix, name, ext)
}

// BuildRosterCSV renders a roster in the canonical export format. The same
// columns are accepted back by the importer.
func BuildRosterCSV(roster []*models.RosterEntry) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	if err := writer.Write([]string{"Student ID", "Full Name", "Email", "Enrolled Date"}); err != nil {
		return nil, fmt.Errorf("failed to write roster header: %v", err)
	}
	for _, entry := range roster {
		row := []string{
			stringValue(entry.StudentID),
			entry.FullName,
			stringValue(entry.Email),
			entry.EnrolledAt.Format("2006-01-02"),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write roster row: %v", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush roster csv: %v", err)
	}
	return buf, nil
}

// BuildAttendanceMatrixCSV renders the full attendance grid for a course:
// one row per student, one column per session date. Sessions with no record
// show as Absent.
func BuildAttendanceMatrixCSV(roster []*models.RosterEntry, sessions []*models.Session, matrix map[string]map[string]*models.Attendance) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	header := []string{"Student ID", "Full Name"}
	for _, session := range sessions {
		header = append(header, session.DateString())
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write attendance header: %v", err)
	}

	for _, entry := range roster {
		row := []string{stringValue(entry.StudentID), entry.FullName}
		records := matrix[entry.ID]
		for _, session := range sessions {
			if record, ok := records[session.ID]; ok {
				row = append(row, record.Status.Label())
			} else {
				row = append(row, "Absent")
			}
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write attendance row: %v", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush attendance csv: %v", err)
	}
	return buf, nil
}

// ParseRosterCSV reads student references from an uploaded roster file. The
// header row names the columns; only Full Name is required. Extra columns
// are ignored.
func ParseRosterCSV(r io.Reader) ([]models.StudentRef, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.NewValidationError("The CSV file is empty")
	}
	if err != nil {
		return nil, apperrors.NewValidationError("Could not read the CSV header row")
	}

	nameCol, idCol, emailCol := -1, -1, -1
	for i, column := range header {
		// Excel exports prefix the first cell with a byte order mark.
		column = strings.TrimSpace(strings.TrimPrefix(column, "﻿"))
		switch column {
		case "Full Name":
			nameCol = i
		case "Student ID":
			idCol = i
		case "Email":
			emailCol = i
		}
	}
	if nameCol == -1 {
		return nil, apperrors.NewValidationError("The CSV file must have a Full Name column")
	}

	refs := make([]models.StudentRef, 0)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Malformed CSV on line %d", line))
		}

		refs = append(refs, models.StudentRef{
			FullName:  field(record, nameCol),
			StudentID: field(record, idCol),
			Email:     field(record, emailCol),
		})
	}
	return refs, nil
}

// BuildReportXLSX renders an attendance report as an Excel workbook. The
// buffer is handed to the handler, which sets the download headers.
func BuildReportXLSX(report *models.CourseReport) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Attendance Report"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create report sheet: %v", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 6)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 28)
	f.SetColWidth(sheetName, "D", "H", 13)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	title := report.Course.Name
	if report.Course.Code != nil {
		title = fmt.Sprintf("%s (%s)", report.Course.Name, *report.Course.Code)
	}
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s - Attendance Report", title))
	f.MergeCell(sheetName, "A1", "H1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Sessions held: %d", report.SessionCount))
	f.SetCellValue(sheetName, "D2", fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04")))

	columns := []string{"Rank", "Student ID", "Full Name", "Attendance %", "Present", "Late", "Excused", "Absent"}
	for i, column := range columns {
		cellName, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(sheetName, cellName, column)
		f.SetCellStyle(sheetName, cellName, cellName, headerStyle)
	}

	for i, student := range report.Students {
		values := []interface{}{
			i + 1,
			student.ExternalID,
			student.FullName,
			student.Percentage,
			student.PresentCount,
			student.LateCount,
			student.ExcusedCount,
			student.AbsentCount,
		}
		for j, value := range values {
			cellName, _ := excelize.CoordinatesToCellName(j+1, i+5)
			f.SetCellValue(sheetName, cellName, value)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", fmt.Errorf("failed to write report workbook: %v", err)
	}
	return buf, ExportFilename("report", report.Course.Name, "xlsx"), nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func field(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

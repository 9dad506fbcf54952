package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/opencampus/registrar-api/internal/dto"
	appErrors "github.com/opencampus/registrar-api/pkg/errors"
	"github.com/opencampus/registrar-api/pkg/export"
)

// Roster export formats.
const (
	RosterFormatCSV = "csv"
	RosterFormatPDF = "pdf"
)

// RosterExport is a rendered enrolled-students roster ready to be served.
type RosterExport struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportEnrolledStudents renders the enrolled-students projection of a course
// as a downloadable roster. It shares the projection's semantics: a course
// without counted enrollments is reported as not found.
func (s *CourseService) ExportEnrolledStudents(ctx context.Context, id, format string) (*RosterExport, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != RosterFormatCSV && format != RosterFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	students, err := s.GetEnrolledStudents(ctx, id)
	if err != nil {
		return nil, err
	}

	dataset := rosterDataset(course.Code, students)
	switch format {
	case RosterFormatPDF:
		content, err := export.RenderPDF(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster pdf")
		}
		return &RosterExport{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("%s-roster.pdf", course.Code),
		}, nil
	default:
		content, err := export.RenderCSV(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster csv")
		}
		return &RosterExport{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("%s-roster.csv", course.Code),
		}, nil
	}
}

func rosterDataset(courseCode string, students []dto.EnrolledStudent) export.Dataset {
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		program := ""
		if s.Student.Program != nil {
			program = s.Student.Program.Name
		}
		rows = append(rows, []string{
			s.Student.RegNumber,
			s.Student.FirstName + " " + s.Student.LastName,
			s.Student.Email,
			program,
			s.Session.Name,
			string(s.Enrollment.Status),
			s.Enrollment.EnrolledAt.Format("2006-01-02"),
		})
	}
	return export.Dataset{
		Title:   fmt.Sprintf("%s enrolled students", courseCode),
		Headers: []string{"Reg Number", "Name", "Email", "Program", "Session", "Status", "Enrolled At"},
		Rows:    rows,
	}
}

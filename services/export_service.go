package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"packpall-backend/models"
	"packpall-backend/repository"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

// ExportService renders an event, its checklist, and its members as a PDF
// document.
type ExportService struct {
	users  repository.UserRepository
	logger *zap.Logger
}

// NewExportService creates a new ExportService.
func NewExportService(users repository.UserRepository, logger *zap.Logger) *ExportService {
	return &ExportService{users: users, logger: logger}
}

// RenderEventPDF writes the event summary document to w.
func (s *ExportService) RenderEventPDF(ctx context.Context, event *models.Event, w io.Writer) *ServiceError {
	ids := make([]string, 0, len(event.Members))
	for i := range event.Members {
		ids = append(ids, event.Members[i].UserID)
	}
	users, err := s.users.FindManyByID(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to resolve members for export", zap.String("event_id", event.ID), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to export event"}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, "Event Details", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Event information
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Event: "+event.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	if event.Location != "" {
		pdf.CellFormat(0, 7, "Location: "+event.Location, "", 1, "L", false, 0, "")
	}
	if event.StartDate != nil {
		pdf.CellFormat(0, 7, "Start Date: "+event.StartDate.Format("Mon Jan 02 2006"), "", 1, "L", false, 0, "")
	}
	if event.EndDate != nil {
		pdf.CellFormat(0, 7, "End Date: "+event.EndDate.Format("Mon Jan 02 2006"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Checklist
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, "Checklist", "B", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 12)
	if len(event.Checklist) == 0 {
		pdf.CellFormat(0, 7, "No checklist items available.", "", 1, "L", false, 0, "")
	} else {
		for i, item := range event.Checklist {
			line := fmt.Sprintf("%d. %s [%s]", i+1, item.Name, item.Status)
			pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(6)

	// Members
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, "Members", "B", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 12)
	if len(event.Members) == 0 {
		pdf.CellFormat(0, 7, "No members available.", "", 1, "L", false, 0, "")
	} else {
		for i, m := range event.Members {
			name, email := "N/A", m.UserID
			if u, ok := users[m.UserID]; ok {
				name, email = u.Name, u.Email
			}
			line := fmt.Sprintf("%d. %s (%s) - Role: %s", i+1, name, email, m.Role)
			pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
		}
	}

	// Footer
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 6, "Generated on: "+time.Now().Format("Mon Jan 02 2006"), "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		s.logger.Error("Failed to render PDF", zap.String("event_id", event.ID), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to export event"}
	}
	return nil
}

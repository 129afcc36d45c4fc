package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type ReportController struct {
	Reservations *services.ReservationService
	Tables       *services.TableService
}

func NewReportController(reservations *services.ReservationService, tables *services.TableService) *ReportController {
	return &ReportController{Reservations: reservations, Tables: tables}
}

// DaySheet -> GET /admin/reservations/sheet?date=YYYY-MM-DD, printable PDF of
// the day's active reservations
func (rc *ReportController) DaySheet(c *gin.Context) {
	date := c.Query("date")
	ctx := c.Request.Context()

	reservations, err := rc.Reservations.ListByDate(ctx, date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	tables, err := rc.Tables.List(ctx)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	body, err := RenderDaySheet(date, reservations, tables)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=reservations-%s.pdf", date))
	c.Data(http.StatusOK, "application/pdf", body)
}

var sheetColumns = []struct {
	title string
	width float64
}{
	{"Time", 18},
	{"Guest", 55},
	{"Mobile", 38},
	{"People", 16},
	{"Status", 22},
	{"Table", 25},
}

// RenderDaySheet lays out one row per reservation in time order.
func RenderDaySheet(date string, reservations []models.Reservation, tables []models.Table) ([]byte, error) {
	seatedAt := make(map[uint]string, len(tables))
	for _, t := range tables {
		if t.ReservationID != nil {
			seatedAt[*t.ReservationID] = t.TableName
		}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Reservations "+date, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Reservations for "+date, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	for _, col := range sheetColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range reservations {
		row := []string{
			r.ReservationTime,
			r.LastName + ", " + r.FirstName,
			r.MobileNumber,
			fmt.Sprintf("%d", r.People),
			string(r.Status),
			seatedAt[r.ReservationID],
		}
		for i, col := range sheetColumns {
			pdf.CellFormat(col.width, 7, row[i], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(reservations) == 0 {
		pdf.CellFormat(0, 8, "No reservations.", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render day sheet: %w", err)
	}
	return buf.Bytes(), nil
}

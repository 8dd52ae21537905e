package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/yeheskieltame/spend-save-analyze/internal/middleware"
	"github.com/yeheskieltame/spend-save-analyze/internal/models"
	"github.com/yeheskieltame/spend-save-analyze/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler exports a user's financial records as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeaders = []string{"Name", "Kind", "Amount", "Date", "Source", "Debt Action", "Due Date", "Status", "Remaining"}

func exportRow(r *models.FinancialRecord) []string {
	remaining := ""
	if r.Remaining.Valid {
		remaining = r.Remaining.Decimal.String()
	}
	return []string{
		r.Name,
		r.Kind,
		r.Amount.String(),
		r.Date,
		r.Source,
		r.DebtAction,
		r.DebtDueDate,
		r.DebtStatus,
		remaining,
	}
}

func (h *ExportHandler) userRecords(c *gin.Context) ([]models.FinancialRecord, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}

	var rows []models.FinancialRecord
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("date DESC, created_at DESC").
		Find(&rows).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return nil, false
	}
	return rows, true
}

// ExportCSV 导出账目为 CSV
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	rows, ok := h.userRecords(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"records_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM so spreadsheet apps detect the encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(exportHeaders)
	for i := range rows {
		writer.Write(exportRow(&rows[i]))
	}
}

// ExportXLSX 导出账目为 XLSX
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	rows, ok := h.userRecords(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Records"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range rows {
		row := idx + 2
		for col, val := range exportRow(&rows[idx]) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 30)
	f.SetColWidth(sheetName, "B", "I", 14)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"records_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}

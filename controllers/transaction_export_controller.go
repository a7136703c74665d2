package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/schoolpay/payments-api/repository"
	"github.com/schoolpay/payments-api/utils"
)

// exportLimit caps how many rows a single export may pull.
const exportLimit = 10000

// Export handles GET /api/transactions/export. It applies the same filters
// as the list endpoint and writes the matching rows as XLSX or PDF.
func (ctrl *TransactionController) Export(c *gin.Context) {
	utils.LogInfo("ExportTransactions called")

	params := queryParams(c)
	params.Page = 1
	params.Limit = exportLimit

	page, err := ctrl.transactions.List(params)
	if err != nil {
		utils.LogError("Failed to fetch transactions for export: %v", err)
		utils.RespondWithError(c, err)
		return
	}
	utils.LogDebug("Exporting %d transactions", len(page.Transactions))

	switch c.DefaultQuery("format", "xlsx") {
	case "xlsx":
		ctrl.exportExcel(c, page.Transactions)
	case "pdf":
		ctrl.exportPDF(c, page.Transactions)
	default:
		utils.BadRequest(c, "Invalid format", "Format must be xlsx or pdf")
	}
}

var exportHeaders = []string{
	"Collect ID", "School ID", "Gateway", "Order Amount", "Transaction Amount",
	"Status", "Custom Order ID", "Student Name", "Student Email", "Payment Time", "Created At",
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func (ctrl *TransactionController) exportExcel(c *gin.Context, rows []repository.TransactionRow) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transactions")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("School Payments - Transactions")
	dateRow := sheet.AddRow()
	dateRow.AddCell().SetString("Generated: " + time.Now().Format("2006-01-02 15:04"))
	sheet.AddRow() // spacing

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, row := range rows {
		r := sheet.AddRow()
		r.AddCell().SetString(row.CollectID)
		r.AddCell().SetString(row.SchoolID)
		r.AddCell().SetString(row.Gateway)
		r.AddCell().SetFloat(row.OrderAmount)
		if row.TransactionAmount != nil {
			r.AddCell().SetFloat(*row.TransactionAmount)
		} else {
			r.AddCell().SetString("")
		}
		r.AddCell().SetString(row.Status)
		r.AddCell().SetString(row.CustomOrderID)
		r.AddCell().SetString(row.StudentInfo.Name)
		r.AddCell().SetString(row.StudentInfo.Email)
		r.AddCell().SetString(formatTime(row.PaymentTime))
		r.AddCell().SetString(row.CreatedAt.Format("2006-01-02 15:04"))
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=transactions.xlsx")
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully exported %d transactions as XLSX", len(rows))
}

func (ctrl *TransactionController) exportPDF(c *gin.Context, rows []repository.TransactionRow) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "School Payments - Transactions")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, "Generated: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	colWidths := []float64{38, 24, 22, 24, 28, 20, 36, 30, 40, 28, 28}
	pdf.SetFont("Arial", "B", 9)
	for i, h := range exportHeaders {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	fill := false
	for _, row := range rows {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		txnAmount := ""
		if row.TransactionAmount != nil {
			txnAmount = fmt.Sprintf("%.2f", *row.TransactionAmount)
		}
		pdf.CellFormat(colWidths[0], 7, row.CollectID, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[1], 7, row.SchoolID, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[2], 7, row.Gateway, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[3], 7, fmt.Sprintf("%.2f", row.OrderAmount), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[4], 7, txnAmount, "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[5], 7, row.Status, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[6], 7, row.CustomOrderID, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[7], 7, row.StudentInfo.Name, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[8], 7, row.StudentInfo.Email, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[9], 7, formatTime(row.PaymentTime), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[10], 7, row.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", fill, 0, "")
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=transactions.pdf")
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}
	utils.LogInfo("Successfully exported %d transactions as PDF", len(rows))
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"designmecha-mes/config"
	"designmecha-mes/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportProductionPlanHandler streams the plan as a work-order sheet.
func ExportProductionPlanHandler(c *gin.Context) {
	var plan models.ProductionPlan
	if err := planScope(config.DB).First(&plan, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Production plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch production plan"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "작업지시서"
	f.SetSheetName("Sheet1", sheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	f.MergeCell(sheet, "A1", "H1")
	f.SetCellValue(sheet, "A1", "작업지시서")
	f.SetCellStyle(sheet, "A1", "H1", titleStyle)
	f.SetRowHeight(sheet, 1, 28)

	f.SetCellValue(sheet, "A3", "계획일자")
	f.SetCellValue(sheet, "B3", plan.PlanDate.Format(planDateLayout))
	f.SetCellValue(sheet, "A4", "생산지시")
	f.SetCellValue(sheet, "B4", sourceLabel(&plan))
	f.SetCellValue(sheet, "A5", "상태")
	f.SetCellValue(sheet, "B5", string(plan.Status))

	headers := []string{"품명", "규격", "공정명", "순서", "구분", "수량", "예상시간(분)", "비고"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 7)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 8
	for _, item := range plan.Items {
		name, spec := "", ""
		if item.Product != nil {
			name, spec = item.Product.Name, item.Product.Specification
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), spec)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.ProcessName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.Sequence)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), courseLabel(item.CourseType))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), item.EstimatedTime)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), item.Note)
		row++
	}

	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "C", 18)
	f.SetColWidth(sheet, "E", "E", 12)
	f.SetColWidth(sheet, "G", "G", 14)
	f.SetColWidth(sheet, "H", "H", 28)

	filename := fmt.Sprintf("production_plan_%d_%s.xlsx", plan.ID, strings.Split(uuid.NewString(), "-")[0])
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}

func sourceLabel(plan *models.ProductionPlan) string {
	switch {
	case plan.Order != nil:
		return plan.Order.OrderNo
	case plan.StockProduction != nil:
		return plan.StockProduction.ProductionNo
	default:
		return "-"
	}
}

func courseLabel(ct models.CourseType) string {
	switch ct {
	case models.CourseOutsourcing:
		return "외주"
	case models.CoursePurchase:
		return "구매"
	default:
		return "사내"
	}
}

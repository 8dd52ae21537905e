package handler

import (
	"net/http"
	"time"

	"github.com/yeheskieltame/spend-save-analyze/internal/ledger"
	"github.com/yeheskieltame/spend-save-analyze/internal/middleware"
	"github.com/yeheskieltame/spend-save-analyze/internal/service"
	"github.com/yeheskieltame/spend-save-analyze/internal/util"

	"github.com/gin-gonic/gin"
)

// SummaryHandler 负责汇总统计接口
type SummaryHandler struct {
	Service *service.LedgerService
}

func NewSummaryHandler(svc *service.LedgerService) *SummaryHandler {
	return &SummaryHandler{Service: svc}
}

// GetSummary returns the totals, ratios and recommendations for one period.
// Defaults to the current month; ?month=YYYY-MM or ?year=YYYY select others.
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	records, err := h.Service.Records(c.Request.Context(), user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	period := ""
	if year := c.Query("year"); year != "" {
		period = year
		records = ledger.FilterByYear(records, year)
	} else {
		month := c.Query("month")
		if month == "" {
			month = time.Now().Format("2006-01")
		}
		if err := util.ValidateMonth(month); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "month must be YYYY-MM")
			return
		}
		period = month
		records = ledger.FilterByMonth(records, month)
	}

	totals := ledger.CalculateTotals(records)
	ratios := ledger.CalculateRatios(totals)

	util.Success(c, util.Response{
		"period": period,
		"totals": gin.H{
			"income":  totals.Income.String(),
			"expense": totals.Expense.String(),
			"savings": totals.Savings.String(),
			"debt":    totals.Debt.String(),
		},
		"ratios": gin.H{
			"expense": ratios.Expense.StringFixed(4),
			"savings": ratios.Savings.StringFixed(4),
			"debt":    ratios.Debt.StringFixed(4),
		},
		"recommendations": ledger.Recommend(totals),
	})
}

// GetPeriods lists the months and years present in the user's ledger, newest
// first, for the period pickers.
func (h *SummaryHandler) GetPeriods(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	records, err := h.Service.Records(c.Request.Context(), user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	util.Success(c, util.Response{
		"months": ledger.AvailableMonths(records),
		"years":  ledger.AvailableYears(records),
	})
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/yeheskieltame/spend-save-analyze/internal/ledger"
	"github.com/yeheskieltame/spend-save-analyze/internal/middleware"
	"github.com/yeheskieltame/spend-save-analyze/internal/service"
	"github.com/yeheskieltame/spend-save-analyze/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RecordHandler 负责账目相关接口
type RecordHandler struct {
	Service *service.LedgerService
}

func NewRecordHandler(svc *service.LedgerService) *RecordHandler {
	return &RecordHandler{Service: svc}
}

// ---------- 请求/响应结构 ----------

type createRecordReq struct {
	Name          string `json:"name" binding:"required,max=255"`
	Kind          string `json:"kind" binding:"required,oneof=income expense savings debt"`
	Amount        string `json:"amount" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Source        string `json:"source" binding:"omitempty,oneof=current savings"`
	DebtAction    string `json:"debt_action" binding:"omitempty,oneof=borrow pay"`
	DebtDueDate   string `json:"debt_due_date"`
	RelatedDebtID string `json:"related_debt_id"`
}

type recordResp struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	Amount        string `json:"amount"`
	Date          string `json:"date"`
	Source        string `json:"source,omitempty"`
	DebtAction    string `json:"debt_action,omitempty"`
	DebtDueDate   string `json:"debt_due_date,omitempty"`
	DebtStatus    string `json:"debt_status,omitempty"`
	RelatedDebtID string `json:"related_debt_id,omitempty"`
	Remaining     string `json:"remaining,omitempty"`
}

func toRecordResp(r ledger.Record) recordResp {
	resp := recordResp{
		ID:            r.ID,
		Name:          r.Name,
		Kind:          string(r.Kind),
		Amount:        r.Amount.String(),
		Date:          r.Date,
		Source:        string(r.Source),
		DebtAction:    string(r.DebtAction),
		DebtDueDate:   r.DebtDueDate,
		DebtStatus:    string(r.DebtStatus),
		RelatedDebtID: r.RelatedDebtID,
	}
	if r.Kind == ledger.KindDebt {
		resp.Remaining = r.Remaining.String()
	}
	return resp
}

// respondLedgerError maps engine errors onto the JSON envelope.
func respondLedgerError(c *gin.Context, err error) {
	var vErr *ledger.ValidationError
	var nfErr *ledger.NotFoundError
	switch {
	case errors.As(err, &vErr):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, vErr.Error())
	case errors.As(err, &nfErr):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, nfErr.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save failed, please retry")
	}
}

// ---------- 记一笔 ----------

// CreateRecord handles the generic add form: income, expense (optionally from
// savings), savings contribution, borrow or debt payment.
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var req createRecordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	if err := util.ValidateName(req.Name); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "please enter a name")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "please enter a valid amount")
		return
	}
	if err := util.ValidateAmount(amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "please enter a valid amount")
		return
	}
	if err := util.ValidateDate(req.Date); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "date must be YYYY-MM-DD")
		return
	}

	in := ledger.AddInput{
		OwnerID:       user.ID,
		Name:          req.Name,
		Kind:          ledger.Kind(req.Kind),
		Amount:        amount,
		Date:          req.Date,
		Source:        ledger.Source(req.Source),
		DebtAction:    ledger.DebtAction(req.DebtAction),
		DebtDueDate:   req.DebtDueDate,
		RelatedDebtID: req.RelatedDebtID,
	}

	plan, err := h.Service.AddRecord(c.Request.Context(), in)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	items := make([]recordResp, 0, len(plan.Inserts))
	for _, r := range plan.Inserts {
		items = append(items, toRecordResp(r))
	}

	msg := "record saved"
	if plan.Outcome == ledger.OutcomeSettled {
		msg = "debt fully settled"
	}
	util.Success(c, util.Response{
		"message": msg,
		"outcome": string(plan.Outcome),
		"records": items,
	})
}

// ---------- 查询列表 ----------

// ListRecords 查询账目列表，支持按月份、年份、类型筛选
func (h *RecordHandler) ListRecords(c *gin.Context) {
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

	if month := c.Query("month"); month != "" {
		if err := util.ValidateMonth(month); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "month must be YYYY-MM")
			return
		}
		records = ledger.FilterByMonth(records, month)
	} else if year := c.Query("year"); year != "" {
		records = ledger.FilterByYear(records, year)
	}

	if kind := ledger.Kind(c.Query("kind")); kind != "" {
		if !kind.Valid() {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown kind")
			return
		}
		records = ledger.FilterByKind(records, kind)
	}

	totals := ledger.CalculateTotals(records)

	// 分页参数
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if size <= 0 || size > 100 {
		size = 20
	}
	start := (page - 1) * size
	if start > len(records) {
		start = len(records)
	}
	end := start + size
	if end > len(records) {
		end = len(records)
	}

	items := make([]recordResp, 0, end-start)
	for _, r := range records[start:end] {
		items = append(items, toRecordResp(r))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(records),
		"page":  page,
		"size":  size,
		"summary": gin.H{
			"income":  totals.Income.String(),
			"expense": totals.Expense.String(),
			"savings": totals.Savings.String(),
			"debt":    totals.Debt.String(),
		},
	})
}

// ---------- 删除一条记录 ----------

// DeleteRecord removes a record. Deleting a borrow record also removes its
// payment history.
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id := c.Param("id")
	if id == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	plan, err := h.Service.DeleteRecord(c.Request.Context(), user.ID, id)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": "record deleted",
		"deleted": plan.Deletes,
	})
}

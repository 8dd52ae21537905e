package handler

import (
	"net/http"

	"github.com/yeheskieltame/spend-save-analyze/internal/ledger"
	"github.com/yeheskieltame/spend-save-analyze/internal/middleware"
	"github.com/yeheskieltame/spend-save-analyze/internal/service"
	"github.com/yeheskieltame/spend-save-analyze/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DebtHandler 负责债务相关接口
type DebtHandler struct {
	Service *service.LedgerService
}

func NewDebtHandler(svc *service.LedgerService) *DebtHandler {
	return &DebtHandler{Service: svc}
}

// ListUnpaidDebts returns every borrow record still outstanding, with the
// remaining balance recomputed from payment history rather than read from the
// stored snapshot.
func (h *DebtHandler) ListUnpaidDebts(c *gin.Context) {
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

	debts := ledger.UnpaidDebts(records)
	items := make([]recordResp, 0, len(debts))
	for _, d := range debts {
		items = append(items, toRecordResp(d))
	}

	util.Success(c, util.Response{
		"items":             items,
		"total_outstanding": ledger.TotalOutstanding(records).String(),
	})
}

type payDebtReq struct {
	Amount string `json:"amount" binding:"required"`
}

// PayDebt records a direct payment against a borrow record.
func (h *DebtHandler) PayDebt(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	debtID := c.Param("id")
	if debtID == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req payDebtReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
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

	plan, err := h.Service.PayDebt(c.Request.Context(), user.ID, debtID, amount)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	switch plan.Outcome {
	case ledger.OutcomeAlreadySettled:
		util.Info(c, "this debt is already settled", util.Response{
			"outcome": string(plan.Outcome),
		})
	case ledger.OutcomeSettled:
		util.Success(c, util.Response{
			"message": "debt fully settled",
			"outcome": string(plan.Outcome),
			"payment": toRecordResp(plan.Inserts[0]),
		})
	default:
		util.Success(c, util.Response{
			"message": "debt payment recorded",
			"outcome": string(plan.Outcome),
			"payment": toRecordResp(plan.Inserts[0]),
		})
	}
}

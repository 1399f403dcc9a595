package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/middleware"
	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/models"
	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler 负责账目相关接口。
// Every query and mutation is scoped by the authenticated owner; a
// transaction is never visible outside the account that created it.
type TransactionHandler struct {
	DB *gorm.DB
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{DB: db}
}

// ---------- 请求/响应结构 ----------

type createTxnReq struct {
	TxnType  string  `json:"txnType" binding:"required,oneof=income expense"`
	Amount   float64 `json:"amount" binding:"required"`
	Category string  `json:"category" binding:"max=32"`
	Desc     string  `json:"desc" binding:"max=255"`
	Date     string  `json:"date"`
}

type txnResp struct {
	ID        uint      `json:"id"`
	TxnType   string    `json:"txnType"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Desc      string    `json:"desc"`
	User      uint      `json:"user"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// ---------- 工具函数 ----------

// centFromAmount converts a decimal amount to cents, rounding to two places.
func centFromAmount(amount float64) int64 {
	if amount < 0 {
		return int64(amount*100 - 0.5)
	}
	return int64(amount*100 + 0.5)
}

func amountFromCent(cent int64) float64 {
	return float64(cent) / 100.0
}

// parseDate accepts the few layouts clients actually send.
func parseDate(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339,          // 2025-12-03T00:00:00+08:00
		"2006-01-02T15:04:05", // 2025-12-03T00:00:00
		"2006-01-02",          // 2025-12-03
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func toTxnResp(t *models.Transaction) txnResp {
	return txnResp{
		ID:        t.ID,
		TxnType:   t.TxnType,
		Amount:    amountFromCent(t.AmountCent),
		Category:  t.Category,
		Desc:      t.Desc,
		User:      t.UserID,
		Date:      t.Date,
		CreatedAt: t.CreatedAt,
	}
}

// ---------- 查询列表 ----------

// ListTransactions returns all of the caller's transactions, newest first.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "user not logged in")
		return
	}

	var txns []models.Transaction
	if err := h.DB.
		Where("user_id = ?", user.UserID).
		Order("date DESC, id DESC").
		Find(&txns).Error; err != nil {
		util.ServerError(c, "failed to fetch transactions")
		return
	}

	items := make([]txnResp, 0, len(txns))
	for i := range txns {
		items = append(items, toTxnResp(&txns[i]))
	}

	c.JSON(http.StatusOK, items)
}

// ---------- 记一笔 ----------

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "user not logged in")
		return
	}

	var req createTxnReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	// category is optional on create; when present it must be sane
	req.Category = strings.TrimSpace(req.Category)
	if req.Category != "" {
		if err := util.ValidateCategory(req.Category); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
	}
	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	date := time.Now()
	if req.Date != "" {
		t, ok := parseDate(req.Date)
		if !ok {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date format")
			return
		}
		date = t
	}

	// owner always comes from the verified token, never from the payload
	txn := models.Transaction{
		UserID:     user.UserID,
		TxnType:    req.TxnType,
		AmountCent: centFromAmount(req.Amount),
		Category:   req.Category,
		Desc:       req.Desc,
		Date:       date,
	}

	if err := h.DB.Create(&txn).Error; err != nil {
		util.ServerError(c, "failed to add transaction")
		return
	}

	c.JSON(http.StatusCreated, toTxnResp(&txn))
}

// ---------- 修改 ----------

// patchableFields maps the JSON patch keys clients may send to their
// database columns. Anything else, the owner reference included, is
// rejected.
var patchableFields = map[string]string{
	"txnType":  "txn_type",
	"amount":   "amount_cent",
	"category": "category",
	"desc":     "desc",
	"date":     "date",
}

// UpdateTransaction applies a partial patch to one of the caller's records.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "user not logged in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid transaction id")
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil || len(patch) == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	updates := make(map[string]interface{}, len(patch))
	for key, val := range patch {
		column, known := patchableFields[key]
		if !known {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown field: "+key)
			return
		}

		switch key {
		case "txnType":
			s, ok := val.(string)
			if !ok {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "txnType must be a string")
				return
			}
			if err := util.ValidateTxnType(s); err != nil {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
				return
			}
			updates[column] = s
		case "amount":
			f, ok := val.(float64)
			if !ok {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount must be a number")
				return
			}
			if err := util.ValidateAmount(f); err != nil {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
				return
			}
			updates[column] = centFromAmount(f)
		case "category":
			s, ok := val.(string)
			if !ok {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category must be a string")
				return
			}
			s = strings.TrimSpace(s)
			if err := util.ValidateCategory(s); err != nil {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
				return
			}
			updates[column] = s
		case "desc":
			s, ok := val.(string)
			if !ok || len(s) > 255 {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "desc must be a string of at most 255 characters")
				return
			}
			updates[column] = s
		case "date":
			s, ok := val.(string)
			if !ok {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "date must be a string")
				return
			}
			t, parsed := parseDate(s)
			if !parsed {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date format")
				return
			}
			updates[column] = t
		}
	}

	// 只允许修改自己的记录
	var txn models.Transaction
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.UserID).First(&txn).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		} else {
			util.ServerError(c, "failed to query transaction")
		}
		return
	}

	if err := h.DB.Model(&txn).Updates(updates).Error; err != nil {
		util.ServerError(c, "failed to update transaction")
		return
	}

	// reload so the response reflects exactly what was persisted
	if err := h.DB.First(&txn, txn.ID).Error; err != nil {
		util.ServerError(c, "failed to query transaction")
		return
	}

	c.JSON(http.StatusOK, toTxnResp(&txn))
}

// ---------- 删除 ----------

func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "user not logged in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid transaction id")
		return
	}

	// 只允许删除自己的记录; a miss is reported, never silently dropped
	res := h.DB.Where("id = ? AND user_id = ?", id, user.UserID).Delete(&models.Transaction{})
	if res.Error != nil {
		util.ServerError(c, "failed to delete transaction")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		return
	}

	util.Message(c, http.StatusOK, "transaction deleted successfully")
}

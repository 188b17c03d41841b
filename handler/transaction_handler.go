package handler

import (
	"context"
	"errors"
	"go-budget-api/common"
	"go-budget-api/model"
	"go-budget-api/service"
	"net/http"
)

// TransactionHandler holds dependencies for transaction-related handlers.
type TransactionHandler struct {
	service *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with its dependencies.
func NewTransactionHandler(s *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

type postFunc func(ctx context.Context, req model.PostTransactionRequest) (*model.Transaction, error)

func (h *TransactionHandler) post(w http.ResponseWriter, r *http.Request, post postFunc) *common.AppError {
	var req model.PostTransactionRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	transaction, err := post(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrInvalidTransactionType), errors.Is(err, service.ErrInvalidDate):
			return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not post transaction", err)
		}
	}

	common.WriteJSON(w, http.StatusCreated, transaction)
	return nil
}

// Deposit godoc
// @Summary      Deposit into an account
// @Description  Records a deposit and raises the account balance. With take_from_savings the savings account is reduced by the same amount.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        deposit body model.PostTransactionRequest true "Deposit details"
// @Success      201  {object}  model.Transaction
// @Failure      400  {object}  common.AppError
// @Failure      404  {object}  common.AppError "Account not found"
// @Failure      500  {object}  common.AppError
// @Router       /deposit [post]
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.post(w, r, h.service.Deposit)
}

// Withdraw godoc
// @Summary      Record an expense
// @Description  Records a negative ledger entry against the account. With take_from_savings the savings account is reduced too, unless the account is the savings account.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        withdrawal body model.PostTransactionRequest true "Expense details"
// @Success      201  {object}  model.Transaction
// @Failure      400  {object}  common.AppError
// @Failure      404  {object}  common.AppError "Account not found"
// @Failure      500  {object}  common.AppError
// @Router       /withdrawal [post]
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.post(w, r, h.service.Withdraw)
}

// CreateTransaction godoc
// @Summary      Post a transaction
// @Description  Posts a deposit or expense chosen by the type field.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        transaction body model.PostTransactionRequest true "Transaction details"
// @Success      201  {object}  model.Transaction
// @Failure      400  {object}  common.AppError
// @Failure      404  {object}  common.AppError "Account not found"
// @Failure      500  {object}  common.AppError
// @Router       /transactions [post]
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.post(w, r, h.service.PostTransaction)
}

// ListTransactions godoc
// @Summary      List transactions
// @Description  Returns the whole ledger, newest first.
// @Tags         transactions
// @Produce      json
// @Success      200  {array}   model.Transaction
// @Failure      500  {object}  common.AppError
// @Router       /transactions [get]
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) *common.AppError {
	transactions, err := h.service.ListTransactions(r.Context())
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve transactions", err)
	}

	common.WriteJSON(w, http.StatusOK, transactions)
	return nil
}

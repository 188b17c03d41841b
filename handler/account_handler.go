package handler

import (
	"go-budget-api/common"
	"go-budget-api/service"
	"net/http"
)

type AccountHandler struct {
	service *service.AccountService
}

func NewAccountHandler(service *service.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// ListAccounts godoc
// @Summary      List accounts
// @Description  Returns every account ordered by id.
// @Tags         accounts
// @Produce      json
// @Success      200  {array}   model.Account
// @Failure      500  {object}  common.AppError
// @Router       /accounts [get]
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) *common.AppError {
	accounts, err := h.service.ListAccounts(r.Context())
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve accounts", err)
	}

	common.WriteJSON(w, http.StatusOK, accounts)
	return nil
}

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"go-budget-api/common"
	"go-budget-api/model"
	"go-budget-api/service"
	"net/http"
)

const maxUploadBytes = 10 << 20

type DataHandler struct {
	service *service.DataService
}

func NewDataHandler(s *service.DataService) *DataHandler {
	return &DataHandler{service: s}
}

// Download godoc
// @Summary      Export all data
// @Description  Dumps every account and transaction as a JSON attachment.
// @Tags         data
// @Produce      json
// @Success      200  {object}  model.DataExport
// @Failure      500  {object}  common.AppError
// @Router       /download-data [get]
func (h *DataHandler) Download(w http.ResponseWriter, r *http.Request) *common.AppError {
	data, err := h.service.Export(r.Context())
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not export data", err)
	}

	filename := fmt.Sprintf("budget-export-%s.json", data.ExportedAt.Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	common.WriteJSON(w, http.StatusOK, data)
	return nil
}

// Upload godoc
// @Summary      Import data
// @Description  Upserts accounts and transactions by id. Existing rows with the same id are overwritten.
// @Tags         data
// @Accept       json
// @Produce      json
// @Param        data body model.DataExport true "Exported data"
// @Success      200  {object}  model.ImportResult
// @Failure      400  {object}  common.AppError
// @Failure      500  {object}  common.AppError
// @Router       /upload-data [post]
func (h *DataHandler) Upload(w http.ResponseWriter, r *http.Request) *common.AppError {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	var data model.DataExport
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid request body", err)
	}

	result, err := h.service.Import(r.Context(), &data)
	if err != nil {
		if errors.Is(err, service.ErrInvalidImport) {
			return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not import data", err)
	}

	common.WriteJSON(w, http.StatusOK, result)
	return nil
}

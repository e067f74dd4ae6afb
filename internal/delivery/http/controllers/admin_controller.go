package controllers

import (
	"log/slog"
	"net/http"

	"corazones/internal/delivery/http/helpers"
	"corazones/internal/domain"
)

type AdminController struct {
	Logger   *slog.Logger
	Importer domain.CatalogImporter
}

func NewAdminController(logger *slog.Logger, importer domain.CatalogImporter) *AdminController {
	return &AdminController{
		Logger:   logger,
		Importer: importer,
	}
}

// ImportRequest is the catalog import payload.
// swagger:model ImportRequest
type ImportRequest struct {
	SheetURL       string `json:"sheet_url"`
	DeleteExisting bool   `json:"delete_existing"`
}

func (r *ImportRequest) Validate() []string {
	var errs []string
	if r.SheetURL == "" {
		errs = append(errs, "sheet_url is required")
	}
	return errs
}

// ImportResult summarizes an import run. Errors are per-row messages in
// spreadsheet order ("Fila <n>: ...") or document-level messages when the
// sheet could not be read at all.
// swagger:model ImportResult
type ImportResult struct {
	CreatedCount int      `json:"created_count"`
	Errors       []string `json:"errors"`
}

// ImportCatalog godoc
// @Summary Import the product catalog from a Google Sheet
// @Description Downloads the sheet's CSV export and upserts products by exact name. The run always completes: problems are reported in the errors list, never as a failed request.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ImportRequest true "Import parameters"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /admin/products/import [post]
func (c *AdminController) ImportCatalog(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	created, errs := c.Importer.Import(r.Context(), req.SheetURL, req.DeleteExisting)
	if errs == nil {
		errs = []string{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ImportResult{
		CreatedCount: created,
		Errors:       errs,
	})
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/api/responses"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/export"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/ingest"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/reconcile"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ConsolidadoHandler lida com o recálculo, a consulta e o download da aba consolidada.
type ConsolidadoHandler struct {
	service  ingest.Service
	exporter export.Service
	now      func() time.Time
}

func NewConsolidadoHandler(service ingest.Service, exporter export.Service) *ConsolidadoHandler {
	return &ConsolidadoHandler{service: service, exporter: exporter, now: time.Now}
}

// Consolidar recalcula o consolidado a partir das duas abas de origem.
func (h *ConsolidadoHandler) Consolidar(c *gin.Context) {
	records, err := h.service.Consolidar(c.Request.Context())
	if errors.Is(err, reconcile.ErrConsolidationSkipped) {
		responses.Error(c, http.StatusConflict, "Consolidado não atualizado", err.Error())
		return
	}
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao consolidar", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"registros": len(records), "consolidado": records})
}

// Listar devolve o conteúdo atual da aba consolidada.
func (h *ConsolidadoHandler) Listar(c *gin.Context) {
	records, err := h.service.Consolidado(c.Request.Context())
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao ler o consolidado", err.Error())
		return
	}
	c.JSON(http.StatusOK, records)
}

// Exportar baixa o consolidado em xlsx (padrão) ou csv.
func (h *ConsolidadoHandler) Exportar(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "xlsx"))
	if format != "xlsx" && format != "csv" {
		responses.Error(c, http.StatusBadRequest, "Formato inválido", "use xlsx ou csv")
		return
	}

	records, err := h.service.Consolidado(c.Request.Context())
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao ler o consolidado", err.Error())
		return
	}

	var (
		out         []byte
		contentType string
	)
	if format == "csv" {
		out, err = h.exporter.ConsolidadoCSV(records)
		contentType = "text/csv; charset=windows-1252"
	} else {
		out, err = h.exporter.ConsolidadoXLSX(records)
		contentType = xlsxContentType
	}
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao gerar o arquivo", err.Error())
		return
	}

	fileName := fmt.Sprintf("Consolidado_%s.%s", h.now().Format("20060102_150405"), format)
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, contentType, out)
}

package handlers

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/api/responses"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/ingest"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/domain"
	"github.com/gin-gonic/gin"
)

// Limite de memória para o formulário multipart; o excedente vai para disco.
const maxUploadMemory = 32 << 20

// UploadHandler recebe os relatórios HTML enviados pelo painel.
type UploadHandler struct {
	service ingest.Service
}

func NewUploadHandler(service ingest.Service) *UploadHandler {
	return &UploadHandler{service: service}
}

// HandleComissoes processa um lote de relatórios de comissão (campo "files").
func (h *UploadHandler) HandleComissoes(c *gin.Context) {
	h.handle(c, h.service.ProcessarComissoes)
}

// HandleAproveitamento processa um lote de relatórios de aproveitamento (campo "files").
func (h *UploadHandler) HandleAproveitamento(c *gin.Context) {
	h.handle(c, h.service.ProcessarAproveitamento)
}

type processFunc func(ctx context.Context, files []ingest.Upload) (*domain.BatchResult, error)

func (h *UploadHandler) handle(c *gin.Context, process processFunc) {
	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		responses.Error(c, http.StatusBadRequest, "Formulário de envio inválido", err.Error())
		return
	}
	headers := c.Request.MultipartForm.File["files"]
	if len(headers) == 0 {
		responses.Error(c, http.StatusBadRequest, "Nenhum arquivo foi enviado")
		return
	}

	uploads := make([]ingest.Upload, 0, len(headers))
	for _, header := range headers {
		data, err := readFormFile(header)
		if err != nil {
			responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir um dos arquivos", err.Error())
			return
		}
		uploads = append(uploads, ingest.Upload{Nome: header.Filename, Dados: data})
	}

	result, err := process(c.Request.Context(), uploads)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao gravar os registros", err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", header.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("ler %s: %w", header.Filename, err)
	}
	return data, nil
}

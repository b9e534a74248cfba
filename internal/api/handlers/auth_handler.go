package handlers

import (
	"errors"
	"net/http"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/api/responses"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service auth.Service
}

func NewAuthHandler(service auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	Senha string `json:"senha" binding:"required"`
}

// Login troca a senha do painel por um token JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Senha não informada")
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Senha)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		responses.Error(c, http.StatusUnauthorized, "Senha inválida")
		return
	case errors.Is(err, auth.ErrSecretNotConfigured):
		responses.Error(c, http.StatusServiceUnavailable, "Senha de acesso não configurada na aba Config")
		return
	case err != nil:
		responses.Error(c, http.StatusInternalServerError, "Erro ao autenticar", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

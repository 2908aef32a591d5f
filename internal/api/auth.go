package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"control_gastos/internal/service" // Auth use cases

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Reply to a body that does not bind
const msgBadRequest = "Solicitud inválida"

// Request struct for registration and login
type CredentialsRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for a successful login
type LoginResponse struct {
	Token    string `json:"token"`    // Signed JWT
	Username string `json:"username"` // Token subject
}

// RegisterHandler creates a user unless the username is already taken
func RegisterHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, msgBadRequest)
			return
		}
		ok, err := auth.Register(c.Request.Context(), req.Username, req.Password)
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.String(http.StatusBadRequest, verr.Message)
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"username": req.Username,
				"error":    err.Error(),
			}).Error("Registration failed")
			c.String(http.StatusInternalServerError, "Error al registrar")
			return
		}
		// A taken username is reported as a client error
		if !ok {
			c.String(http.StatusBadRequest, "El nombre de usuario ya existe")
			return
		}
		c.String(http.StatusOK, "Registro exitoso")
	}
}

// LoginHandler checks the credentials and returns a JWT token
func LoginHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, msgBadRequest)
			return
		}
		token, err := auth.Login(c.Request.Context(), req.Username, req.Password)
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.String(http.StatusUnauthorized, "Credenciales inválidas")
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"username": req.Username,
				"error":    err.Error(),
			}).Error("Login failed")
			c.String(http.StatusInternalServerError, "Error al iniciar sesión")
			return
		}
		c.JSON(http.StatusOK, LoginResponse{Token: token, Username: req.Username})
	}
}

package server

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/hassansabag81/TecRoomV1/internal/domain"
	apperrors "github.com/hassansabag81/TecRoomV1/internal/errors"
	"github.com/labstack/echo/v4"
)

var (
	studentIDPattern = regexp.MustCompile(`^\d{8}$`)
	emailPattern     = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type loginRequest struct {
	StudentID string `json:"studentId"`
	Password  string `json:"password"`
}

type userView struct {
	AccountID int64  `json:"usuarioId"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"rol"`
	UserType  string `json:"userType"`
}

func publicView(a *domain.Account) userView {
	return userView{
		AccountID: a.ID,
		Username:  a.Username,
		Name:      a.FullName,
		Email:     a.Email,
		Role:      string(a.Role),
		UserType:  strings.ToLower(string(a.Role)),
	}
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("Solicitud inválida")
	}
	if req.StudentID == "" || req.Password == "" {
		return apperrors.ValidationError("Número de control y contraseña son requeridos")
	}

	token, account, err := s.app.Login(c.Request().Context(), req.StudentID, req.Password, c.RealIP())
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAccountNotFound):
		return apperrors.UnauthorizedError("Usuario no encontrado").WithField("username", req.StudentID)
	case errors.Is(err, domain.ErrAccountDisabled):
		return apperrors.UnauthorizedError("Cuenta desactivada").WithField("username", req.StudentID)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apperrors.UnauthorizedError("Contraseña incorrecta").WithField("username", req.StudentID)
	default:
		return apperrors.UnavailableError("Base de datos no disponible", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Login exitoso",
		"token":   token,
		"user":    publicView(account),
	})
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	StudentID string `json:"studentId"`
	Password  string `json:"password"`
}

// validateRegistration enforces field presence and shape before the service
// layer, which only guards the uniqueness invariant.
func validateRegistration(req registerRequest) error {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.StudentID == "" || req.Password == "" {
		return apperrors.ValidationError("Todos los campos son requeridos")
	}
	if !studentIDPattern.MatchString(req.StudentID) {
		return apperrors.ValidationError("El número de control debe tener 8 dígitos")
	}
	if !emailPattern.MatchString(req.Email) {
		return apperrors.ValidationError("El correo electrónico no es válido")
	}
	if len(req.Password) < 8 {
		return apperrors.ValidationError("La contraseña debe tener al menos 8 caracteres")
	}
	return nil
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("Solicitud inválida")
	}
	if err := validateRegistration(req); err != nil {
		return err
	}

	username, err := s.app.Register(c.Request().Context(), domain.Registration{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     req.Email,
		StudentID: req.StudentID,
		Password:  req.Password,
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrDuplicateAccount):
		return apperrors.ConflictError("El número de control o email ya está registrado")
	default:
		return apperrors.UnavailableError("Base de datos no disponible", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Usuario registrado exitosamente",
		"username": username,
	})
}

package handler

import (
	"github.com/fadilmartias/datapulse/internal/dto"
	"github.com/fadilmartias/datapulse/internal/middleware"
	"github.com/fadilmartias/datapulse/internal/usecase"
	"github.com/fadilmartias/datapulse/internal/util"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth       *usecase.AuthUsecase
	skills     *usecase.SkillAnalysisUsecase
	workspaces *usecase.WorkspaceRegistry
}

func NewAuthHandler(auth *usecase.AuthUsecase, skills *usecase.SkillAnalysisUsecase, workspaces *usecase.WorkspaceRegistry) *AuthHandler {
	return &AuthHandler{auth: auth, skills: skills, workspaces: workspaces}
}

func (h *AuthHandler) RegisterRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Get("/me", h.Me)
	auth.Post("/forgot-password", h.ForgotPassword)
	auth.Post("/reset-password", h.ResetPassword)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.BadRequest(c, "invalid request body", err)
	}
	user, err := h.auth.Register(c.UserContext(), req)
	if err != nil {
		return remoteError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Registration successful",
		Data:    user,
	})
}

// Login stores the token for this browser session and reloads its
// workspace with the new credentials.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.BadRequest(c, "invalid request body", err)
	}
	sessionID := middleware.SessionID(c)
	user, err := h.auth.Login(c.UserContext(), sessionID, req)
	if err != nil {
		return remoteError(c, err)
	}
	ws, _ := h.workspaces.Get(sessionID)
	h.skills.Load(c.UserContext(), ws)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Login successful",
		Data:    user,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.auth.CurrentUser(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return remoteError(c, err)
	}
	if user == nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnauthorized,
			Message: "not logged in",
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get current user",
		Data:    user,
	})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return util.BadRequest(c, "invalid request body", err)
	}
	msg, err := h.auth.ForgotPassword(c.UserContext(), req.Email)
	if err != nil {
		return remoteError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: orDefault(msg, "Password reset email sent")})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return util.BadRequest(c, "invalid request body", err)
	}
	msg, err := h.auth.ResetPassword(c.UserContext(), req.Token, req.NewPassword)
	if err != nil {
		return remoteError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: orDefault(msg, "Password has been reset")})
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

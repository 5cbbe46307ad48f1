package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domainUser "loanlink-backend/internal/domain/user"
	ucUser "loanlink-backend/internal/usecase/user"
)

type UserHandler struct{ uc *ucUser.Usecase }

func NewUserHandler(uc *ucUser.Usecase) *UserHandler { return &UserHandler{uc: uc} }

type loginReq struct {
	Name     string `json:"name"      validate:"max=255"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
}

type updateRoleReq struct {
	Role string `json:"role" validate:"required,oneof=borrower manager admin suspended"`
}

type suspendReq struct {
	Reason   string `json:"reason"   validate:"required,max=1000"`
	Feedback string `json:"feedback" validate:"max=2000"`
}

// Login upserts the caller's user record; the email always comes from the token.
func (h *UserHandler) Login(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return writeError(c, err)
	}
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	u, err := h.uc.Login(c.Request().Context(), caller.Email, ucUser.LoginInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Role(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return writeError(c, err)
	}
	role, err := h.uc.GetRole(c.Request().Context(), caller.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"role": string(role)})
}

func (h *UserHandler) List(c echo.Context) error {
	limit, skip, err := pageParams(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.List(c.Request().Context(), domainUser.Page{Limit: limit, Skip: skip})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *UserHandler) UpdateRole(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return writeError(c, err)
	}
	var req updateRoleReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	email := emailParam(c)
	if err := h.uc.UpdateRole(c.Request().Context(), caller, email, domainUser.Role(req.Role)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"email": email, "role": req.Role})
}

func (h *UserHandler) Suspend(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return writeError(c, err)
	}
	var req suspendReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	email := emailParam(c)
	if err := h.uc.Suspend(c.Request().Context(), caller, email, ucUser.SuspendInput(req)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"email": email, "role": string(domainUser.RoleSuspended)})
}

package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domainApp "loanlink-backend/internal/domain/application"
	ucApp "loanlink-backend/internal/usecase/application"
)

type ApplicationHandler struct{ uc *ucApp.Usecase }

func NewApplicationHandler(uc *ucApp.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// Unknown keys such as status or user_email are dropped by the decoder;
// the server sets those itself.
type submitApplicationReq struct {
	LoanID        string          `json:"loan_id"        validate:"required,hex32"`
	FirstName     string          `json:"first_name"     validate:"required,max=128"`
	LastName      string          `json:"last_name"      validate:"required,max=128"`
	ContactNumber string          `json:"contact_number" validate:"required,max=32"`
	NationalID    string          `json:"national_id"    validate:"required,max=64"`
	IncomeSource  string          `json:"income_source"  validate:"required,max=128"`
	MonthlyIncome decimal.Decimal `json:"monthly_income" validate:"gte=0,dec2"`
	LoanAmount    decimal.Decimal `json:"loan_amount"    validate:"gt=0,dec2"`
	Reason        string          `json:"reason"`
	Address       string          `json:"address"        validate:"required"`
	ExtraNotes    string          `json:"extra_notes"`
}

type updateApplicationReq struct {
	FirstName     *string          `json:"first_name"     validate:"omitempty,min=1,max=128"`
	LastName      *string          `json:"last_name"      validate:"omitempty,min=1,max=128"`
	ContactNumber *string          `json:"contact_number" validate:"omitempty,min=1,max=32"`
	NationalID    *string          `json:"national_id"    validate:"omitempty,min=1,max=64"`
	IncomeSource  *string          `json:"income_source"  validate:"omitempty,max=128"`
	MonthlyIncome *decimal.Decimal `json:"monthly_income" validate:"omitempty,gte=0,dec2"`
	LoanAmount    *decimal.Decimal `json:"loan_amount"    validate:"omitempty,gt=0,dec2"`
	Reason        *string          `json:"reason"`
	Address       *string          `json:"address"        validate:"omitempty,min=1"`
	ExtraNotes    *string          `json:"extra_notes"`
}

// Keys an owner may never send on update.
var immutableKeys = map[string]bool{
	"id":                     true,
	"loan_id":                true,
	"loan_title":             true,
	"user_email":             true,
	"status":                 true,
	"application_fee_status": true,
	"payment_info":           true,
	"created_at":             true,
	"approved_at":            true,
	"rejected_at":            true,
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return writeError(c, err)
	}
	var req submitApplicationReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Submit(c.Request().Context(), caller, ucApp.SubmitInput{
		LoanID: req.LoanID,
		Details: domainApp.Details{
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			ContactNumber: req.ContactNumber,
			NationalID:    req.NationalID,
			IncomeSource:  req.IncomeSource,
			MonthlyIncome: req.MonthlyIncome,
			LoanAmount:    req.LoanAmount,
			Reason:        req.Reason,
			Address:       req.Address,
			ExtraNotes:    req.ExtraNotes,
		},
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return writeError(c, err)
	}
	dto, err := h.uc.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) Update(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return writeError(c, err)
	}
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badBody(c)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return badBody(c)
	}
	if bad := immutableIn(keys); len(bad) > 0 {
		details := make([]FieldError, 0, len(bad))
		for _, k := range bad {
			details = append(details, FieldError{Field: k, Message: "cannot be changed"})
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: domainApp.ErrImmutableField.Error(), Details: details})
	}

	var req updateApplicationReq
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.OwnerUpdate(c.Request().Context(), caller, c.Param("id"), domainApp.Patch(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func immutableIn(keys map[string]json.RawMessage) []string {
	var bad []string
	for k := range keys {
		if immutableKeys[k] {
			bad = append(bad, k)
		}
	}
	sort.Strings(bad)
	return bad
}

func (h *ApplicationHandler) ListMine(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.ListMine(c.Request().Context(), caller, emailParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ApplicationHandler) ListAll(c echo.Context) error {
	limit, skip, err := pageParams(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.ListAll(c.Request().Context(), domainApp.Page{Limit: limit, Skip: skip})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ApplicationHandler) ListPending(c echo.Context) error {
	list, err := h.uc.ListPending(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ApplicationHandler) ListApproved(c echo.Context) error {
	list, err := h.uc.ListApproved(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ApplicationHandler) Approve(c echo.Context) error {
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) Reject(c echo.Context) error {
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

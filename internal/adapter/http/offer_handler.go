package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domainOffer "loanlink-backend/internal/domain/offer"
	ucOffer "loanlink-backend/internal/usecase/offer"
)

type OfferHandler struct{ uc *ucOffer.Usecase }

func NewOfferHandler(uc *ucOffer.Usecase) *OfferHandler { return &OfferHandler{uc: uc} }

type createOfferReq struct {
	Title             string          `json:"title"              validate:"required,max=255"`
	Description       string          `json:"description"`
	Category          string          `json:"category"           validate:"max=64"`
	InterestRate      decimal.Decimal `json:"interest_rate"      validate:"gte=0,lte=100,dec2"`
	MaxLoanLimit      decimal.Decimal `json:"max_loan_limit"     validate:"gt=0,dec2"`
	RequiredDocuments []string        `json:"required_documents"`
	EMIPlans          []string        `json:"emi_plans"`
	Images            []string        `json:"images"             validate:"omitempty,dive,url"`
	ShowOnHome        bool            `json:"show_on_home"`
}

type updateOfferReq struct {
	Title             *string          `json:"title"              validate:"omitempty,min=1,max=255"`
	Description       *string          `json:"description"`
	Category          *string          `json:"category"           validate:"omitempty,max=64"`
	InterestRate      *decimal.Decimal `json:"interest_rate"      validate:"omitempty,gte=0,lte=100,dec2"`
	MaxLoanLimit      *decimal.Decimal `json:"max_loan_limit"     validate:"omitempty,gt=0,dec2"`
	RequiredDocuments []string         `json:"required_documents"`
	EMIPlans          []string         `json:"emi_plans"`
	Images            []string         `json:"images"             validate:"omitempty,dive,url"`
	ShowOnHome        *bool            `json:"show_on_home"`
}

func (h *OfferHandler) List(c echo.Context) error {
	limit, skip, err := pageParams(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.List(c.Request().Context(), limit, skip)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *OfferHandler) ListHome(c echo.Context) error {
	list, err := h.uc.ListHome(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *OfferHandler) Get(c echo.Context) error {
	o, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OfferHandler) Create(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return writeError(c, err)
	}
	var req createOfferReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	o, err := h.uc.Create(c.Request().Context(), caller, ucOffer.CreateInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *OfferHandler) Update(c echo.Context) error {
	var req updateOfferReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	o, err := h.uc.Update(c.Request().Context(), c.Param("id"), domainOffer.Patch(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OfferHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": true, "id": id})
}

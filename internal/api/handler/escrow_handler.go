package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/worklock/worklock/internal/core/domain"
	"github.com/worklock/worklock/internal/core/ports"
)

type EscrowHandler struct {
	escrow ports.EscrowService
}

func NewEscrowHandler(escrow ports.EscrowService) *EscrowHandler {
	return &EscrowHandler{escrow: escrow}
}

// Status returns the escrow for an employee. Employees see their own;
// admins pass ?employee=<wallet>.
//
// @Summary      Escrow status
// @Tags         escrow
// @Produce      json
// @Param        employee  query     string  false  "employee wallet (admin only)"
// @Success      200       {object}  escrowResponse
// @Failure      404       {object}  map[string]string
// @Router       /v1/escrow [get]
// @Security     BearerAuth
func (h *EscrowHandler) Status(c echo.Context) error {
	_, role, wallet, err := ctxClaims(c)
	if err != nil {
		return err
	}

	employee := wallet
	if role == domain.RoleAdmin {
		employee = c.QueryParam("employee")
		if employee == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "employee query parameter required")
		}
	}

	esc, err := h.escrow.Status(c.Request().Context(), employee)
	if err != nil {
		return err
	}
	if esc == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no escrow for employee")
	}

	return c.JSON(http.StatusOK, escrowResponse{Escrow: esc, Amount: esc.DisplayAmount()})
}

// Create opens a new escrow with the caller as employer.
//
// @Summary      Create escrow
// @Tags         escrow
// @Accept       json
// @Produce      json
// @Param        body  body      createEscrowRequest  true  "Escrow terms"
// @Success      201   {object}  punchResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/escrow [post]
// @Security     BearerAuth
func (h *EscrowHandler) Create(c echo.Context) error {
	_, _, wallet, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createEscrowRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	receipt, err := h.escrow.Create(c.Request().Context(), ports.CreateEscrowInput{
		Employer:       wallet,
		Employee:       req.Employee,
		Resolver:       req.Resolver,
		BenefitsWallet: req.BenefitsWallet,
		Amount:         amount,
		RequiredHours:  req.RequiredHours,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, punchResponse{Hash: receipt.Hash, Ledger: receipt.Ledger})
}

// Fund moves tokens from the caller into the escrow contract.
//
// @Summary      Fund escrow
// @Tags         escrow
// @Accept       json
// @Produce      json
// @Param        body  body      fundEscrowRequest  true  "Amount to deposit"
// @Success      200   {object}  punchResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/escrow/fund [post]
// @Security     BearerAuth
func (h *EscrowHandler) Fund(c echo.Context) error {
	_, _, wallet, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req fundEscrowRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	receipt, err := h.escrow.Fund(c.Request().Context(), ports.FundEscrowInput{
		Employer: wallet,
		Amount:   amount,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, punchResponse{Hash: receipt.Hash, Ledger: receipt.Ledger})
}

// Claim releases the payout to the caller once worked hours meet the target.
//
// @Summary      Claim escrow payout
// @Tags         escrow
// @Produce      json
// @Success      200  {object}  punchResponse
// @Failure      422  {object}  map[string]string
// @Router       /v1/escrow/claim [post]
// @Security     BearerAuth
func (h *EscrowHandler) Claim(c echo.Context) error {
	_, _, wallet, err := ctxClaims(c)
	if err != nil {
		return err
	}

	receipt, err := h.escrow.Claim(c.Request().Context(), wallet)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, punchResponse{Hash: receipt.Hash, Ledger: receipt.Ledger})
}

// AddHours credits manual hours toward an employee's target.
//
// @Summary      Add manual hours
// @Tags         escrow
// @Accept       json
// @Produce      json
// @Param        body  body      manualHoursRequest  true  "Employee and hours"
// @Success      200   {object}  punchResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/escrow/hours [post]
// @Security     BearerAuth
func (h *EscrowHandler) AddHours(c echo.Context) error {
	_, _, wallet, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req manualHoursRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	receipt, err := h.escrow.AddManualHours(c.Request().Context(), wallet, req.Employee, req.Hours)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, punchResponse{Hash: receipt.Hash, Ledger: receipt.Ledger})
}

// Dispute freezes an active escrow. Employees dispute their own; admins name
// the employee in the body.
//
// @Summary      Open dispute
// @Tags         escrow
// @Accept       json
// @Produce      json
// @Param        body  body      disputeRequest  false  "Employee wallet (admin only)"
// @Success      200   {object}  punchResponse
// @Failure      422   {object}  map[string]string
// @Router       /v1/escrow/dispute [post]
// @Security     BearerAuth
func (h *EscrowHandler) Dispute(c echo.Context) error {
	_, role, wallet, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req disputeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	employee := wallet
	if role == domain.RoleAdmin {
		if req.Employee == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "employee required")
		}
		employee = req.Employee
	}

	receipt, err := h.escrow.OpenDispute(c.Request().Context(), wallet, employee)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, punchResponse{Hash: receipt.Hash, Ledger: receipt.Ledger})
}

// Resolve settles a dispute. The ledger enforces that only the designated
// resolver may call this; anyone else gets the contract rejection back.
//
// @Summary      Resolve dispute
// @Tags         escrow
// @Accept       json
// @Produce      json
// @Param        body  body      resolveRequest  true  "Resolution verdict"
// @Success      200   {object}  punchResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/escrow/resolve [post]
// @Security     BearerAuth
func (h *EscrowHandler) Resolve(c echo.Context) error {
	_, _, wallet, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req resolveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	receipt, err := h.escrow.ResolveDispute(c.Request().Context(), wallet, req.Employee, req.ReleaseToEmployee)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, punchResponse{Hash: receipt.Hash, Ledger: receipt.Ledger})
}

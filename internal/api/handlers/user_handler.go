package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nimbusgrid/platform-go/internal/api/middleware"
	"github.com/nimbusgrid/platform-go/internal/application"
	"github.com/nimbusgrid/platform-go/internal/domain/user"
	"github.com/nimbusgrid/platform-go/pkg/response"
	"github.com/nimbusgrid/platform-go/pkg/utils"
)

type UserHandler struct {
	svc *application.UserService
}

func NewUserHandler(svc *application.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// identityFromContext rebuilds the provider identity from the verified
// claims so a first request can seed the profile.
func identityFromContext(c *gin.Context) (application.Identity, bool) {
	v, ok := c.Get("claims")
	if !ok {
		return application.Identity{}, false
	}
	claims, ok := v.(*middleware.Claims)
	if !ok || claims.Subject == "" {
		return application.Identity{}, false
	}
	return application.Identity{
		UserID:    claims.Subject,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
	}, true
}

// GetProfile godoc
// @Summary Fetch the current user's profile, API keys and billing info
// @Tags user
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.ProfileResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/user/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	view, err := h.svc.GetProfile(id)
	if err != nil {
		fail(c, err, "Profile not found", "Failed to fetch profile")
		return
	}
	c.JSON(http.StatusOK, response.ProfileResponse{Profile: *view})
}

// UpdateProfile godoc
// @Summary Update profile fields
// @Tags user
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/user/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input user.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.svc.UpdateProfile(userID, input); err != nil {
		fail(c, err, "Profile not found", "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Success: true})
}

// UpdatePreferences godoc
// @Summary Update notification and security preferences
// @Tags user
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/user/preferences [put]
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input user.UpdatePreferencesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.svc.UpdatePreferences(userID, input); err != nil {
		fail(c, err, "Profile not found", "Failed to update preferences")
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Success: true})
}

// CreateAPIKey godoc
// @Summary Mint a new API key
// @Tags user
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.APIKeyResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/user/api-keys [post]
func (h *UserHandler) CreateAPIKey(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input user.CreateAPIKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Key name is required"})
		return
	}

	key, err := h.svc.CreateAPIKey(userID, input.Name)
	if err != nil {
		fail(c, err, "Profile not found", "Failed to create API key")
		return
	}
	c.JSON(http.StatusCreated, response.APIKeyResponse{APIKey: response.CreatedAPIKey{
		ID:        key.ID,
		Name:      key.Name,
		Key:       key.Secret,
		CreatedAt: key.CreatedAt.Format(time.RFC3339),
	}})
}

// DeleteAPIKey godoc
// @Summary Revoke an API key
// @Tags user
// @Security BearerAuth
// @Produce json
// @Param keyId query string true "API key ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/user/api-keys [delete]
func (h *UserHandler) DeleteAPIKey(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	keyID := c.Query("keyId")
	if keyID == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Key ID is required"})
		return
	}

	if err := h.svc.DeleteAPIKey(userID, keyID); err != nil {
		fail(c, err, "API key not found", "Failed to delete API key")
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Success: true})
}

// AddPaymentMethod godoc
// @Summary Register a payment method
// @Tags user
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.PaymentMethodResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/user/payment-methods [post]
func (h *UserHandler) AddPaymentMethod(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input user.AddPaymentMethodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid request body"})
		return
	}

	method, err := h.svc.AddPaymentMethod(userID, input)
	if err != nil {
		fail(c, err, "Profile not found", "Failed to add payment method")
		return
	}
	c.JSON(http.StatusCreated, response.PaymentMethodResponse{PaymentMethod: *method})
}

// DeletePaymentMethod godoc
// @Summary Remove a payment method
// @Tags user
// @Security BearerAuth
// @Produce json
// @Param methodId query string true "Payment method ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/user/payment-methods [delete]
func (h *UserHandler) DeletePaymentMethod(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	methodID := c.Query("methodId")
	if methodID == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Method ID is required"})
		return
	}

	if err := h.svc.DeletePaymentMethod(userID, methodID); err != nil {
		fail(c, err, "Payment method not found", "Failed to delete payment method")
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Success: true})
}

// PurchaseCredits godoc
// @Summary Add credits to the account balance
// @Tags user
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} response.PurchaseCreditsResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/user/purchase-credits [post]
func (h *UserHandler) PurchaseCredits(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input user.PurchaseCreditsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.svc.PurchaseCredits(userID, input.Amount); err != nil {
		fail(c, err, "Profile not found", "Failed to purchase credits")
		return
	}
	c.JSON(http.StatusOK, response.PurchaseCreditsResponse{
		Success:      true,
		CreditsAdded: input.Amount,
		Message:      "Credits purchased successfully",
	})
}

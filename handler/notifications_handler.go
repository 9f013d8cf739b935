package handler

import (
	"log"

	"main/dto"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type NotificationsHandler struct {
	notifier *services.Notifier
	ledger   *repository.LedgerRepo
}

func NewNotificationsHandler(notifier *services.Notifier, ledger *repository.LedgerRepo) *NotificationsHandler {
	return &NotificationsHandler{notifier: notifier, ledger: ledger}
}

// Sweep runs a notification sweep over all reports on demand, the same pass
// the background ticker runs periodically.
func (h *NotificationsHandler) Sweep(c *gin.Context) {
	statuses, errs := h.notifier.SendWhereNeeded(c.Request.Context())

	errorMessages := make([]string, len(errs))
	for i, err := range errs {
		log.Printf("ERROR: [NotificationsHandler] Sweep failure: %v", err)
		errorMessages[i] = err.Error()
	}

	utils.Success(c, gin.H{
		"statuses": dto.ToStatusResponses(statuses),
		"errors":   errorMessages,
	})
}

// GetSent returns the ledger of notifications sent today
func (h *NotificationsHandler) GetSent(c *gin.Context) {
	utils.Success(c, h.ledger.Load())
}

// RequestAuthorization probes the notification center for delivery permission
func (h *NotificationsHandler) RequestAuthorization(c *gin.Context) {
	if err := h.notifier.RequestAuthorization(c.Request.Context()); err != nil {
		log.Printf("ERROR: [NotificationsHandler] Authorization request failed: %v", err)
		utils.Forbidden(c, "Notification delivery not authorized")
		return
	}
	utils.Success(c, gin.H{"authorized": true})
}

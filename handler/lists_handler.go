package handler

import (
	"log"

	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type ListsHandler struct {
	source usecase.ReminderSource
}

func NewListsHandler(source usecase.ReminderSource) *ListsHandler {
	return &ListsHandler{source: source}
}

// GetLists returns every reminder list a report can be bound to
func (h *ListsHandler) GetLists(c *gin.Context) {
	ctx := c.Request.Context()

	authStatus, err := h.source.VerifyAuthorization(ctx)
	if err != nil {
		log.Printf("ERROR: [ListsHandler] Authorization check failed: %v", err)
		utils.InternalError(c, "Failed to check reminder access")
		return
	}
	if authStatus != model.AuthorizationAuthorized {
		utils.Forbidden(c, "Reminder access not authorized")
		return
	}

	lists, err := h.source.AllLists(ctx)
	if err != nil {
		log.Printf("ERROR: [ListsHandler] Failed to load reminder lists: %v", err)
		utils.InternalError(c, "Failed to load reminder lists")
		return
	}

	utils.Success(c, lists)
}

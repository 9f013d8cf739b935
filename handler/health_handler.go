package handler

import (
	"time"

	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type HealthHandler struct {
	mongoClient *mongo.Client
	reports     *repository.ReportsRepo
	startedAt   time.Time
}

func NewHealthHandler(mongoClient *mongo.Client, reports *repository.ReportsRepo) *HealthHandler {
	return &HealthHandler{
		mongoClient: mongoClient,
		reports:     reports,
		startedAt:   time.Now(),
	}
}

// GetHealth reports process and dependency health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	database := "up"
	if err := h.mongoClient.Ping(c.Request.Context(), readpref.Primary()); err != nil {
		database = "down"
	}

	storage := "up"
	if _, err := h.reports.LoadReports(); err != nil {
		storage = "down"
	}

	utils.Success(c, gin.H{
		"uptime":       time.Since(h.startedAt).Round(time.Second).String(),
		"database":     database,
		"storage":      storage,
		"cpu_usage":    utils.GetCPUUsage(),
		"memory_usage": utils.GetMemoryUsage(),
	})
}

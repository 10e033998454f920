package controllers

import (
	"os"

	"github.com/gin-gonic/gin"

	"wayfarer/pkg/utils"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

func envSet(key string) bool {
	return os.Getenv(key) != ""
}

// HealthHandler reports liveness and which external collaborators are
// configured. Key material itself is never echoed.
func (h *HealthController) HealthHandler(c *gin.Context) {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = "openai"
	}

	utils.RespondSuccess(c, gin.H{
		"status":       "ok",
		"llm_provider": provider,
		"llm_key_set":  envSet("OPENAI_API_KEY") || envSet("GEMINI_API_KEY"),
		"database_set": envSet("POSTGRES_URL"),
	}, "Service healthy")
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/alumbridge/scholarship-service/internal/utils"
)

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string) {
	utils.FromContext(c, h.logger).Info(msg,
		"method", c.Request.Method,
		"path", c.FullPath(),
	)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string) {
	utils.FromContext(c, h.logger).Error(msg,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
}

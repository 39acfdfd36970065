// Package handler 各业务模块的路由声明，由 router 包统一挂载。
package handler

import (
	"github.com/gin-gonic/gin"

	"homes-api/internal/core/errs"
	"homes-api/pkg/utils"
)

// pathID 路径上的 :id 必须是 uuid
func pathID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if !utils.IsID(id) {
		return "", errs.BadRequest("Validation failed (uuid is expected)")
	}
	return id, nil
}

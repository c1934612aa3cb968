// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/gin-gonic/gin"

	"kdrama-rec-api/internal/application/recommend"
	"kdrama-rec-api/internal/interfaces/http/router"
)

// App 组装完成的应用
type App struct {
	Router *router.Router
	Holder *recommend.Holder
}

// Engine 返回 HTTP 处理器
func (a *App) Engine() *gin.Engine {
	return a.Router.Engine()
}

// Reload 重新加载目录并替换索引
func (a *App) Reload(ctx context.Context) error {
	return a.Holder.Reload(ctx)
}

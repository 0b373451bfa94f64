package controller

import (
	"net"
	"net/http"
	"strings"

	"github.com/Tushar-web474/ImageForge/config"
	"github.com/Tushar-web474/ImageForge/web/entity"
	"github.com/Tushar-web474/ImageForge/web/session"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or
// remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// pureJsonMsg sends a JSON envelope with a custom status code.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, errMsg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Error:   errMsg,
	})
}

// html renders a template with the queued flash notices and login state
// merged into the data.
func html(c *gin.Context, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = session.TakeFlashes(c)
	data["username"] = session.GetUsername(c)
	data["isLogin"] = session.IsLogin(c)
	data["cur_ver"] = config.GetVersion()
	c.HTML(http.StatusOK, name, data)
}

// isAjax checks if the request is an AJAX request.
func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

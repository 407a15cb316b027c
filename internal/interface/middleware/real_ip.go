package middleware

import (
	"github.com/gin-gonic/gin"
)

const CtxRealIPKey = "real_ip"

// TrustProxies tells engine which peers may set X-Forwarded-For. An empty
// list trusts none, so the client IP is the TCP peer. With cloudflare set,
// CF-Connecting-IP is honoured; enable it only when every request arrives
// through Cloudflare.
func TrustProxies(engine *gin.Engine, proxies []string, cloudflare bool) error {
	if err := engine.SetTrustedProxies(proxies); err != nil {
		return err
	}
	if cloudflare {
		engine.TrustedPlatform = gin.PlatformCloudflare
	}
	return nil
}

// RealIP stores c.ClientIP() under "real_ip". Forwarding headers count only
// as far as TrustProxies allows.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRealIPKey, c.ClientIP())
		c.Next()
	}
}

package controller

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// wantsXML reports whether the client asked for XML via ?format=xml or the
// Accept header. JSON is the default.
func wantsXML(c echo.Context) bool {
	if c.QueryParam("format") == "xml" {
		return true
	}
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, "application/xml") || strings.Contains(accept, "text/xml")
}

func respond(c echo.Context, status int, v any) error {
	if wantsXML(c) {
		return c.XML(status, v)
	}
	return c.JSON(status, v)
}

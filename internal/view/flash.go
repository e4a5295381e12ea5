package view

import (
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
)

// FlashCookie names the flash cookie; the response cache bypasses
// requests carrying it so a pending message is never served from cache.
const FlashCookie = "showbill_flash"

// Flash leaves a one-shot status message for the next rendered page. The
// message rides in a short-lived cookie because mutations redirect and the
// server keeps no session state.
func Flash(c echo.Context, msg string) {
	c.SetCookie(&http.Cookie{
		Name:     FlashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		MaxAge:   int((5 * time.Minute).Seconds()),
		HttpOnly: true,
	})
}

// TakeFlash returns the pending flash message, if any, and clears it.
func TakeFlash(c echo.Context) string {
	ck, err := c.Cookie(FlashCookie)
	if err != nil || ck.Value == "" {
		return ""
	}
	c.SetCookie(&http.Cookie{Name: FlashCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	msg, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return ""
	}
	return msg
}

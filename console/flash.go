package console

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
)

const flashCookie = "console_flash"

// Flash is a one-shot message surfaced on the next rendered page
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func setFlash(c *fiber.Ctx, kind, message string) {
	payload, err := json.Marshal(Flash{Kind: kind, Message: message})
	if err != nil {
		return
	}

	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Expires:  time.Now().Add(5 * time.Minute),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// consumeFlash reads and clears the pending flash, if any
func consumeFlash(c *fiber.Ctx) *Flash {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return nil
	}

	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    "",
		Expires:  time.Now().Add(-24 * 365 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	payload, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}

	flash := &Flash{}
	if err := json.Unmarshal(payload, flash); err != nil {
		return nil
	}

	return flash
}

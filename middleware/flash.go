package middleware

import (
	"encoding/base64"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

// FlashCookie holds messages queued for the next rendered page.
const FlashCookie = "flash"

const flashKey = "flash"

type flashState struct {
	messages []string
	rendered bool
}

func decodeFlashes(raw string) []string {
	if raw == "" {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var messages []string
	if err := sonic.Unmarshal(data, &messages); err != nil {
		return nil
	}
	return messages
}

func encodeFlashes(messages []string) string {
	data, _ := sonic.Marshal(messages)
	return base64.RawURLEncoding.EncodeToString(data)
}

// LoadFlashes makes queued messages available to the handler. Messages survive
// redirects until a page is rendered, then the cookie is cleared.
func LoadFlashes(c *fiber.Ctx) error {
	incoming := decodeFlashes(c.Cookies(FlashCookie))
	state := &flashState{messages: incoming}
	c.Locals(flashKey, state)

	err := c.Next()

	switch {
	case len(state.messages) > 0 && !state.rendered:
		c.Cookie(&fiber.Cookie{
			Name:     FlashCookie,
			Value:    encodeFlashes(state.messages),
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	case len(incoming) > 0:
		c.ClearCookie(FlashCookie)
	}
	return err
}

func flashes(c *fiber.Ctx) *flashState {
	state, ok := c.Locals(flashKey).(*flashState)
	if !ok {
		state = &flashState{}
		c.Locals(flashKey, state)
	}
	return state
}

// AddFlash queues a message for the next rendered page.
func AddFlash(c *fiber.Ctx, message string) {
	state := flashes(c)
	state.messages = append(state.messages, message)
}

// TakeFlashes returns the queued messages and marks them as shown.
func TakeFlashes(c *fiber.Ctx) []string {
	state := flashes(c)
	state.rendered = true
	out := state.messages
	if out == nil {
		out = []string{}
	}
	return out
}

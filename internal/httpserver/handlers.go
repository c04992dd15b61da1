package httpserver

import (
	"github.com/gofiber/fiber/v2"

	"github.com/valpere/linguacast/internal/relay"
)

// decode parses the body as a JSON object regardless of Content-Type.
func decode(c *fiber.Ctx, v any) error {
	return c.App().Config().JSONDecoder(c.Body(), v)
}

func (s *Server) handleTranslate(c *fiber.Ctx) error {
	var req relay.TranslationRequest
	if err := decode(c, &req); err != nil {
		return &relay.InputError{Message: relay.MsgInvalidTranslation}
	}

	resp, err := s.relay.Translate(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *Server) handleSpeech(c *fiber.Ctx) error {
	var req relay.SpeechRequest
	if err := decode(c, &req); err != nil {
		return &relay.InputError{Message: relay.MsgInvalidSpeech}
	}

	resp, err := s.relay.Synthesize(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// handleHealth is a liveness check. With ?deep=1 it also asks the
// translation provider whether it is reachable and answers 503 if not.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	body := fiber.Map{
		"status":      "ok",
		"translator":  s.relay.TranslatorName(),
		"synthesizer": s.relay.SynthesizerName(),
	}
	if !c.QueryBool("deep") {
		return c.JSON(body)
	}

	if err := s.relay.CheckTranslator(c.UserContext()); err != nil {
		s.logger.Warn("translator unavailable", "translator", s.relay.TranslatorName(), "error", err)
		body["status"] = "degraded"
		body["translator_available"] = false
		body["translator_error"] = err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(body)
	}
	body["translator_available"] = true
	return c.JSON(body)
}

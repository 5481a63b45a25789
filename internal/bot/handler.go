// Package bot implements the conversation handler: it classifies inbound
// Telegram messages, drives lookups, formats replies, and manages the
// transient map artifact's lifecycle (create -> attach -> delete).
package bot

import (
	"context"
	"errors"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/evyataryagoni/ipmapbot/internal/geoip"
	"github.com/evyataryagoni/ipmapbot/internal/logger"
	"github.com/evyataryagoni/ipmapbot/internal/metrics"
	"github.com/evyataryagoni/ipmapbot/internal/service"
)

// Sender is the slice of the Telegram API the handler needs
// *tgbotapi.BotAPI satisfies it; tests plug in a recording fake
type Sender interface {
	// Send delivers messages and documents
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	// Request delivers everything without a Message result (chat actions)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// SelfIPResolver discovers the caller's own public IP
// Satisfied by *selfip.Resolver; tests plug in a fake
type SelfIPResolver interface {
	Resolve(ctx context.Context) (string, error)
}

// Handler processes inbound updates. It is stateless across messages:
// every update touches only its own locals and one uniquely named
// transient file, so concurrent updates need no locking.
type Handler struct {
	api     Sender
	lookup  *service.LookupService
	selfIP  SelfIPResolver
	metrics *metrics.Metrics // optional, can be nil
	logger  *logger.Logger
}

// NewHandler creates the conversation handler
// All collaborators are injected so tests can substitute doubles
func NewHandler(api Sender, lookup *service.LookupService, selfIP SelfIPResolver, m *metrics.Metrics, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Handler{
		api:     api,
		lookup:  lookup,
		selfIP:  selfIP,
		metrics: m,
		logger:  log.WithComponent("Handler"),
	}
}

// HandleUpdate dispatches one inbound update
// Errors from outbound calls are caught and logged here; nothing
// propagates back to the polling loop
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	intent, ip := Classify(msg)
	h.countMessage(intent)

	log := h.logger.WithChatID(msg.Chat.ID)
	log.Debug().Str("intent", intent.String()).Msg("Message classified")

	switch intent {
	case IntentStart:
		h.handleStart(msg.Chat.ID)
	case IntentHelp:
		h.handleHelp(msg.Chat.ID)
	case IntentMyIP:
		h.handleMyIP(ctx, msg.Chat.ID)
	case IntentLookup:
		h.handleLookup(ctx, msg.Chat.ID, ip)
	case IntentIgnore:
		// Silence is the contract for unrecognized messages
	}
}

// handleStart sends the greeting with the two-button reply keyboard
func (h *Handler) handleStart(chatID int64) {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("My IP"),
			tgbotapi.NewKeyboardButton("Help"),
		),
	)
	keyboard.ResizeKeyboard = true
	keyboard.InputFieldPlaceholder = "Choose an action..."

	reply := h.newMessage(chatID, greetingText)
	reply.ReplyMarkup = keyboard
	h.send(chatID, reply)
}

// handleHelp sends usage instructions and removes any active keyboard
func (h *Handler) handleHelp(chatID int64) {
	reply := h.newMessage(chatID, helpText)
	reply.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	h.send(chatID, reply)
}

// handleMyIP resolves the caller's public IP, then continues as a normal
// lookup. On resolver failure the user is asked to enter an IP manually;
// the geo client is never called.
func (h *Handler) handleMyIP(ctx context.Context, chatID int64) {
	ip, err := h.selfIP.Resolve(ctx)
	if err != nil {
		h.send(chatID, h.newMessage(chatID, manualEntryText))
		return
	}
	h.handleLookup(ctx, chatID, ip)
}

// handleLookup runs the full reply sequence for one IP:
// typing indicator -> lookup -> formatted text -> optional map attachment
// -> unconditional artifact cleanup
func (h *Handler) handleLookup(ctx context.Context, chatID int64, ip string) {
	log := h.logger.WithChatID(chatID).WithIP(ip)

	h.sendTyping(chatID)

	result, err := h.lookup.Lookup(ctx, ip)
	if err != nil {
		h.send(chatID, h.newMessage(chatID, formatError(userMessage(err))))
		return
	}

	text := formatRecord(result.Record)

	if result.MapFile == "" {
		// Partial success: record without a map gets an inline warning
		h.send(chatID, h.newMessage(chatID, text+noMapWarning))
		return
	}

	// The artifact must not outlive this request, whether or not the
	// sends below succeed
	defer h.removeArtifact(log, result.MapFile)

	h.send(chatID, h.newMessage(chatID, text))

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(result.MapFile))
	doc.Caption = mapCaption
	if _, err := h.api.Send(doc); err != nil {
		log.Error().Err(err).Msg("Failed to send map document")
		h.countSendError("document")
	}
}

// newMessage builds an HTML-mode text message
func (h *Handler) newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

// send delivers a message, logging delivery failures
func (h *Handler) send(chatID int64, c tgbotapi.Chattable) {
	if _, err := h.api.Send(c); err != nil {
		h.logger.WithChatID(chatID).Error().Err(err).Msg("Failed to send message")
		h.countSendError("message")
	}
}

// sendTyping signals the "typing" presence indicator
// Best effort: a failed chat action never blocks the reply
func (h *Handler) sendTyping(chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := h.api.Request(action); err != nil {
		h.logger.WithChatID(chatID).Warn().Err(err).Msg("Failed to send typing action")
		h.countSendError("chat_action")
	}
}

// removeArtifact deletes the transient map file
func (h *Handler) removeArtifact(log *logger.Logger, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Str("path", path).Msg("Failed to remove map artifact")
		return
	}
	log.Debug().Str("path", path).Msg("Map artifact removed")
}

// userMessage extracts the user-facing text from a lookup failure
func userMessage(err error) string {
	var le *geoip.LookupError
	if errors.As(err, &le) {
		return le.Message
	}
	return err.Error()
}

// countMessage increments the per-intent message counter
func (h *Handler) countMessage(intent Intent) {
	if h.metrics != nil {
		h.metrics.MessagesTotal.WithLabelValues(intent.String()).Inc()
	}
}

// countSendError increments the send-error counter
func (h *Handler) countSendError(kind string) {
	if h.metrics != nil {
		h.metrics.TelegramSendErrors.WithLabelValues(kind).Inc()
	}
}

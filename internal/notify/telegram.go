package notify

import (
	"fmt"
	"strings"

	"seatbooking/internal/config"
	"seatbooking/internal/events"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Sender is the part of the bot API used for alerts.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier alerts admin chats about filed reports.
type TelegramNotifier struct {
	bot     Sender
	chatIDs []int64
	logger  *zerolog.Logger
}

func NewTelegramNotifier(cfg config.TelegramConfig, logger *zerolog.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	bot.Debug = cfg.Debug
	logger.Info().Str("bot", bot.Self.UserName).Int("admins", len(cfg.AdminChatIDs)).Msg("Telegram alerts enabled")
	return NewTelegramNotifierWithSender(bot, cfg.AdminChatIDs, logger), nil
}

func NewTelegramNotifierWithSender(bot Sender, chatIDs []int64, logger *zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{bot: bot, chatIDs: chatIDs, logger: logger}
}

// Subscribe hooks the notifier onto the bus.
func (n *TelegramNotifier) Subscribe(bus *events.EventBus) {
	bus.Subscribe(events.EventReportFiled, n.HandleReportFiled)
}

func (n *TelegramNotifier) HandleReportFiled(ev *events.Event) error {
	var p events.ReportEventPayload
	if err := ev.Decode(&p); err != nil {
		return fmt.Errorf("decode report event: %w", err)
	}

	text := formatReport(&p)
	var failed int
	for _, chatID := range n.chatIDs {
		msg := tgbotapi.NewMessage(chatID, text)
		if _, err := n.bot.Send(msg); err != nil {
			failed++
			n.logger.Error().Err(err).Int64("chat_id", chatID).Int64("report_id", p.ReportID).Msg("Failed to send admin alert")
		}
	}
	if failed > 0 {
		return fmt.Errorf("admin alert failed for %d of %d chats", failed, len(n.chatIDs))
	}
	return nil
}

func formatReport(p *events.ReportEventPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New report #%d\n", p.ReportID)
	if p.SeatName != "" {
		fmt.Fprintf(&b, "Seat: %s\n", p.SeatName)
	}
	fmt.Fprintf(&b, "When: %s %s\n", p.ReportedDate, p.ReportedTime)
	if p.ReportedUserID != nil {
		name := p.ReportedUserName
		if name == "" {
			name = fmt.Sprintf("user %d", *p.ReportedUserID)
		}
		fmt.Fprintf(&b, "Occupant: %s\n", name)
	} else {
		b.WriteString("Occupant: none found\n")
	}
	fmt.Fprintf(&b, "Reason: %s", p.Reason)
	return b.String()
}

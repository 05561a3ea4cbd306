// Package notify delivers rendered shopping lists to external channels.
package notify

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mealmind/internal/errs"
	"mealmind/internal/shopping"
)

// Notifier sends an already-generated shopping list to a destination chat.
type Notifier interface {
	Send(list *shopping.ShoppingList, chatID int64) error
}

var categoryEmojis = map[string]string{
	"produce": "🥬",
	"dairy":   "🧀",
	"meat":    "🥩",
	"pantry":  "🥫",
	"spices":  "🧂",
	"frozen":  "🧊",
	"other":   "📦",
}

// TelegramNotifier delivers shopping lists through the Telegram Bot API.
type TelegramNotifier struct {
	api *tgbotapi.BotAPI
}

// NewTelegramNotifier initializes the Telegram API client.
func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	return &TelegramNotifier{api: api}, nil
}

// Send renders the list as a Markdown message and delivers it.
func (n *TelegramNotifier) Send(list *shopping.ShoppingList, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, FormatListMarkdown(list))
	msg.ParseMode = "Markdown"
	if _, err := n.api.Send(msg); err != nil {
		return errs.TransientIO(err, "failed to send shopping list %s to chat %d", list.ID, chatID)
	}
	return nil
}

// FormatListMarkdown renders a shopping list as a Telegram Markdown message:
// category sections in display order, checked markers per item, and a
// progress footer.
func FormatListMarkdown(list *shopping.ShoppingList) string {
	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n")
	fmt.Fprintf(&sb, "📅 Week of %s\n\n", list.WeekStartDate)

	for _, group := range shopping.Grouped(list.Items) {
		emoji, ok := categoryEmojis[group.Category]
		if !ok {
			emoji = "📦"
		}
		fmt.Fprintf(&sb, "%s *%s*\n", emoji, capitalize(group.Category))
		for _, item := range group.Items {
			marker := "⬜"
			if item.Checked {
				marker = "✅"
			}
			line := fmt.Sprintf("  %s %s %s", marker, formatAmount(item), item.Name)
			sb.WriteString(strings.Join(strings.Fields(line), " "))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	checked, total, _ := list.Progress()
	fmt.Fprintf(&sb, "📊 %d/%d items checked", checked, total)
	return sb.String()
}

// formatAmount renders "4 clove" style quantities; zero amounts render
// unit-less ("salt", not "0 g salt").
func formatAmount(item shopping.ShoppingItem) string {
	if item.Amount == 0 {
		return ""
	}
	amount := strconv.FormatFloat(item.Amount, 'f', -1, 64)
	if item.Unit == "" {
		return amount
	}
	return amount + " " + item.Unit
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

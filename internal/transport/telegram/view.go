package telegram

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sandevgo/brainchat/internal/core"
	"github.com/sandevgo/brainchat/internal/service/session"
	"github.com/sandevgo/brainchat/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const feedbackUnique = "feedback"

// imageFetcher downloads a server-side image. The brain usually listens
// on a private address Telegram cannot reach, so images are uploaded.
type imageFetcher func(ctx context.Context, url string) (io.ReadCloser, error)

var _ core.View = (*chatView)(nil)

// chatView renders one chat session into a Telegram chat.
type chatView struct {
	ctx    context.Context
	chat   tele.Recipient
	sender *sender
	fetch  imageFetcher

	mu   sync.Mutex
	sent map[string]*tele.Message
}

func newChatView(ctx context.Context, chat tele.Recipient, s *sender, fetch imageFetcher) *chatView {
	return &chatView{
		ctx:    ctx,
		chat:   chat,
		sender: s,
		fetch:  fetch,
		sent:   make(map[string]*tele.Message),
	}
}

// AddUserMessage is a no-op: Telegram already shows what the user typed.
func (v *chatView) AddUserMessage(string) {}

func (v *chatView) AddAssistantMessage(id, text string) {
	msg, err := v.sender.sendMarkdown(v.ctx, v.chat, text, feedbackMarkup(id, 0))
	if err != nil || msg == nil {
		return
	}

	v.mu.Lock()
	v.sent[id] = msg
	v.mu.Unlock()
}

// AddSystemMessage skips blank text, which the Bot API rejects.
func (v *chatView) AddSystemMessage(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	v.sender.sendText(v.ctx, v.chat, text)
}

func (v *chatView) MarkFeedback(id string, positive bool) {
	v.mu.Lock()
	msg, ok := v.sent[id]
	v.mu.Unlock()
	if !ok {
		return
	}

	rating := -1
	if positive {
		rating = 1
	}
	if _, err := v.sender.api.EditReplyMarkup(msg, feedbackMarkup(id, rating)); err != nil {
		log.FromCtx(v.ctx).Warn().Err(err).Str("message_id", id).Msg("failed to update feedback buttons")
	}
}

func (v *chatView) ShowMemories(items []core.RenderedMemory) {
	if _, err := v.sender.sendMarkdown(v.ctx, v.chat, formatMemories(items), nil); err != nil {
		log.FromCtx(v.ctx).Error().Err(err).Msg("failed to send memories")
	}
}

// HideMemories is a no-op: memories are plain messages in Telegram.
func (v *chatView) HideMemories() {}

func (v *chatView) ShowVisualization(url string) {
	logger := log.FromCtx(v.ctx)

	body, err := v.fetch(v.ctx, url)
	if err != nil {
		logger.Warn().Err(err).Str("url", url).Msg("failed to download visualization")
		v.sender.sendText(v.ctx, v.chat, "Memory visualization: "+url)
		return
	}
	defer body.Close()

	photo := &tele.Photo{File: tele.FromReader(body), Caption: "Memory network"}
	if _, err := v.sender.api.Send(v.chat, photo); err != nil {
		logger.Error().Err(err).Msg("failed to send visualization")
		v.sender.sendText(v.ctx, v.chat, "Memory visualization: "+url)
	}
}

// HideVisualization is a no-op: a sent photo stays in the chat.
func (v *chatView) HideVisualization() {}

// UpdateStats is a no-op: stats are shown on demand with /stats.
func (v *chatView) UpdateStats(core.Stats) {}

func feedbackMarkup(id string, rating int) *tele.ReplyMarkup {
	good, bad := "👍", "👎"
	switch {
	case rating > 0:
		good = "✅ 👍"
	case rating < 0:
		bad = "✅ 👎"
	}

	m := &tele.ReplyMarkup{}
	m.Inline(m.Row(
		m.Data(good, feedbackUnique, id, "1"),
		m.Data(bad, feedbackUnique, id, "0"),
	))
	return m
}

// parseFeedback decodes the "<id>|<1|0>" payload of a feedback button.
func parseFeedback(data string) (string, bool, error) {
	parts := strings.Split(data, "|")
	if len(parts) != 2 || parts[0] == "" {
		return "", false, fmt.Errorf("malformed feedback payload %q", data)
	}
	switch parts[1] {
	case "1":
		return parts[0], true, nil
	case "0":
		return parts[0], false, nil
	default:
		return "", false, fmt.Errorf("malformed feedback payload %q", data)
	}
}

func formatMemories(items []core.RenderedMemory) string {
	if len(items) == 0 {
		return session.MsgNoMemories
	}

	var sb strings.Builder
	sb.WriteString("🧠 **Memories**\n\n")
	for _, item := range items {
		if item.IsJSON {
			sb.WriteString("```json\n" + item.Content + "\n```\n")
		} else {
			sb.WriteString("› " + item.Content + "\n")
		}
		sb.WriteString(fmt.Sprintf("_importance %s · %s_\n\n", item.Importance, item.CreatedAt))
	}
	return sb.String()
}

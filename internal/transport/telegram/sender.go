package telegram

import (
	"context"
	"html"
	"strings"

	"github.com/sandevgo/brainchat/pkg/conv"
	"github.com/sandevgo/brainchat/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

// messenger is the part of the bot API the chat views use.
type messenger interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	EditReplyMarkup(msg tele.Editable, markup *tele.ReplyMarkup) (*tele.Message, error)
}

type sender struct {
	api messenger
}

func newSender(api messenger) *sender {
	return &sender{api: api}
}

// sendMarkdown converts Markdown to Telegram HTML and sends it in chunks if
// needed. markup, when set, goes on the last chunk, which is returned.
func (s *sender) sendMarkdown(ctx context.Context, to tele.Recipient, md string, markup *tele.ReplyMarkup) (*tele.Message, error) {
	logger := log.FromCtx(ctx)
	out := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))
	if out == "" {
		out = html.EscapeString(md)
	}

	chunks := splitHTML(out, maxTelegramMsgLen)
	var last *tele.Message
	for i, chunk := range chunks {
		opts := []interface{}{tele.ModeHTML, tele.NoPreview}
		if markup != nil && i == len(chunks)-1 {
			opts = append(opts, markup)
		}

		msg, err := s.api.Send(to, chunk, opts...)
		if err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return nil, err
		}
		last = msg
	}
	return last, nil
}

// sendText sends text as is, without parse mode.
func (s *sender) sendText(ctx context.Context, to tele.Recipient, text string) {
	for i, chunk := range splitHTML(text, maxTelegramMsgLen) {
		if _, err := s.api.Send(to, chunk, tele.NoPreview); err != nil {
			log.FromCtx(ctx).Error().Err(err).Int("chunk", i).Msg("failed to send telegram message")
			return
		}
	}
}

// splitHTML splits text into chunks respecting Telegram's limit.
// It tries to split at newlines to preserve formatting.
func splitHTML(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		cut := maxLen
		// Try to find a good break point (newline) in the second half of the chunk
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}

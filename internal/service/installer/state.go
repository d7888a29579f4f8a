package installer

import "github.com/sandevgo/brainchat/internal/config"

const (
	ChannelTerminal = "Terminal"
	ChannelTelegram = "Telegram"
)

type InstallState struct {
	Channel     string
	RuntimePath string
	Env         config.EnvFile
}

func NewInstallState(runtimePath string) *InstallState {
	return &InstallState{
		Channel:     ChannelTerminal,
		RuntimePath: runtimePath,
	}
}

func (s *InstallState) TelegramSelected() bool {
	return s.Channel == ChannelTelegram
}

package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/hackbot/hackbot/pkg/config"
)

// setSessionLogger sends the discordgo logs to logger.
func setSessionLogger(s *discordgo.Session, logger *log.Logger) {
	s.LogLevel = discordgo.LogWarning
	if config.IsVerbose() {
		s.LogLevel = discordgo.LogDebug
	}

	discordgo.Logger = func(level, _ int, format string, a ...interface{}) {
		msg := fmt.Sprintf(format, a...)
		switch level {
		case discordgo.LogError:
			logger.Error(msg)
		case discordgo.LogWarning:
			logger.Warn(msg)
		case discordgo.LogInformational:
			logger.Info(msg)
		default:
			logger.Debug(msg)
		}
	}
}

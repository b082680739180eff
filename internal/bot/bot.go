// Package bot relays price comparison commands from Discord.
package bot

import (
	"context"
	"time"

	"github.com/bradykim7/pricecompare/internal/bot/commands"
	"github.com/bradykim7/pricecompare/pkg/config"
	"github.com/bwmarrin/discordgo"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// commandTimeout bounds one command, including every source fetch
const commandTimeout = 2 * time.Minute

// Bot represents the Discord bot
type Bot struct {
	session  *discordgo.Session
	config   *config.Config
	log      *zap.Logger
	commands *commands.Registry
	ctx      context.Context
}

// New creates a new Bot relaying commands to svc
func New(cfg *config.Config, svc commands.PriceService, log *zap.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, eris.Wrap(err, "failed to create Discord session")
	}

	bot := &Bot{
		session:  session,
		config:   cfg,
		log:      log.Named("bot"),
		commands: commands.NewRegistry(cfg.CommandPrefix, log),
		ctx:      context.Background(),
	}

	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onMessageCreate)

	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	bot.registerCommands(svc)

	return bot, nil
}

// Start opens the gateway connection and blocks until ctx is done
func (b *Bot) Start(ctx context.Context) error {
	b.ctx = ctx
	if err := b.session.Open(); err != nil {
		return eris.Wrap(err, "failed to open Discord session")
	}

	b.log.Info("Bot is running. Press CTRL-C to exit.")

	<-ctx.Done()

	return b.Close()
}

// Close closes the Discord session
func (b *Bot) Close() error {
	if err := b.session.Close(); err != nil {
		return eris.Wrap(err, "failed to close Discord session")
	}
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("Bot logged in",
		zap.String("username", r.User.Username),
		zap.String("discriminator", r.User.Discriminator))

	if err := s.UpdateGameStatus(0, b.config.CommandPrefix+"compare <product>"); err != nil {
		b.log.Error("Failed to set status", zap.Error(err))
	}
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore the bot's own messages
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	b.log.Debug("Message received",
		zap.String("guild_id", m.GuildID),
		zap.String("channel_id", m.ChannelID),
		zap.String("user_id", m.Author.ID),
		zap.String("username", m.Author.Username))

	if _, _, ok := b.commands.Parse(m.Content); !ok {
		return
	}
	if err := s.ChannelTyping(m.ChannelID); err != nil {
		b.log.Debug("Failed to send typing indicator", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(b.ctx, commandTimeout)
	defer cancel()

	b.commands.Handle(ctx, m.ChannelID, m.Content, func(channelID, content string) error {
		_, err := s.ChannelMessageSend(channelID, content)
		return err
	})
}

func (b *Bot) registerCommands(svc commands.PriceService) {
	prefix := b.config.CommandPrefix

	b.commands.Register(commands.NewPingCommand(b.session.HeartbeatLatency))
	b.commands.Register(commands.NewCompareCommand(svc, prefix))
	b.commands.Register(commands.NewRecommendCommand(svc, prefix))
	b.commands.Register(commands.NewWebsitesCommand(svc))
	b.commands.Register(commands.NewStatsCommand(svc))
	b.commands.Register(commands.NewHistoryCommand(svc, prefix))
	b.commands.Register(commands.NewHelpCommand(b.commands))
}

package commands

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Command represents a bot command
type Command interface {
	Name() string
	Help() string
	Execute(ctx context.Context, args []string) string
}

// SendFunc delivers one message to a channel
type SendFunc func(channelID, content string) error

// Registry manages all bot commands
type Registry struct {
	prefix   string
	commands map[string]Command
	log      *zap.Logger
}

// NewRegistry creates a new command registry
func NewRegistry(prefix string, log *zap.Logger) *Registry {
	return &Registry{
		prefix:   prefix,
		commands: make(map[string]Command),
		log:      log.Named("commands"),
	}
}

// Register registers a command with the registry
func (r *Registry) Register(cmd Command) {
	r.commands[strings.ToLower(cmd.Name())] = cmd
	r.log.Debug("Registered command", zap.String("command", cmd.Name()))
}

// Parse splits a message into a registered command and its arguments
func (r *Registry) Parse(content string) (Command, []string, bool) {
	// Check if the message starts with the command prefix
	if !strings.HasPrefix(content, r.prefix) {
		return nil, nil, false
	}

	parts := strings.Fields(strings.TrimPrefix(content, r.prefix))
	if len(parts) == 0 {
		return nil, nil, false
	}

	cmd, ok := r.commands[strings.ToLower(parts[0])]
	if !ok {
		return nil, nil, false
	}
	return cmd, parts[1:], true
}

// Handle executes the command in content, if any, and sends the reply split
// into Discord-sized messages. It reports whether a command matched.
func (r *Registry) Handle(ctx context.Context, channelID, content string, send SendFunc) bool {
	cmd, args, ok := r.Parse(content)
	if !ok {
		return false
	}

	r.log.Info("Executing command", zap.String("command", cmd.Name()), zap.Strings("args", args))
	reply := cmd.Execute(ctx, args)

	for _, chunk := range SplitMessage(reply, MaxMessageLength) {
		if err := send(channelID, chunk); err != nil {
			r.log.Error("Failed to send reply",
				zap.String("command", cmd.Name()),
				zap.String("channel_id", channelID),
				zap.Error(err))
			return true
		}
	}
	return true
}

// GetCommands returns all registered commands sorted by name
func (r *Registry) GetCommands() []Command {
	out := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Prefix returns the command prefix
func (r *Registry) Prefix() string {
	return r.prefix
}

package commands

import (
	"context"
	"time"
)

// PingCommand replies with the gateway heartbeat latency
type PingCommand struct {
	latency func() time.Duration
}

// NewPingCommand creates a ping command. latency may be nil.
func NewPingCommand(latency func() time.Duration) *PingCommand {
	return &PingCommand{latency: latency}
}

func (c *PingCommand) Name() string { return "ping" }

func (c *PingCommand) Help() string { return "Check that the bot is alive" }

func (c *PingCommand) Execute(context.Context, []string) string {
	if c.latency == nil {
		return "Pong!"
	}
	return "Pong! Latency: " + c.latency().Round(time.Millisecond).String()
}

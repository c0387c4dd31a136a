package announce

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/logger"
	"github.com/osse101/TheDigger_Go/internal/sse"
)

// Poster is the slice of *discordgo.Session the notifier needs.
type Poster interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ Poster = (*discordgo.Session)(nil)

type embedStyle struct {
	title string
	desc  string
	color int
}

// announced is the order EventTypes reports.
var announced = []domain.ActivityType{
	domain.ActivityAchievement,
	domain.ActivityBiome,
	domain.ActivityTool,
	domain.ActivityDepth,
}

var styles = map[domain.ActivityType]embedStyle{
	domain.ActivityAchievement: {titleAchievement, descAchievement, colorAchievement},
	domain.ActivityBiome:       {titleBiome, descBiome, colorBiome},
	domain.ActivityTool:        {titleTool, descTool, colorTool},
	domain.ActivityDepth:       {titleDepth, descDepth, colorDepth},
}

// Notifier posts selected activity to one Discord channel.
type Notifier struct {
	poster    Poster
	channelID string
	now       func() time.Time
}

// NewNotifier creates a notifier. An empty channelID disables posting.
func NewNotifier(poster Poster, channelID string) *Notifier {
	return &Notifier{poster: poster, channelID: channelID, now: time.Now}
}

// EventTypes lists the stream event types the notifier announces.
func (n *Notifier) EventTypes() []string {
	types := make([]string, 0, len(announced))
	for _, t := range announced {
		types = append(types, sse.ActivityEventType(t))
	}
	return types
}

// RegisterHandlers subscribes the notifier to stream.
func (n *Notifier) RegisterHandlers(stream *Stream) {
	for _, t := range n.EventTypes() {
		stream.OnEvent(t, n.Handle)
	}
}

// Handle posts one activity event. Undecodable payloads are logged and
// skipped so the stream keeps flowing.
func (n *Notifier) Handle(ctx context.Context, event sse.Event) error {
	if n.channelID == "" {
		return nil
	}
	log := logger.FromContext(ctx)

	var a domain.Activity
	if err := json.Unmarshal(event.Payload, &a); err != nil {
		log.Warn(LogMsgParseError, "error", err, "event_type", event.Type)
		return nil
	}
	embed, ok := n.buildEmbed(a)
	if !ok {
		return nil
	}

	if _, err := n.poster.ChannelMessageSendEmbed(n.channelID, embed); err != nil {
		log.Error(LogMsgNotificationFail, "error", err, "event_type", event.Type)
		return err
	}
	log.Info(LogMsgNotificationSent, "event_type", event.Type, "player", a.PlayerName)
	return nil
}

func (n *Notifier) buildEmbed(a domain.Activity) (*discordgo.MessageEmbed, bool) {
	style, ok := styles[a.ActivityType]
	if !ok {
		return nil, false
	}
	ts := a.Timestamp
	if ts.IsZero() {
		ts = n.now()
	}
	return &discordgo.MessageEmbed{
		Title:       style.title,
		Description: fmt.Sprintf(style.desc, a.PlayerName, a.Details),
		Color:       style.color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Player", Value: a.PlayerName, Inline: true},
			{Name: "Type", Value: string(a.ActivityType), Inline: true},
		},
		Timestamp: ts.UTC().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: footerText},
	}, true
}

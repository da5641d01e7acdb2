package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/Sk3pz/angler-bot-v2/internal/cast"
)

var errNoInteraction = errors.New("cast has no interaction to reply to")

// Notifier delivers cast messages over Discord. Casts are announced as the
// reply to the /cast interaction; challenge replies and reel-in clicks are
// routed back to it by the handlers.
type Notifier struct {
	api     discordAPI
	log     *zap.Logger
	cancels *waiters[struct{}]
	replies *waiters[string]
}

var _ cast.Notifier = (*Notifier)(nil)

func NewNotifier(api discordAPI, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{
		api:     api,
		log:     log,
		cancels: newWaiters[struct{}](),
		replies: newWaiters[string](),
	}
}

// announcement is the Handle.Ref of a cast announced by this notifier.
type announcement struct {
	interaction *discordgo.Interaction
	embed       *discordgo.MessageEmbed
	canceled    <-chan struct{}
	release     func()
}

func (n *Notifier) AnnounceCast(_ context.Context, a cast.Announcement) (cast.Handle, error) {
	i, ok := a.Recipient.Origin.(*discordgo.Interaction)
	if !ok || i == nil {
		return cast.Handle{}, errNoInteraction
	}

	// Clicks can land as soon as the message is visible, so listen first.
	ch, release := n.cancels.register(a.SessionID, a.Recipient.Player.User)

	embed := castEmbed(a)
	err := n.api.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: reelButton(a.SessionID, false),
		},
	})
	if err != nil {
		release()
		return cast.Handle{}, err
	}

	return cast.Handle{
		SessionID: a.SessionID,
		Ref: &announcement{
			interaction: i,
			embed:       embed,
			canceled:    ch,
			release:     release,
		},
	}, nil
}

func (n *Notifier) OfferCancel(ctx context.Context, h cast.Handle, timeout time.Duration) (bool, error) {
	a, ok := h.Ref.(*announcement)
	if !ok {
		return false, errNoInteraction
	}
	defer a.release()

	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-a.canceled:
		return true, nil
	case <-t.C:
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Cancel delivers a reel-in click for sessionID. It reports false when the
// session's cancel window is closed or belongs to someone else.
func (n *Notifier) Cancel(sessionID, user string) bool {
	return n.cancels.deliver(sessionID, user, struct{}{})
}

// CastOwner returns the user who may reel in sessionID.
func (n *Notifier) CastOwner(sessionID string) (string, bool) {
	return n.cancels.owner(sessionID)
}

func (n *Notifier) UpdateStatus(_ context.Context, h cast.Handle, s cast.Status) error {
	a, ok := h.Ref.(*announcement)
	if !ok {
		return errNoInteraction
	}

	embed := *a.embed
	embed.Footer = &discordgo.MessageEmbedFooter{Text: statusFooter(s)}
	components := []discordgo.MessageComponent{}
	_, err := n.api.InteractionResponseEdit(a.interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{&embed},
		Components: &components,
	})
	return err
}

func (n *Notifier) SendResolution(_ context.Context, r cast.Recipient, o cast.Outcome) error {
	if o.Kind == cast.OutcomeCanceled {
		return nil
	}
	_, err := n.api.ChannelMessageSendComplex(r.Channel, &discordgo.MessageSend{
		Content: mention(r.Player),
		Embeds:  []*discordgo.MessageEmbed{outcomeEmbed(r, o)},
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Users: []string{r.Player.User},
		},
	})
	return err
}

func replyKey(channel, user string) string { return channel + ":" + user }

func (n *Notifier) PromptChallenge(ctx context.Context, r cast.Recipient, c cast.Challenge) (string, bool, error) {
	ch, release := n.replies.register(replyKey(r.Channel, r.Player.User), r.Player.User)
	defer release()

	_, err := n.api.ChannelMessageSendComplex(r.Channel, &discordgo.MessageSend{
		Content: challengeMessage(r, c),
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Users: []string{r.Player.User},
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("sending challenge: %w", err)
	}

	n.log.Debug("challenge prompted", zap.String("player", r.Player.String()), zap.Duration("limit", c.TimeLimit))

	select {
	case reply := <-ch:
		return reply, true, nil
	case <-ctx.Done():
		return "", false, nil
	}
}

// Reply routes a chat message to a pending challenge. It reports whether
// the message answered one.
func (n *Notifier) Reply(channel, user, content string) bool {
	return n.replies.deliver(replyKey(channel, user), user, content)
}

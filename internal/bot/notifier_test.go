package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Sk3pz/angler-bot-v2/internal/cast"
	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/player"
)

func recipient() cast.Recipient {
	return cast.Recipient{
		Player:  player.NewID("guild", "u1"),
		Channel: "chan",
		Display: "Angler",
		Origin:  &discordgo.Interaction{ID: "i1"},
	}
}

func announce(t *testing.T, n *Notifier) cast.Handle {
	t.Helper()
	h, err := n.AnnounceCast(context.Background(), cast.Announcement{
		SessionID: "s1",
		Recipient: recipient(),
		Rod:       "Twig Rod",
		Depth:     "??? ft",
		Flavor:    "Plop.",
		Delay:     time.Minute,
	})
	require.NoError(t, err)
	return h
}

func TestNotifier_AnnounceNeedsInteraction(t *testing.T) {
	n := NewNotifier(&fakeAPI{}, zaptest.NewLogger(t))
	r := recipient()
	r.Origin = nil

	_, err := n.AnnounceCast(context.Background(), cast.Announcement{SessionID: "s1", Recipient: r})
	assert.ErrorIs(t, err, errNoInteraction)
}

func TestNotifier_AnnounceShowsReelButton(t *testing.T) {
	api := &fakeAPI{}
	n := NewNotifier(api, zaptest.NewLogger(t))
	announce(t, n)

	resp := api.lastResponse()
	require.NotNil(t, resp)
	require.Len(t, resp.Data.Embeds, 1)
	assert.Contains(t, resp.Data.Embeds[0].Title, "Angler")

	row := resp.Data.Components[0].(discordgo.ActionsRow)
	btn := row.Components[0].(discordgo.Button)
	assert.Equal(t, "reel:s1", btn.CustomID)

	owner, ok := n.CastOwner("s1")
	require.True(t, ok)
	assert.Equal(t, "u1", owner)
}

func TestNotifier_AnnounceFailureReleasesButton(t *testing.T) {
	api := &fakeAPI{respondErr: errors.New("discord down")}
	n := NewNotifier(api, zaptest.NewLogger(t))

	_, err := n.AnnounceCast(context.Background(), cast.Announcement{SessionID: "s1", Recipient: recipient()})
	require.Error(t, err)
	_, ok := n.CastOwner("s1")
	assert.False(t, ok)
}

func TestNotifier_OfferCancel(t *testing.T) {
	n := NewNotifier(&fakeAPI{}, zaptest.NewLogger(t))
	h := announce(t, n)

	assert.False(t, n.Cancel("s1", "someone-else"))
	require.True(t, n.Cancel("s1", "u1"))

	canceled, err := n.OfferCancel(context.Background(), h, time.Minute)
	require.NoError(t, err)
	assert.True(t, canceled)

	_, ok := n.CastOwner("s1")
	assert.False(t, ok)
}

func TestNotifier_OfferCancelTimesOut(t *testing.T) {
	n := NewNotifier(&fakeAPI{}, zaptest.NewLogger(t))
	h := announce(t, n)

	canceled, err := n.OfferCancel(context.Background(), h, 10*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, canceled)
	assert.False(t, n.Cancel("s1", "u1"))
}

func TestNotifier_OfferCancelStopsWithContext(t *testing.T) {
	n := NewNotifier(&fakeAPI{}, zaptest.NewLogger(t))
	h := announce(t, n)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	canceled, err := n.OfferCancel(ctx, h, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, canceled)
}

func TestNotifier_UpdateStatusRemovesButton(t *testing.T) {
	api := &fakeAPI{}
	n := NewNotifier(api, zaptest.NewLogger(t))
	h := announce(t, n)

	require.NoError(t, n.UpdateStatus(context.Background(), h, cast.StatusCanceled))

	edit := api.lastEdit()
	require.NotNil(t, edit)
	require.NotNil(t, edit.Components)
	assert.Empty(t, *edit.Components)
	assert.Equal(t, "You reeled in your line.", (*edit.Embeds)[0].Footer.Text)
}

func TestNotifier_SendResolution(t *testing.T) {
	api := &fakeAPI{}
	n := NewNotifier(api, zaptest.NewLogger(t))
	r := recipient()

	require.NoError(t, n.SendResolution(context.Background(), r, cast.Outcome{Kind: cast.OutcomeCanceled}))
	assert.Zero(t, api.sendCount())

	f := &fish.Fish{
		Species: fish.SpeciesDef{Name: "Carp", Rarity: fish.RarityCommon, Size: fish.Attribute{Min: 10, Max: 30, Average: 20}},
		Size:    20,
		Weight:  15,
		Value:   fish.NewMoney(12),
	}
	require.NoError(t, n.SendResolution(context.Background(), r, cast.Outcome{Kind: cast.OutcomeCaught, Fish: f}))
	require.Equal(t, 1, api.sendCount())

	s := api.sends[0]
	assert.Equal(t, "chan", s.channel)
	assert.Equal(t, "<@u1>", s.msg.Content)
	assert.Equal(t, "Angler caught a Carp!", s.msg.Embeds[0].Title)
}

func TestNotifier_PromptChallenge(t *testing.T) {
	api := &fakeAPI{}
	n := NewNotifier(api, zaptest.NewLogger(t))
	r := recipient()

	type result struct {
		reply string
		ok    bool
		err   error
	}
	done := make(chan result, 1)
	go func() {
		reply, ok, err := n.PromptChallenge(context.Background(), r, cast.Challenge{Code: "AbC12", TimeLimit: 5 * time.Second})
		done <- result{reply, ok, err}
	}()

	require.Eventually(t, func() bool { return api.sendCount() == 1 }, time.Second, time.Millisecond)
	assert.Contains(t, api.sends[0].msg.Content, "A b C 1 2")

	assert.False(t, n.Reply("chan", "u2", "AbC12"))
	assert.False(t, n.Reply("other", "u1", "AbC12"))
	require.True(t, n.Reply("chan", "u1", "abc12"))

	res := <-done
	require.NoError(t, res.err)
	assert.True(t, res.ok)
	assert.Equal(t, "abc12", res.reply)
}

func TestNotifier_PromptChallengeNoReply(t *testing.T) {
	n := NewNotifier(&fakeAPI{}, zaptest.NewLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	reply, ok, err := n.PromptChallenge(ctx, recipient(), cast.Challenge{Code: "x"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, reply)

	assert.False(t, n.Reply("chan", "u1", "x"))
}

func TestNotifier_PromptChallengeSendFails(t *testing.T) {
	n := NewNotifier(&fakeAPI{sendErr: errors.New("missing access")}, zaptest.NewLogger(t))

	_, ok, err := n.PromptChallenge(context.Background(), recipient(), cast.Challenge{Code: "x"})
	require.Error(t, err)
	assert.False(t, ok)
}

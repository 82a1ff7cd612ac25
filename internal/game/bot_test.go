package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MayoCodes/Robbery/internal"
)

// newBotTurnParty hand-builds a playing party with the bot holding the turn
// so RunBotTurn can be exercised without racing the random target draw.
func newBotTurnParty(target string) (*internal.Party, *internal.Player, *internal.Player) {
	party := &internal.Party{
		Code:              "BOTTST",
		Phase:             internal.PhasePlaying,
		Target:            target,
		TimeLeft:          internal.DefaultTurnSeconds,
		MaxTime:           internal.DefaultTurnSeconds,
		Round:             1,
		AliveAtRoundStart: 2,
	}
	bot := &internal.Player{Id: "bot-1", Name: "MAVERICK", IsBot: true, Lives: internal.StartingLives, Party: party}
	human := &internal.Player{Id: "p1", Name: "Alice", Lives: internal.StartingLives, Party: party}
	party.Players = []*internal.Player{bot, human}
	party.HostId = human.Id
	return party, bot, human
}

func TestBotScoresWhenLexiconCovers(t *testing.T) {
	g, rb := newFrozenClockService(0)
	party, bot, _ := newBotTurnParty("ST")

	g.RunBotTurn(party)

	// First lexicon hit for ST is "dust".
	assert.Eventually(t, func() bool {
		return bot.Score == 4
	}, time.Second, 2*time.Millisecond)

	assert.Equal(t, internal.StartingLives, bot.Lives)
	assert.Contains(t, snap(party).UsedWords, "dust")
	assert.Contains(t, rb.types(), "chatMessage")

	// Turn passes to the human afterwards.
	waitForTurn(t, party, 1)
}

func TestBotFailsWhenForced(t *testing.T) {
	g, rb := newFrozenClockService(1)
	party, bot, _ := newBotTurnParty("ST")

	g.RunBotTurn(party)

	assert.Eventually(t, func() bool {
		return bot.Lives == internal.StartingLives-1
	}, time.Second, 2*time.Millisecond)

	assert.Equal(t, 0, bot.Score)
	assert.Empty(t, snap(party).UsedWords)
	assert.Contains(t, rb.types(), "playerEliminated")
	waitForTurn(t, party, 1)
}

func TestBotFailsOnUncoveredTarget(t *testing.T) {
	g, _ := newFrozenClockService(0)
	party, bot, _ := newBotTurnParty("XY")

	g.RunBotTurn(party)

	assert.Eventually(t, func() bool {
		return bot.Lives == internal.StartingLives-1
	}, time.Second, 2*time.Millisecond)
	assert.Equal(t, 0, bot.Score)
}

func TestBotSkipsUsedWords(t *testing.T) {
	g, _ := newFrozenClockService(0)
	party, bot, _ := newBotTurnParty("ST")
	party.UsedWords = append(party.UsedWords, "dust")

	g.RunBotTurn(party)

	// "dust" is the only ST word the lexicon holds, and it is taken.
	assert.Eventually(t, func() bool {
		return bot.Lives == internal.StartingLives-1
	}, time.Second, 2*time.Millisecond)
	assert.Equal(t, 0, bot.Score)
	assert.Equal(t, []string{"dust"}, snap(party).UsedWords)
}

func TestBotIgnoresStaleTurn(t *testing.T) {
	rb := &recordingBroadcaster{}
	cfg := DefaultConfig()
	cfg.BotThinkDelay = 50 * time.Millisecond
	cfg.BotFailureRate = 0
	g := NewService(NewRegistry(), rb, cfg)
	party, bot, _ := newBotTurnParty("ST")

	// The turn moves to the human before the bot finishes thinking.
	g.RunBotTurn(party)
	party.Mu.Lock()
	party.CurrentIndex = 1
	party.Mu.Unlock()

	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 0, bot.Score)
	assert.Equal(t, internal.StartingLives, bot.Lives)
	require.NotContains(t, rb.types(), "playerEliminated")
}

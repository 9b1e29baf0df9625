package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"

	"github.com/nicholasngai/dicky/internal/dictionary"
	"github.com/nicholasngai/dicky/internal/wordchain"
)

type mockLookup struct {
	mock.Mock
}

func (m *mockLookup) Define(ctx context.Context, word string) (*dictionary.Entry, error) {
	args := m.Called(ctx, word)
	e, _ := args.Get(0).(*dictionary.Entry)
	return e, args.Error(1)
}

func (m *mockLookup) Info(ctx context.Context, word string) (*dictionary.Entry, error) {
	args := m.Called(ctx, word)
	e, _ := args.Get(0).(*dictionary.Entry)
	return e, args.Error(1)
}

func (m *mockLookup) Synonyms(ctx context.Context, word string) ([]string, error) {
	args := m.Called(ctx, word)
	words, _ := args.Get(0).([]string)
	return words, args.Error(1)
}

func (m *mockLookup) Antonyms(ctx context.Context, word string) ([]string, error) {
	args := m.Called(ctx, word)
	words, _ := args.Get(0).([]string)
	return words, args.Error(1)
}

type mockGames struct {
	mock.Mock
}

func (m *mockGames) Open(channelID, userID, username string) (wordchain.Snapshot, error) {
	args := m.Called(channelID, userID, username)
	return args.Get(0).(wordchain.Snapshot), args.Error(1)
}

func (m *mockGames) Join(channelID, userID, username string) (wordchain.Snapshot, error) {
	args := m.Called(channelID, userID, username)
	return args.Get(0).(wordchain.Snapshot), args.Error(1)
}

func (m *mockGames) Leave(channelID, userID string) (wordchain.Snapshot, bool, error) {
	args := m.Called(channelID, userID)
	return args.Get(0).(wordchain.Snapshot), args.Bool(1), args.Error(2)
}

func (m *mockGames) Submit(ctx context.Context, channelID, userID, word string) (wordchain.Result, error) {
	args := m.Called(ctx, channelID, userID, word)
	return args.Get(0).(wordchain.Result), args.Error(1)
}

func (m *mockGames) Status(channelID string) (wordchain.Snapshot, error) {
	args := m.Called(channelID)
	return args.Get(0).(wordchain.Snapshot), args.Error(1)
}

func (m *mockGames) Stop(channelID string) (wordchain.Snapshot, error) {
	args := m.Called(channelID)
	return args.Get(0).(wordchain.Snapshot), args.Error(1)
}

func (m *mockGames) Settings() wordchain.Settings {
	return wordchain.DefaultSettings()
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, data)
	msg, _ := args.Get(0).(*discordgo.Message)
	return msg, args.Error(1)
}

type mockOverwriter struct {
	mock.Mock
}

func (m *mockOverwriter) ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	args := m.Called(appID, guildID, commands)
	registered, _ := args.Get(0).([]*discordgo.ApplicationCommand)
	return registered, args.Error(1)
}

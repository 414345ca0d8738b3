package services

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"converse-backend/internal/domain/entities"
	"converse-backend/internal/infra/logger"
	"converse-backend/internal/infra/provider"
	"converse-backend/internal/infra/repository"
)

type fakeCompletion struct {
	reply   string
	err     error
	lastReq provider.CompletionRequest
}

func (f *fakeCompletion) Complete(_ context.Context, req provider.CompletionRequest) (string, error) {
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeSpeech struct {
	audio []byte
	err   error
	calls int
}

func (f *fakeSpeech) Synthesize(_ context.Context, _ string, _ string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

func newTestChatService(completion *fakeCompletion, speech *fakeSpeech, settings entities.Settings) (*ChatService, *repository.ConversationStore) {
	conversations := repository.NewConversationStore()
	svc := NewChatService(
		logger.NewLogger("error", false),
		repository.NewSettingsStore(settings),
		conversations,
		completion,
		speech,
		"llama-3.1-8b-instant",
	)
	return svc, conversations
}

func TestHandleChatVoiceDisabled(t *testing.T) {
	settings := entities.DefaultSettings()
	settings.VoiceEnabled = false

	completion := &fakeCompletion{reply: "an answer"}
	speech := &fakeSpeech{audio: []byte("mp3")}
	svc, conversations := newTestChatService(completion, speech, settings)

	for i := 0; i < 3; i++ {
		resp, err := svc.HandleChat(context.Background(), "c1", "a question")
		require.NoError(t, err)
		assert.Equal(t, "an answer", resp.Response)
		assert.Nil(t, resp.Audio)
	}

	assert.Zero(t, speech.calls)
	for _, turn := range conversations.Snapshot("c1") {
		assert.Nil(t, turn.Audio)
	}
}

func TestHandleChatVoiceEnabled(t *testing.T) {
	completion := &fakeCompletion{reply: "an answer"}
	speech := &fakeSpeech{audio: []byte("mp3-bytes")}
	svc, conversations := newTestChatService(completion, speech, entities.DefaultSettings())

	resp, err := svc.HandleChat(context.Background(), "c1", "a question")
	require.NoError(t, err)
	require.NotNil(t, resp.Audio)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("mp3-bytes")), *resp.Audio)
	assert.Equal(t, 1, speech.calls)

	turns := conversations.Snapshot("c1")
	require.Len(t, turns, 2)
	assert.Equal(t, entities.RoleUser, turns[0].Role)
	assert.Nil(t, turns[0].Audio)
	assert.Equal(t, entities.RoleAssistant, turns[1].Role)
	require.NotNil(t, turns[1].Audio)
	assert.Equal(t, *resp.Audio, *turns[1].Audio)
}

func TestHandleChatCompletionFailureKeepsUserTurnOnly(t *testing.T) {
	completion := &fakeCompletion{err: &provider.UpstreamError{Stage: provider.StageCompletion, Err: errors.New("quota exceeded")}}
	speech := &fakeSpeech{audio: []byte("mp3")}
	svc, conversations := newTestChatService(completion, speech, entities.DefaultSettings())

	_, err := svc.HandleChat(context.Background(), "c1", "a question")
	require.Error(t, err)

	var upstream *provider.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, provider.StageCompletion, upstream.Stage)

	turns := conversations.Snapshot("c1")
	require.Len(t, turns, 1)
	assert.Equal(t, entities.RoleUser, turns[0].Role)
	assert.Zero(t, speech.calls)
}

func TestHandleChatSynthesisFailureIsPartialSuccess(t *testing.T) {
	completion := &fakeCompletion{reply: "an answer"}
	speech := &fakeSpeech{err: &provider.UpstreamError{Stage: provider.StageSynthesis, Err: errors.New("unreachable")}}
	svc, conversations := newTestChatService(completion, speech, entities.DefaultSettings())

	resp, err := svc.HandleChat(context.Background(), "c1", "a question")
	require.NoError(t, err)
	assert.Equal(t, "an answer", resp.Response)
	assert.Nil(t, resp.Audio)

	turns := conversations.Snapshot("c1")
	require.Len(t, turns, 2)
	assert.Equal(t, entities.RoleAssistant, turns[1].Role)
	assert.Nil(t, turns[1].Audio)
}

func TestHandleChatPassesSettingsThrough(t *testing.T) {
	settings := entities.DefaultSettings()
	settings.Temperature = 1.4
	settings.MaxTokens = 250
	settings.VoiceEnabled = false

	completion := &fakeCompletion{reply: "ok"}
	svc, _ := newTestChatService(completion, &fakeSpeech{}, settings)

	_, err := svc.HandleChat(context.Background(), "c1", "a question")
	require.NoError(t, err)

	assert.Equal(t, "llama-3.1-8b-instant", completion.lastReq.Model)
	assert.Equal(t, float32(1.4), completion.lastReq.Temperature)
	assert.Equal(t, 250, completion.lastReq.MaxTokens)

	// System instruction plus the user turn just appended.
	require.Len(t, completion.lastReq.Messages, 2)
	assert.Equal(t, entities.RoleSystem, completion.lastReq.Messages[0].Role)
	assert.Equal(t, "a question", completion.lastReq.Messages[1].Content)
}

func TestHandleChatSendsFullHistory(t *testing.T) {
	completion := &fakeCompletion{reply: "answer"}
	settings := entities.DefaultSettings()
	settings.VoiceEnabled = false
	svc, _ := newTestChatService(completion, &fakeSpeech{}, settings)

	_, err := svc.HandleChat(context.Background(), "c1", "first")
	require.NoError(t, err)
	_, err = svc.HandleChat(context.Background(), "c1", "second")
	require.NoError(t, err)

	// system + first user + first assistant + second user
	require.Len(t, completion.lastReq.Messages, 4)
	assert.Equal(t, "first", completion.lastReq.Messages[1].Content)
	assert.Equal(t, "answer", completion.lastReq.Messages[2].Content)
	assert.Equal(t, "second", completion.lastReq.Messages[3].Content)
}

package biz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/datanikah/internal/datanikah/store"
	"github.com/kart-io/datanikah/internal/model"
	"github.com/kart-io/datanikah/pkg/utils/errors"
)

func newTestChat(t *testing.T, ttl time.Duration) (*ChatService, store.RecordStore) {
	t.Helper()
	rs := store.NewMemoryFactory().Records()
	return NewChatService(NewDispatcher(rs, "Kota Gorontalo"), "Kota Gorontalo", ttl), rs
}

func TestChatService_StartSeedsWelcome(t *testing.T) {
	svc, _ := newTestChat(t, time.Minute)

	sess := svc.Start()
	require.Len(t, sess.Messages, 1)
	assert.Equal(t, model.RoleAssistant, sess.Messages[0].Role)
	assert.Equal(t, WelcomeText("Kota Gorontalo"), sess.Messages[0].Text)
	assert.NotEmpty(t, sess.ID)
}

func TestChatService_SendAppendsExchange(t *testing.T) {
	svc, rs := newTestChat(t, time.Minute)
	seedRecords(t, rs, newRecord("AN-1", "KUA A", "Ahmad", "Fatimah", "15-03-2024"))
	sess := svc.Start()

	resp, err := svc.Send(context.Background(), sess.ID, "  Cari nama Ahmad ")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, resp.SessionID)
	assert.Equal(t, model.RoleUser, resp.Question.Role)
	assert.Equal(t, "Cari nama Ahmad", resp.Question.Text)
	assert.Equal(t, model.RoleAssistant, resp.Answer.Role)
	assert.Len(t, resp.Answer.Records, 1)

	resp, err = svc.Send(context.Background(), sess.ID, "asdkjasd")
	require.NoError(t, err)
	assert.Equal(t, FallbackText, resp.Answer.Text)

	got, err := svc.Session(sess.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 5)
	roles := []string{model.RoleAssistant, model.RoleUser, model.RoleAssistant, model.RoleUser, model.RoleAssistant}
	for i, m := range got.Messages {
		assert.Equal(t, roles[i], m.Role)
		assert.NotEmpty(t, m.ID)
	}
}

func TestChatService_SnapshotIsImmutable(t *testing.T) {
	svc, _ := newTestChat(t, time.Minute)
	sess := svc.Start()

	before, err := svc.Session(sess.ID)
	require.NoError(t, err)

	_, err = svc.Send(context.Background(), sess.ID, "halo")
	require.NoError(t, err)

	assert.Len(t, before.Messages, 1)
}

func TestChatService_UnknownSessionStartsNew(t *testing.T) {
	svc, _ := newTestChat(t, time.Minute)

	resp, err := svc.Send(context.Background(), "missing", "halo")
	require.NoError(t, err)
	assert.NotEqual(t, "missing", resp.SessionID)

	got, err := svc.Session(resp.SessionID)
	require.NoError(t, err)
	assert.Len(t, got.Messages, 3)
}

func TestChatService_Errors(t *testing.T) {
	svc, _ := newTestChat(t, time.Minute)

	_, err := svc.Send(context.Background(), "", "   ")
	assert.ErrorIs(t, err, errors.ErrInvalidParam)

	_, err = svc.Session("missing")
	assert.ErrorIs(t, err, errors.ErrChatSessionNotFound)
}

func TestChatService_SessionExpires(t *testing.T) {
	svc, _ := newTestChat(t, 50*time.Millisecond)
	sess := svc.Start()

	time.Sleep(100 * time.Millisecond)

	_, err := svc.Session(sess.ID)
	assert.ErrorIs(t, err, errors.ErrChatSessionNotFound)
}

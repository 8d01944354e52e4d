package encouragements

import (
	"testing"

	"github.com/Krosebrook/lifesync-sub000/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*EncouragementService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &Encouragement{}))
	return NewEncouragementService(db), db
}

func createUser(t *testing.T, db *gorm.DB, email string) uuid.UUID {
	t.Helper()
	user := models.User{ID: uuid.New(), Email: email, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func TestSendAndCount(t *testing.T) {
	svc, db := newTestService(t)
	sender := createUser(t, db, "sender@example.com")
	recipient := createUser(t, db, "recipient@example.com")

	sent, err := svc.Send(sender, SendEncouragementRequest{
		ToUserID: recipient.String(),
		Message:  "You are doing great, keep the streak going!",
	})
	require.NoError(t, err)
	assert.Equal(t, recipient, sent.ToUserID)

	count, err := svc.SentCount(sender)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	received, err := svc.ListReceived(recipient, 0)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Nil(t, received[0].ReadAt)
}

func TestSendRejectsBlockedContent(t *testing.T) {
	svc, db := newTestService(t)
	sender := createUser(t, db, "sender@example.com")
	recipient := createUser(t, db, "recipient@example.com")

	_, err := svc.Send(sender, SendEncouragementRequest{
		ToUserID: recipient.String(),
		Message:  "Honestly you are such a LOSER",
	})
	assert.ErrorIs(t, err, ErrContentInappropriate)

	count, err := svc.SentCount(sender)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSendValidation(t *testing.T) {
	svc, db := newTestService(t)
	sender := createUser(t, db, "sender@example.com")

	_, err := svc.Send(sender, SendEncouragementRequest{ToUserID: sender.String(), Message: "hi me"})
	assert.ErrorIs(t, err, ErrSelfEncouragement)

	_, err = svc.Send(sender, SendEncouragementRequest{ToUserID: uuid.New().String(), Message: "hello"})
	assert.ErrorIs(t, err, ErrRecipientNotFound)

	_, err = svc.Send(sender, SendEncouragementRequest{ToUserID: uuid.New().String(), Message: "   "})
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestMarkReadOnlyForRecipient(t *testing.T) {
	svc, db := newTestService(t)
	sender := createUser(t, db, "sender@example.com")
	recipient := createUser(t, db, "recipient@example.com")

	sent, err := svc.Send(sender, SendEncouragementRequest{
		ToUserID: recipient.String(),
		Message:  "Proud of you",
	})
	require.NoError(t, err)

	_, err = svc.MarkRead(sender, sent.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	read, err := svc.MarkRead(recipient, sent.ID)
	require.NoError(t, err)
	assert.NotNil(t, read.ReadAt)
}

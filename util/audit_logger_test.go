package util

import (
	"fmt"
	"testing"
	"time"

	"github.com/eppranavaudupa/smartBliendStick/model"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuditTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:auditlog_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&model.AuditLog{}))

	SetAuditLoggerDB(db)
	t.Cleanup(func() { SetAuditLoggerDB(nil) })
	return db
}

func TestSanitizeLogValue(t *testing.T) {
	assert.Equal(t, "a b c", sanitizeLogValue("a\nb\tc"))

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	out := sanitizeLogValue(string(long))
	assert.Equal(t, 203, len(out))
	assert.Contains(t, out, "...")
}

func TestLogAuditEventPersists(t *testing.T) {
	db := setupAuditTestDB(t)

	LogAuditEvent(AuditEvent{
		EventType: EventAlertSent,
		DeviceID:  "d1",
		Message:   "Alert sent via sms, sid SM123",
		Details:   map[string]interface{}{"sid": "SM123"},
	})

	var rows []model.AuditLog
	assert.NoError(t, db.Find(&rows).Error)
	assert.Len(t, rows, 1)
	assert.Equal(t, string(EventAlertSent), rows[0].EventType)
	assert.Equal(t, "d1", rows[0].DeviceID)
	assert.Contains(t, string(rows[0].Details), "SM123")
}

func TestLogAuditEventWithoutDB(t *testing.T) {
	SetAuditLoggerDB(nil)
	// Must not panic when no DB has been configured.
	LogLoginFailure("x@example.com", "127.0.0.1", "test-agent", "invalid password")
	LogRateLimitExceeded("127.0.0.1", "/login")
}

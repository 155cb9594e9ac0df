package logsvc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/user"
)

func newObservedLogger(t *testing.T) (*RollbarLogger, *observer.ObservedLogs) {
	obs, logs := observer.New(zapcore.DebugLevel)
	logger := NewRollbarLogger(zap.New(obs), core.NewTestConfig())
	logger.Enable(false)
	return logger, logs
}

func TestRollbarLogger_Fields(t *testing.T) {
	logger, logs := newObservedLogger(t)
	usr := user.User{Name: "Ada Admin", Email: user.AdminEmail, Role: user.RoleAdmin}

	logger.Info("logged in", usr)
	logger.Warn("course added", map[string]interface{}{"course": "c3"})
	logger.Error("boom", errors.New("kaput"), usr)
	logger.Debug("plain")

	entries := logs.AllUntimed()
	if !assert.Len(t, entries, 4) {
		return
	}

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "logged in", entries[0].Message)
	assert.Equal(t, user.AdminEmail, entries[0].ContextMap()["user"])
	assert.Equal(t, "admin", entries[0].ContextMap()["role"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "c3", entries[1].ContextMap()["course"])

	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "kaput", entries[2].ContextMap()["error"])
	assert.Equal(t, user.AdminEmail, entries[2].ContextMap()["user"])

	assert.Equal(t, zapcore.DebugLevel, entries[3].Level)
	assert.Empty(t, entries[3].Context)
}

func TestRollbarLogger_PrepareDropsUsers(t *testing.T) {
	logger, _ := newObservedLogger(t)
	usr := user.User{Name: "Sam Student", Email: user.StudentEmail, Role: user.RoleStudent}
	err := errors.New("kaput")

	args := logger.prepare("msg", []interface{}{usr, err, usr})
	assert.Equal(t, []interface{}{"msg", err}, args)
}
